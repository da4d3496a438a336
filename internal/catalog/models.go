package catalog

import "github.com/shopspring/decimal"

// FlavorLevel is a price tier attached to a flavor (e.g. "tradicional",
// "premium"). Its price is one of the additive unit-price contributors.
type FlavorLevel struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

type Flavor struct {
	ID          int64
	Name        string
	Description string
	Level       *FlavorLevel
}

// Size carries per-size pricing plus display info (yield, weight).
type Size struct {
	ID     int64
	Name   string
	Yield  string
	Weight string
	Price  decimal.Decimal
}

// Product is the authoritative catalog record. Flavor and Size are loaded
// with the product so the unit price can be computed without extra queries.
type Product struct {
	ID          int64
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Flavor      *Flavor
	Size        *Size
}
