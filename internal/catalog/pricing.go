package catalog

import "github.com/shopspring/decimal"

// UnitPrice computes the price of one unit of p:
// base price + size price + flavor level price, missing contributors count
// as zero. It never fails; prices are recomputed from the current catalog
// record every time a line is priced.
func UnitPrice(p Product) decimal.Decimal {
	unit := p.BasePrice
	if p.Size != nil {
		unit = unit.Add(p.Size.Price)
	}
	if p.Flavor != nil && p.Flavor.Level != nil {
		unit = unit.Add(p.Flavor.Level.Price)
	}
	return unit
}
