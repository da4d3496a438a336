package customers

import "github.com/shopspring/decimal"

// Area is a delivery region with its flat fee.
type Area struct {
	ID   int64           `json:"id"`
	Name string          `json:"name"`
	Fee  decimal.Decimal `json:"fee"`
}

type Address struct {
	ID         int64
	AreaID     int64
	CEP        *string
	Street     string
	Number     *int
	Complement *string
	Reference  *string
}

// Customer is an account that can log in and place orders. Email comes from
// the person record; PasswordHash is salt:hash, both base64.
type Customer struct {
	ID           int64
	PersonID     int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}
