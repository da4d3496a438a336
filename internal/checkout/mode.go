package checkout

import "strings"

// Mode is the fulfillment mode of an order. Delivery adds the customer's
// area fee to the total; pickup never does.
type Mode string

const (
	ModeDelivery Mode = "DELIVERY"
	ModePickup   Mode = "PICKUP"
)

// ParseMode normalizes user input to a Mode. Blank or unrecognized input
// reports ok=false.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeDelivery:
		return ModeDelivery, true
	case ModePickup:
		return ModePickup, true
	}
	return "", false
}
