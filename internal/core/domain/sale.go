// internal/core/domain/sale.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is an immutable, ticketed record of a completed checkout. It snapshots
// the grouped cart at finalization time and is appended to the ledger, never
// updated.
type Sale struct {
	ID           string          `json:"id"`
	TicketNumber string          `json:"ticket_number"`
	Items        []CartItem      `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Date         time.Time       `json:"date"`
}

// NewSale builds a sale from the grouped cart items at the given instant.
func NewSale(items []CartItem, now time.Time) Sale {
	return Sale{
		ID:           uuid.New().String(),
		TicketNumber: TicketNumber(now),
		Items:        items,
		Total:        CartTotal(items),
		Date:         now,
	}
}

// TicketNumber derives the human-readable ticket identifier from the checkout
// timestamp, e.g. "T20250901143052". Resolution is one second, so two
// checkouts within the same second collide; the ledger id stays unique.
func TicketNumber(now time.Time) string {
	return "T" + now.Format("20060102150405")
}
