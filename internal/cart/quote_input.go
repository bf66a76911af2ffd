package cart

import "github.com/google/uuid"

// QuoteCartInput is the quote intent sent by the storefront.
type QuoteCartInput struct {
	Items []QuoteCartItem
}

// QuoteCartItem captures each intent line from the client.
// A non-nil Bundle turns the line into a single bundle purchase and Quantity is ignored.
type QuoteCartItem struct {
	ProductID uuid.UUID
	Quantity  int
	Bundle    *Bundle
}

func (i QuoteCartItem) isBundle() bool {
	return i.Bundle != nil
}
