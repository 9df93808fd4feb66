package models

// CartItem is a product snapshot plus the requested quantity. It is what gets
// persisted for a session, so it embeds the whole product like the storefront did.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal is price times quantity, zero for products without a price.
func (i CartItem) Subtotal() float64 {
	return i.UnitPrice() * float64(i.Quantity)
}
