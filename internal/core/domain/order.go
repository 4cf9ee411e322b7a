package domain

// OrderLine is one submitted order position. It mirrors CartLine: the
// order is built verbatim from whatever the cart holds at confirmation.
type OrderLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// Order is a full order submission for the gateway.
type Order struct {
	UserID      int64       `json:"user_id"`
	PhoneNumber string      `json:"phone_number"`
	Lines       []OrderLine `json:"order_list"`
	Total       float64     `json:"total_price"`
	Location    string      `json:"location"`
}

// OrderLinesFromCart converts cart lines into order lines one to one.
func OrderLinesFromCart(cart []CartLine) []OrderLine {
	lines := make([]OrderLine, 0, len(cart))
	for _, item := range cart {
		lines = append(lines, OrderLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal,
		})
	}
	return lines
}
