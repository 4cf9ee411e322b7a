package domain

// MenuItem is a single product as the gateway reports it.
type MenuItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Ingredients string  `json:"ingredients"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price"`
}

// CartLine is one position of a user's cart: product name, quantity
// and the line subtotal (price * quantity), as computed by the backend.
type CartLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// CartTotal sums the line subtotals of a cart.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Subtotal
	}
	return total
}
