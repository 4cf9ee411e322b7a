package domain

// User is the customer profile as stored by the gateway.
// PhoneNumber and Location stay empty until the checkout conversation
// collects them; Location is the encoded "lat|lon" string.
type User struct {
	TelegramID  int64  `json:"user_id"`
	Username    string `json:"username"`
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	PhoneNumber string `json:"phone_number"`
	Location    string `json:"location"`
}
