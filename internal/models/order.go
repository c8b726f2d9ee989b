package models

// Order n'est créé qu'après confirmation du paiement externe.
type Order struct {
	OrderID      string     `json:"order_id"`
	Email        string     `json:"email"`
	Products     []CartItem `json:"products"`
	TotalPayment float64    `json:"total_payment"`
}
