package models

type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart : au plus un panier ouvert par utilisateur, indexé par son email.
type Cart struct {
	Email        string     `json:"email"`
	Products     []CartItem `json:"products"`
	TotalPayment float64    `json:"total_payment"`
}
