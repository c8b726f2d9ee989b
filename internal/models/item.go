package models

type MenuItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Menu est l'unique enregistrement de la collection items, en lecture seule
// côté client.
type Menu struct {
	Items []MenuItem `json:"items"`
}

// DefaultMenu sert à provisionner la collection items au premier démarrage.
var DefaultMenu = Menu{
	Items: []MenuItem{
		{ID: "margherita", Name: "Pizza Margherita", Price: 9.50},
		{ID: "quattro-formaggi", Name: "Pizza Quattro Formaggi", Price: 12.00},
		{ID: "calzone", Name: "Calzone", Price: 11.50},
		{ID: "diavola", Name: "Pizza Diavola", Price: 12.50},
		{ID: "tiramisu", Name: "Tiramisu", Price: 5.50},
	},
}
