package models

type User struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	// Jamais renvoyé tel quel au client — les handlers le vident avant de
	// sérialiser la réponse.
	HashedPassword string `json:"hashedPassword,omitempty"`
}
