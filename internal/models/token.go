package models

import "time"

// Token est une capacité de session : il prouve que son porteur contrôle le
// compte `Email` tant que `Expires` est dans le futur. L'expiration est
// dérivée à la lecture, jamais stockée comme drapeau.
type Token struct {
	ID      string    `json:"id"`
	Email   string    `json:"email"`
	Expires time.Time `json:"expires"`
}
