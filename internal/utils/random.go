package utils

import "crypto/rand"

const randomAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomString génère une chaîne aléatoire de n caractères (minuscules et
// chiffres), utilisée pour les identifiants de token.
func RandomString(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = randomAlphabet[int(b)%len(randomAlphabet)]
	}
	return string(buf), nil
}
