package domain

import (
	"strings"
	"time"
)

// User é o dono das carteiras. Credenciais ficam fora do core.
type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

// NormalizeUsername aplica trim e rejeita nomes vazios.
func NormalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrInvalidUsername
	}
	return username, nil
}
