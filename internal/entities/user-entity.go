package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Role         UserRole    `json:"role"`
	Department   null.String `json:"department"`
	Avatar       null.String `json:"avatar"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
}
