package domain

import "time"

// Token describes an issued identity token.
type Token struct {
	ID        string
	Identity  Identity
	IssuedAt  time.Time
	ExpiresAt time.Time
}
