package domain

import "time"

// Account is a credential record. PasswordHash is a PHC formatted string
// whose leading tag selects the verification algorithm.
type Account struct {
	Username     string
	PasswordHash string
	Roles        []string
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
