package domain

import (
	"time"

	"github.com/lumonhq/persons/pkg/idx"
)

// Person is the primary business record managed by the API.
type Person struct {
	ID        idx.ID
	FirstName string
	LastName  string
	Address   string
	Gender    string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
