package employee

import "time"

type Employee struct {
	ID             string
	UserID         *string // login account, nil until the employee activates
	OrganizationID string
	FullName       string
	Email          string
	Position       *string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
