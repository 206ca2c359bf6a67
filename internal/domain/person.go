package domain

import (
	"context"
	"time"
)

// Person is a single record returned by the on-premise person search.
type Person struct {
	ID           int       `json:"id"`
	PersonType   string    `json:"personType,omitempty"`
	Title        string    `json:"title,omitempty"`
	FirstName    string    `json:"firstName"`
	MiddleName   string    `json:"middleName,omitempty"`
	LastName     string    `json:"lastName"`
	Suffix       string    `json:"suffix,omitempty"`
	ModifiedDate time.Time `json:"modifiedDate,omitempty"`
}

// PersonRepository defines read access to the on-premise person store.
type PersonRepository interface {
	// SearchByFirstName returns people whose first name contains match, ignoring case.
	SearchByFirstName(ctx context.Context, match string) ([]Person, error)

	// GetAll returns the first page of people in the store.
	GetAll(ctx context.Context) ([]Person, error)
}
