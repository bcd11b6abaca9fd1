package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Category groups customers (residential, commercial, ...).
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Customer struct {
	ID           uuid.UUID
	CategoryID   *uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	State        string
	City         string
	Zipcode      string
	Neighborhood string
	Street       string
	Number       string
	Complement   *string
	Reference    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Category is populated on joined reads only.
	Category *Category
}

// StaffUser is an employee who performs scheduled services.
type StaffUser struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Service is an offering the company sells (e.g. rodent control).
// Cost is a decimal carried as a string to avoid float rounding.
type Service struct {
	ID        uuid.UUID
	Name      string
	Cost      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status is a scheduling state. It is a row, not a closed enum: the
// report aggregator iterates whatever statuses exist, in position order.
type Status struct {
	ID        uuid.UUID
	Name      string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerPage is a paginated customer listing.
type CustomerPage struct {
	Customers   []Customer
	TotalCount  int
	TotalPages  int
	CurrentPage int
}

// ServicePage is a paginated service listing.
type ServicePage struct {
	Services    []Service
	TotalCount  int
	TotalPages  int
	CurrentPage int
}
