package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/CAPRI-CORP/desinfec-backend/internal/catalog"
	"github.com/CAPRI-CORP/desinfec-backend/internal/scheduling"
)

// Scheduling payloads keep the original API's camelCase field names.

type SchedulingRequest struct {
	CustomerID     string   `json:"customerId"`
	ServiceIDs     []string `json:"serviceId"`
	UserID         string   `json:"userId"`
	Observations   *string  `json:"observations"`
	Cost           string   `json:"cost"`
	Date           string   `json:"date"`
	InitialTime    string   `json:"initialTime"`
	ConclusionTime string   `json:"conclusionTime"`
	StatusID       string   `json:"statusId"`
	PaymentMethod  *string  `json:"paymentMethod"`
}

type SchedulingResponse struct {
	ID            uuid.UUID          `json:"id"`
	Cost          string             `json:"cost"`
	Observations  *string            `json:"observations,omitempty"`
	PaymentMethod *string            `json:"paymentMethod,omitempty"`
	InitialDate   time.Time          `json:"initialDate"`
	FinalDate     time.Time          `json:"finalDate"`
	Customer      *CustomerResponse  `json:"customer,omitempty"`
	User          *StaffUserResponse `json:"user,omitempty"`
	Status        *StatusResponse    `json:"status,omitempty"`
	Services      []ServiceResponse  `json:"services"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CustomerRequest struct {
	CategoryID   *string `json:"categoryId"`
	FirstName    string  `json:"firstname"`
	LastName     string  `json:"lastname"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	State        string  `json:"state"`
	City         string  `json:"city"`
	Zipcode      string  `json:"zipcode"`
	Neighborhood string  `json:"neighborhood"`
	Street       string  `json:"street"`
	Number       string  `json:"number"`
	Complement   *string `json:"complement"`
	Reference    *string `json:"reference"`
}

type CustomerResponse struct {
	ID           uuid.UUID         `json:"id"`
	FirstName    string            `json:"firstname"`
	LastName     string            `json:"lastname"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	State        string            `json:"state"`
	City         string            `json:"city"`
	Zipcode      string            `json:"zipcode"`
	Neighborhood string            `json:"neighborhood"`
	Street       string            `json:"street"`
	Number       string            `json:"number"`
	Complement   *string           `json:"complement,omitempty"`
	Reference    *string           `json:"reference,omitempty"`
	Category     *CategoryResponse `json:"category,omitempty"`
}

type CustomerPageResponse struct {
	Customers   []CustomerResponse `json:"customers"`
	TotalCount  int                `json:"totalCount"`
	TotalPages  int                `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
}

type StaffUserRequest struct {
	FirstName       string `json:"firstname"`
	LastName        string `json:"lastname"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type StaffUserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
}

type ServiceRequest struct {
	Name string `json:"name"`
	Cost string `json:"cost"`
}

type ServiceResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Cost string    `json:"cost"`
}

type ServicePageResponse struct {
	Services    []ServiceResponse `json:"services"`
	TotalCount  int               `json:"totalCount"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

type StatusRequest struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type StatusResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Position int       `json:"position"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Mapping helpers

func toCategoryResponse(c *catalog.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{ID: c.ID, Name: c.Name}
}

func toCustomerResponse(c *catalog.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		Phone:        c.Phone,
		State:        c.State,
		City:         c.City,
		Zipcode:      c.Zipcode,
		Neighborhood: c.Neighborhood,
		Street:       c.Street,
		Number:       c.Number,
		Complement:   c.Complement,
		Reference:    c.Reference,
		Category:     toCategoryResponse(c.Category),
	}
}

func toStaffUserResponse(u *catalog.StaffUser) *StaffUserResponse {
	if u == nil {
		return nil
	}
	return &StaffUserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
	}
}

func toServiceResponse(s catalog.Service) ServiceResponse {
	return ServiceResponse{ID: s.ID, Name: s.Name, Cost: s.Cost}
}

func toStatusResponse(s *catalog.Status) *StatusResponse {
	if s == nil {
		return nil
	}
	return &StatusResponse{ID: s.ID, Name: s.Name, Position: s.Position}
}

func toSchedulingResponse(d *scheduling.SchedulingDetail) SchedulingResponse {
	services := make([]ServiceResponse, 0, len(d.Services))
	for _, s := range d.Services {
		services = append(services, toServiceResponse(s))
	}
	return SchedulingResponse{
		ID:            d.ID,
		Cost:          d.Cost,
		Observations:  d.Observations,
		PaymentMethod: d.PaymentMethod,
		InitialDate:   d.InitialDate,
		FinalDate:     d.FinalDate,
		Customer:      toCustomerResponse(d.Customer),
		User:          toStaffUserResponse(d.User),
		Status:        toStatusResponse(d.Status),
		Services:      services,
	}
}
