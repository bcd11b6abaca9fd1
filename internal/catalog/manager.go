package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Manager owns the reference entities the scheduling engine validates
// against: categories, customers, staff users, services and statuses.
type Manager struct {
	repo Repository
}

func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo}
}

type CategoryInput struct {
	Name string
}

type CustomerInput struct {
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
}

type StaffUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

type ServiceInput struct {
	Name string
	Cost string
}

type StatusInput struct {
	Name     string
	Position int
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// Categories

func (m *Manager) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	if _, err := m.repo.GetCategoryByName(ctx, in.Name); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, ErrCategoryNotFound) {
		return nil, fmt.Errorf("check category name: %w", err)
	}

	c := &Category{ID: uuid.New(), Name: in.Name}
	if err := m.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (m *Manager) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	return m.repo.GetCategoryByID(ctx, id)
}

func (m *Manager) ListCategories(ctx context.Context) ([]Category, error) {
	return m.repo.ListCategories(ctx)
}

func (m *Manager) UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) error {
	existing, err := m.repo.GetCategoryByName(ctx, in.Name)
	if err == nil && existing.ID != id {
		return ErrNameTaken
	} else if err != nil && !errors.Is(err, ErrCategoryNotFound) {
		return fmt.Errorf("check category name: %w", err)
	}

	return m.repo.UpdateCategory(ctx, &Category{ID: id, Name: in.Name})
}

func (m *Manager) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return m.repo.DeleteCategory(ctx, id)
}

// Customers

func (m *Manager) CreateCustomer(ctx context.Context, in CustomerInput) (*Customer, error) {
	if err := m.checkCustomerUniqueness(ctx, in.Email, in.Phone, uuid.Nil); err != nil {
		return nil, err
	}

	c := &Customer{
		ID:           uuid.New(),
		CategoryID:   in.CategoryID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		State:        in.State,
		City:         in.City,
		Zipcode:      in.Zipcode,
		Neighborhood: in.Neighborhood,
		Street:       in.Street,
		Number:       in.Number,
		Complement:   in.Complement,
		Reference:    in.Reference,
	}
	if err := m.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (m *Manager) GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error) {
	c, err := m.repo.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.CategoryID != nil {
		cat, err := m.repo.GetCategoryByID(ctx, *c.CategoryID)
		if err != nil && !errors.Is(err, ErrCategoryNotFound) {
			return nil, err
		}
		c.Category = cat
	}
	return c, nil
}

func (m *Manager) ListCustomers(ctx context.Context, page, limit int, name string) (*CustomerPage, error) {
	page, limit = normalizePage(page, limit)
	return m.repo.ListCustomers(ctx, page, limit, name)
}

func (m *Manager) UpdateCustomer(ctx context.Context, id uuid.UUID, in CustomerInput) error {
	if _, err := m.repo.GetCustomerByID(ctx, id); err != nil {
		return err
	}
	if err := m.checkCustomerUniqueness(ctx, in.Email, in.Phone, id); err != nil {
		return err
	}

	return m.repo.UpdateCustomer(ctx, &Customer{
		ID:           id,
		CategoryID:   in.CategoryID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		State:        in.State,
		City:         in.City,
		Zipcode:      in.Zipcode,
		Neighborhood: in.Neighborhood,
		Street:       in.Street,
		Number:       in.Number,
		Complement:   in.Complement,
		Reference:    in.Reference,
	})
}

func (m *Manager) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return m.repo.DeleteCustomer(ctx, id)
}

// checkCustomerUniqueness rejects an email or phone already registered to a
// different customer. self is uuid.Nil on create.
func (m *Manager) checkCustomerUniqueness(ctx context.Context, email, phone string, self uuid.UUID) error {
	byEmail, err := m.repo.GetCustomerByEmail(ctx, email)
	if err == nil && byEmail.ID != self {
		return ErrEmailTaken
	} else if err != nil && !errors.Is(err, ErrCustomerNotFound) {
		return fmt.Errorf("check customer email: %w", err)
	}

	byPhone, err := m.repo.GetCustomerByPhone(ctx, phone)
	if err == nil && byPhone.ID != self {
		return ErrPhoneTaken
	} else if err != nil && !errors.Is(err, ErrCustomerNotFound) {
		return fmt.Errorf("check customer phone: %w", err)
	}

	return nil
}

// Staff users

func (m *Manager) CreateStaffUser(ctx context.Context, in StaffUserInput) (*StaffUser, error) {
	if existing, err := m.repo.GetStaffUserByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, ErrStaffUserNotFound) {
		return nil, fmt.Errorf("check staff email: %w", err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &StaffUser{
		ID:           uuid.New(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
	}
	if err := m.repo.CreateStaffUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (m *Manager) GetStaffUser(ctx context.Context, id uuid.UUID) (*StaffUser, error) {
	return m.repo.GetStaffUserByID(ctx, id)
}

func (m *Manager) ListStaffUsers(ctx context.Context) ([]StaffUser, error) {
	return m.repo.ListStaffUsers(ctx)
}

func (m *Manager) UpdateStaffUser(ctx context.Context, id uuid.UUID, in StaffUserInput) error {
	current, err := m.repo.GetStaffUserByID(ctx, id)
	if err != nil {
		return err
	}

	byEmail, err := m.repo.GetStaffUserByEmail(ctx, in.Email)
	if err == nil && byEmail.ID != id {
		return ErrEmailTaken
	} else if err != nil && !errors.Is(err, ErrStaffUserNotFound) {
		return fmt.Errorf("check staff email: %w", err)
	}

	hash := current.PasswordHash
	if in.Password != "" {
		hash, err = HashPassword(in.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
	}

	return m.repo.UpdateStaffUser(ctx, &StaffUser{
		ID:           id,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
	})
}

func (m *Manager) DeleteStaffUser(ctx context.Context, id uuid.UUID) error {
	return m.repo.DeleteStaffUser(ctx, id)
}

// Services

func (m *Manager) CreateService(ctx context.Context, in ServiceInput) (*Service, error) {
	if _, err := m.repo.GetServiceByName(ctx, in.Name); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, ErrServiceNotFound) {
		return nil, fmt.Errorf("check service name: %w", err)
	}

	s := &Service{ID: uuid.New(), Name: in.Name, Cost: in.Cost}
	if err := m.repo.CreateService(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) GetService(ctx context.Context, id uuid.UUID) (*Service, error) {
	return m.repo.GetServiceByID(ctx, id)
}

func (m *Manager) ListServices(ctx context.Context, page, limit int, name string) (*ServicePage, error) {
	page, limit = normalizePage(page, limit)
	return m.repo.ListServices(ctx, page, limit, name)
}

func (m *Manager) UpdateService(ctx context.Context, id uuid.UUID, in ServiceInput) error {
	existing, err := m.repo.GetServiceByName(ctx, in.Name)
	if err == nil && existing.ID != id {
		return ErrNameTaken
	} else if err != nil && !errors.Is(err, ErrServiceNotFound) {
		return fmt.Errorf("check service name: %w", err)
	}

	return m.repo.UpdateService(ctx, &Service{ID: id, Name: in.Name, Cost: in.Cost})
}

func (m *Manager) DeleteService(ctx context.Context, id uuid.UUID) error {
	return m.repo.DeleteService(ctx, id)
}

// Statuses

func (m *Manager) CreateStatus(ctx context.Context, in StatusInput) (*Status, error) {
	if _, err := m.repo.GetStatusByName(ctx, in.Name); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, ErrStatusNotFound) {
		return nil, fmt.Errorf("check status name: %w", err)
	}

	s := &Status{ID: uuid.New(), Name: in.Name, Position: in.Position}
	if err := m.repo.CreateStatus(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) GetStatus(ctx context.Context, id uuid.UUID) (*Status, error) {
	return m.repo.GetStatusByID(ctx, id)
}

func (m *Manager) ListStatuses(ctx context.Context) ([]Status, error) {
	return m.repo.ListStatuses(ctx)
}

func (m *Manager) UpdateStatus(ctx context.Context, id uuid.UUID, in StatusInput) error {
	existing, err := m.repo.GetStatusByName(ctx, in.Name)
	if err == nil && existing.ID != id {
		return ErrNameTaken
	} else if err != nil && !errors.Is(err, ErrStatusNotFound) {
		return fmt.Errorf("check status name: %w", err)
	}

	return m.repo.UpdateStatus(ctx, &Status{ID: id, Name: in.Name, Position: in.Position})
}

func (m *Manager) DeleteStatus(ctx context.Context, id uuid.UUID) error {
	return m.repo.DeleteStatus(ctx, id)
}
