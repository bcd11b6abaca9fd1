package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrStaffUserNotFound = errors.New("staff user not found")
	ErrServiceNotFound   = errors.New("service not found")
	ErrStatusNotFound    = errors.New("status not found")

	ErrEmailTaken = errors.New("email already registered")
	ErrPhoneTaken = errors.New("phone already registered")
	ErrNameTaken  = errors.New("name already registered")
)

// Repository contains all DB interactions needed by the catalog service
// and by the scheduling engine's referential checks.
type Repository interface {
	// Categories
	CreateCategory(ctx context.Context, c *Category) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetCategoryByName(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// Customers
	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*Customer, error)
	GetCustomerByPhone(ctx context.Context, phone string) (*Customer, error)
	ListCustomers(ctx context.Context, page, limit int, name string) (*CustomerPage, error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error

	// Staff users
	CreateStaffUser(ctx context.Context, u *StaffUser) error
	GetStaffUserByID(ctx context.Context, id uuid.UUID) (*StaffUser, error)
	GetStaffUserByEmail(ctx context.Context, email string) (*StaffUser, error)
	ListStaffUsers(ctx context.Context) ([]StaffUser, error)
	UpdateStaffUser(ctx context.Context, u *StaffUser) error
	DeleteStaffUser(ctx context.Context, id uuid.UUID) error

	// Services
	CreateService(ctx context.Context, s *Service) error
	GetServiceByID(ctx context.Context, id uuid.UUID) (*Service, error)
	GetServiceByName(ctx context.Context, name string) (*Service, error)
	ListServices(ctx context.Context, page, limit int, name string) (*ServicePage, error)
	UpdateService(ctx context.Context, s *Service) error
	DeleteService(ctx context.Context, id uuid.UUID) error
	CountServicesByIDs(ctx context.Context, ids []uuid.UUID) (int, error)

	// Statuses
	CreateStatus(ctx context.Context, s *Status) error
	GetStatusByID(ctx context.Context, id uuid.UUID) (*Status, error)
	GetStatusByName(ctx context.Context, name string) (*Status, error)
	ListStatuses(ctx context.Context) ([]Status, error)
	UpdateStatus(ctx context.Context, s *Status) error
	DeleteStatus(ctx context.Context, id uuid.UUID) error
}
