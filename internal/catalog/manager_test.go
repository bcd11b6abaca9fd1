package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type memRepo struct {
	categories map[uuid.UUID]*Category
	customers  map[uuid.UUID]*Customer
	staff      map[uuid.UUID]*StaffUser
	services   map[uuid.UUID]*Service
	statuses   map[uuid.UUID]*Status
}

func newMemRepo() *memRepo {
	return &memRepo{
		categories: make(map[uuid.UUID]*Category),
		customers:  make(map[uuid.UUID]*Customer),
		staff:      make(map[uuid.UUID]*StaffUser),
		services:   make(map[uuid.UUID]*Service),
		statuses:   make(map[uuid.UUID]*Status),
	}
}

func (r *memRepo) CreateCategory(_ context.Context, c *Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memRepo) GetCategoryByID(_ context.Context, id uuid.UUID) (*Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) GetCategoryByName(_ context.Context, name string) (*Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (r *memRepo) ListCategories(_ context.Context) ([]Category, error) {
	out := make([]Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memRepo) UpdateCategory(_ context.Context, c *Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return ErrCategoryNotFound
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memRepo) DeleteCategory(_ context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *memRepo) CreateCustomer(_ context.Context, c *Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *memRepo) GetCustomerByID(_ context.Context, id uuid.UUID) (*Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) GetCustomerByEmail(_ context.Context, email string) (*Customer, error) {
	for _, c := range r.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrCustomerNotFound
}

func (r *memRepo) GetCustomerByPhone(_ context.Context, phone string) (*Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrCustomerNotFound
}

func (r *memRepo) ListCustomers(_ context.Context, page, limit int, name string) (*CustomerPage, error) {
	out := make([]Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if name != "" && !strings.Contains(strings.ToLower(c.FirstName), strings.ToLower(name)) {
			continue
		}
		out = append(out, *c)
	}
	return &CustomerPage{Customers: out, TotalCount: len(out), TotalPages: 1, CurrentPage: page}, nil
}

func (r *memRepo) UpdateCustomer(_ context.Context, c *Customer) error {
	if _, ok := r.customers[c.ID]; !ok {
		return ErrCustomerNotFound
	}
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *memRepo) DeleteCustomer(_ context.Context, id uuid.UUID) error {
	if _, ok := r.customers[id]; !ok {
		return ErrCustomerNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *memRepo) CreateStaffUser(_ context.Context, u *StaffUser) error {
	cp := *u
	r.staff[u.ID] = &cp
	return nil
}

func (r *memRepo) GetStaffUserByID(_ context.Context, id uuid.UUID) (*StaffUser, error) {
	u, ok := r.staff[id]
	if !ok {
		return nil, ErrStaffUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) GetStaffUserByEmail(_ context.Context, email string) (*StaffUser, error) {
	for _, u := range r.staff {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrStaffUserNotFound
}

func (r *memRepo) ListStaffUsers(_ context.Context) ([]StaffUser, error) {
	out := make([]StaffUser, 0, len(r.staff))
	for _, u := range r.staff {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memRepo) UpdateStaffUser(_ context.Context, u *StaffUser) error {
	if _, ok := r.staff[u.ID]; !ok {
		return ErrStaffUserNotFound
	}
	cp := *u
	r.staff[u.ID] = &cp
	return nil
}

func (r *memRepo) DeleteStaffUser(_ context.Context, id uuid.UUID) error {
	if _, ok := r.staff[id]; !ok {
		return ErrStaffUserNotFound
	}
	delete(r.staff, id)
	return nil
}

func (r *memRepo) CreateService(_ context.Context, s *Service) error {
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *memRepo) GetServiceByID(_ context.Context, id uuid.UUID) (*Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memRepo) GetServiceByName(_ context.Context, name string) (*Service, error) {
	for _, s := range r.services {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, ErrServiceNotFound
}

func (r *memRepo) ListServices(_ context.Context, page, limit int, name string) (*ServicePage, error) {
	out := make([]Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, *s)
	}
	return &ServicePage{Services: out, TotalCount: len(out), TotalPages: 1, CurrentPage: page}, nil
}

func (r *memRepo) UpdateService(_ context.Context, s *Service) error {
	if _, ok := r.services[s.ID]; !ok {
		return ErrServiceNotFound
	}
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *memRepo) DeleteService(_ context.Context, id uuid.UUID) error {
	if _, ok := r.services[id]; !ok {
		return ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *memRepo) CountServicesByIDs(_ context.Context, ids []uuid.UUID) (int, error) {
	count := 0
	for _, id := range ids {
		if _, ok := r.services[id]; ok {
			count++
		}
	}
	return count, nil
}

func (r *memRepo) CreateStatus(_ context.Context, s *Status) error {
	cp := *s
	r.statuses[s.ID] = &cp
	return nil
}

func (r *memRepo) GetStatusByID(_ context.Context, id uuid.UUID) (*Status, error) {
	s, ok := r.statuses[id]
	if !ok {
		return nil, ErrStatusNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memRepo) GetStatusByName(_ context.Context, name string) (*Status, error) {
	for _, s := range r.statuses {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, ErrStatusNotFound
}

func (r *memRepo) ListStatuses(_ context.Context) ([]Status, error) {
	out := make([]Status, 0, len(r.statuses))
	for _, s := range r.statuses {
		out = append(out, *s)
	}
	return out, nil
}

func (r *memRepo) UpdateStatus(_ context.Context, s *Status) error {
	if _, ok := r.statuses[s.ID]; !ok {
		return ErrStatusNotFound
	}
	cp := *s
	r.statuses[s.ID] = &cp
	return nil
}

func (r *memRepo) DeleteStatus(_ context.Context, id uuid.UUID) error {
	if _, ok := r.statuses[id]; !ok {
		return ErrStatusNotFound
	}
	delete(r.statuses, id)
	return nil
}

func customerInput(email, phone string) CustomerInput {
	return CustomerInput{
		FirstName:    "Maria",
		LastName:     "Silva",
		Email:        email,
		Phone:        phone,
		State:        "SP",
		City:         "São Paulo",
		Zipcode:      "01310-100",
		Neighborhood: "Bela Vista",
		Street:       "Av. Paulista",
		Number:       "1000",
	}
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	m := NewManager(newMemRepo())
	ctx := context.Background()

	if _, err := m.CreateCustomer(ctx, customerInput("maria@example.com", "11 99999-0001")); err != nil {
		t.Fatalf("CreateCustomer returned error: %v", err)
	}

	_, err := m.CreateCustomer(ctx, customerInput("maria@example.com", "11 99999-0002"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("error = %v, want ErrEmailTaken", err)
	}
}

func TestCreateCustomerDuplicatePhone(t *testing.T) {
	m := NewManager(newMemRepo())
	ctx := context.Background()

	if _, err := m.CreateCustomer(ctx, customerInput("maria@example.com", "11 99999-0001")); err != nil {
		t.Fatalf("CreateCustomer returned error: %v", err)
	}

	_, err := m.CreateCustomer(ctx, customerInput("joana@example.com", "11 99999-0001"))
	if !errors.Is(err, ErrPhoneTaken) {
		t.Fatalf("error = %v, want ErrPhoneTaken", err)
	}
}

func TestUpdateCustomerKeepsOwnEmail(t *testing.T) {
	m := NewManager(newMemRepo())
	ctx := context.Background()

	c, err := m.CreateCustomer(ctx, customerInput("maria@example.com", "11 99999-0001"))
	if err != nil {
		t.Fatalf("CreateCustomer returned error: %v", err)
	}

	// Re-submitting the customer's own email and phone is not a conflict.
	if err := m.UpdateCustomer(ctx, c.ID, customerInput("maria@example.com", "11 99999-0001")); err != nil {
		t.Fatalf("UpdateCustomer returned error: %v", err)
	}
}

func TestUpdateCustomerStealsEmail(t *testing.T) {
	m := NewManager(newMemRepo())
	ctx := context.Background()

	if _, err := m.CreateCustomer(ctx, customerInput("maria@example.com", "11 99999-0001")); err != nil {
		t.Fatalf("CreateCustomer returned error: %v", err)
	}
	other, err := m.CreateCustomer(ctx, customerInput("joana@example.com", "11 99999-0002"))
	if err != nil {
		t.Fatalf("CreateCustomer returned error: %v", err)
	}

	err = m.UpdateCustomer(ctx, other.ID, customerInput("maria@example.com", "11 99999-0002"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("error = %v, want ErrEmailTaken", err)
	}
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	m := NewManager(newMemRepo())
	ctx := context.Background()

	if _, err := m.CreateCategory(ctx, CategoryInput{Name: "Residencial"}); err != nil {
		t.Fatalf("CreateCategory returned error: %v", err)
	}

	_, err := m.CreateCategory(ctx, CategoryInput{Name: "Residencial"})
	if !errors.Is(err, ErrNameTaken) {
		t.Fatalf("error = %v, want ErrNameTaken", err)
	}
}

func TestCreateServiceDuplicateName(t *testing.T) {
	m := NewManager(newMemRepo())
	ctx := context.Background()

	if _, err := m.CreateService(ctx, ServiceInput{Name: "Dedetização", Cost: "250.00"}); err != nil {
		t.Fatalf("CreateService returned error: %v", err)
	}

	_, err := m.CreateService(ctx, ServiceInput{Name: "Dedetização", Cost: "300.00"})
	if !errors.Is(err, ErrNameTaken) {
		t.Fatalf("error = %v, want ErrNameTaken", err)
	}
}

func TestCreateStaffUserHashesPassword(t *testing.T) {
	m := NewManager(newMemRepo())
	ctx := context.Background()

	u, err := m.CreateStaffUser(ctx, StaffUserInput{
		FirstName: "Carlos",
		LastName:  "Souza",
		Email:     "carlos@example.com",
		Phone:     "11 98888-0001",
		Password:  "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("CreateStaffUser returned error: %v", err)
	}
	if u.PasswordHash == "s3cret-pass" || u.PasswordHash == "" {
		t.Fatal("password was not hashed")
	}
	if err := VerifyPassword(u.PasswordHash, "s3cret-pass"); err != nil {
		t.Fatalf("VerifyPassword returned error: %v", err)
	}
}

func TestUpdateStaffUserKeepsHashWhenPasswordEmpty(t *testing.T) {
	repo := newMemRepo()
	m := NewManager(repo)
	ctx := context.Background()

	u, err := m.CreateStaffUser(ctx, StaffUserInput{
		FirstName: "Carlos",
		LastName:  "Souza",
		Email:     "carlos@example.com",
		Phone:     "11 98888-0001",
		Password:  "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("CreateStaffUser returned error: %v", err)
	}

	err = m.UpdateStaffUser(ctx, u.ID, StaffUserInput{
		FirstName: "Carlos",
		LastName:  "Souza",
		Email:     "carlos@example.com",
		Phone:     "11 98888-0002",
	})
	if err != nil {
		t.Fatalf("UpdateStaffUser returned error: %v", err)
	}

	updated := repo.staff[u.ID]
	if updated.PasswordHash != u.PasswordHash {
		t.Error("empty password should keep the existing hash")
	}
	if updated.Phone != "11 98888-0002" {
		t.Errorf("phone = %q, want %q", updated.Phone, "11 98888-0002")
	}
}

func TestCreateStaffUserDuplicateEmail(t *testing.T) {
	m := NewManager(newMemRepo())
	ctx := context.Background()

	in := StaffUserInput{
		FirstName: "Carlos",
		LastName:  "Souza",
		Email:     "carlos@example.com",
		Phone:     "11 98888-0001",
		Password:  "s3cret-pass",
	}
	if _, err := m.CreateStaffUser(ctx, in); err != nil {
		t.Fatalf("CreateStaffUser returned error: %v", err)
	}

	_, err := m.CreateStaffUser(ctx, in)
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("error = %v, want ErrEmailTaken", err)
	}
}
