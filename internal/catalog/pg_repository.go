package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanCategory(row pgx.Row) (*Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	err := row.Scan(
		&c.ID,
		&c.CategoryID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.State,
		&c.City,
		&c.Zipcode,
		&c.Neighborhood,
		&c.Street,
		&c.Number,
		&c.Complement,
		&c.Reference,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

func scanStaffUser(row pgx.Row) (*StaffUser, error) {
	var u StaffUser
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Phone,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStaffUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func scanService(row pgx.Row) (*Service, error) {
	var s Service
	err := row.Scan(&s.ID, &s.Name, &s.Cost, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &s, nil
}

func scanStatus(row pgx.Row) (*Status, error) {
	var s Status
	err := row.Scan(&s.ID, &s.Name, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatusNotFound
		}
		return nil, err
	}
	return &s, nil
}

const customerColumns = `id, category_id, first_name, last_name, email, phone,
		state, city, zipcode, neighborhood, street, number, complement, reference,
		created_at, updated_at`

// Categories

func (r *PgRepository) CreateCategory(ctx context.Context, c *Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, name, created_at, updated_at)
		VALUES ($1, $2, now(), now())
	`, c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *PgRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at
		FROM categories
		WHERE id = $1
	`, id)
	return scanCategory(row)
}

func (r *PgRepository) GetCategoryByName(ctx context.Context, name string) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at
		FROM categories
		WHERE lower(name) = lower($1)
	`, name)
	return scanCategory(row)
}

func (r *PgRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at, updated_at
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *PgRepository) UpdateCategory(ctx context.Context, c *Category) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE categories
		SET name = $2,
		    updated_at = now()
		WHERE id = $1
	`, c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *PgRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Customers

func (r *PgRepository) CreateCustomer(ctx context.Context, c *Customer) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO customers
			(id, category_id, first_name, last_name, email, phone,
			 state, city, zipcode, neighborhood, street, number, complement, reference,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())
	`, c.ID, c.CategoryID, c.FirstName, c.LastName, c.Email, c.Phone,
		c.State, c.City, c.Zipcode, c.Neighborhood, c.Street, c.Number, c.Complement, c.Reference)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *PgRepository) GetCustomerByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE id = $1
	`, id)
	return scanCustomer(row)
}

func (r *PgRepository) GetCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE lower(email) = lower($1)
	`, email)
	return scanCustomer(row)
}

func (r *PgRepository) GetCustomerByPhone(ctx context.Context, phone string) (*Customer, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE phone = $1
	`, phone)
	return scanCustomer(row)
}

func (r *PgRepository) ListCustomers(ctx context.Context, page, limit int, name string) (*CustomerPage, error) {
	offset := (page - 1) * limit
	pattern := "%" + name + "%"

	var totalCount int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM customers
		WHERE $1 = '' OR first_name ILIKE $2 OR last_name ILIKE $2
	`, name, pattern).Scan(&totalCount)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE $1 = '' OR first_name ILIKE $2 OR last_name ILIKE $2
		ORDER BY first_name, last_name
		LIMIT $3 OFFSET $4
	`, name, pattern, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &CustomerPage{
		Customers:   customers,
		TotalCount:  totalCount,
		TotalPages:  (totalCount + limit - 1) / limit,
		CurrentPage: page,
	}, nil
}

func (r *PgRepository) UpdateCustomer(ctx context.Context, c *Customer) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE customers
		SET category_id = $2,
		    first_name = $3,
		    last_name = $4,
		    email = $5,
		    phone = $6,
		    state = $7,
		    city = $8,
		    zipcode = $9,
		    neighborhood = $10,
		    street = $11,
		    number = $12,
		    complement = $13,
		    reference = $14,
		    updated_at = now()
		WHERE id = $1
	`, c.ID, c.CategoryID, c.FirstName, c.LastName, c.Email, c.Phone,
		c.State, c.City, c.Zipcode, c.Neighborhood, c.Street, c.Number, c.Complement, c.Reference)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *PgRepository) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// Staff users

func (r *PgRepository) CreateStaffUser(ctx context.Context, u *StaffUser) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO staff_users (id, first_name, last_name, email, phone, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	`, u.ID, u.FirstName, u.LastName, u.Email, u.Phone, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert staff user: %w", err)
	}
	return nil
}

func (r *PgRepository) GetStaffUserByID(ctx context.Context, id uuid.UUID) (*StaffUser, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, phone, password_hash, created_at, updated_at
		FROM staff_users
		WHERE id = $1
	`, id)
	return scanStaffUser(row)
}

func (r *PgRepository) GetStaffUserByEmail(ctx context.Context, email string) (*StaffUser, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, phone, password_hash, created_at, updated_at
		FROM staff_users
		WHERE lower(email) = lower($1)
	`, email)
	return scanStaffUser(row)
}

func (r *PgRepository) ListStaffUsers(ctx context.Context) ([]StaffUser, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, last_name, email, phone, password_hash, created_at, updated_at
		FROM staff_users
		ORDER BY first_name, last_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StaffUser
	for rows.Next() {
		u, err := scanStaffUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	return result, rows.Err()
}

func (r *PgRepository) UpdateStaffUser(ctx context.Context, u *StaffUser) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE staff_users
		SET first_name = $2,
		    last_name = $3,
		    email = $4,
		    phone = $5,
		    password_hash = $6,
		    updated_at = now()
		WHERE id = $1
	`, u.ID, u.FirstName, u.LastName, u.Email, u.Phone, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("update staff user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStaffUserNotFound
	}
	return nil
}

func (r *PgRepository) DeleteStaffUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM staff_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete staff user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStaffUserNotFound
	}
	return nil
}

// Services

func (r *PgRepository) CreateService(ctx context.Context, s *Service) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO services (id, name, cost, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
	`, s.ID, s.Name, s.Cost)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

func (r *PgRepository) GetServiceByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, cost::text, created_at, updated_at
		FROM services
		WHERE id = $1
	`, id)
	return scanService(row)
}

func (r *PgRepository) GetServiceByName(ctx context.Context, name string) (*Service, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, cost::text, created_at, updated_at
		FROM services
		WHERE lower(name) = lower($1)
	`, name)
	return scanService(row)
}

func (r *PgRepository) ListServices(ctx context.Context, page, limit int, name string) (*ServicePage, error) {
	offset := (page - 1) * limit
	pattern := "%" + name + "%"

	var totalCount int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM services
		WHERE $1 = '' OR name ILIKE $2
	`, name, pattern).Scan(&totalCount)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, cost::text, created_at, updated_at
		FROM services
		WHERE $1 = '' OR name ILIKE $2
		ORDER BY name
		LIMIT $3 OFFSET $4
	`, name, pattern, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &ServicePage{
		Services:    services,
		TotalCount:  totalCount,
		TotalPages:  (totalCount + limit - 1) / limit,
		CurrentPage: page,
	}, nil
}

func (r *PgRepository) UpdateService(ctx context.Context, s *Service) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE services
		SET name = $2,
		    cost = $3,
		    updated_at = now()
		WHERE id = $1
	`, s.ID, s.Name, s.Cost)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *PgRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *PgRepository) CountServicesByIDs(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM services WHERE id = ANY($1)
	`, ids).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return count, nil
}

// Statuses

func (r *PgRepository) CreateStatus(ctx context.Context, s *Status) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO statuses (id, name, position, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
	`, s.ID, s.Name, s.Position)
	if err != nil {
		return fmt.Errorf("insert status: %w", err)
	}
	return nil
}

func (r *PgRepository) GetStatusByID(ctx context.Context, id uuid.UUID) (*Status, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, position, created_at, updated_at
		FROM statuses
		WHERE id = $1
	`, id)
	return scanStatus(row)
}

func (r *PgRepository) GetStatusByName(ctx context.Context, name string) (*Status, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, position, created_at, updated_at
		FROM statuses
		WHERE lower(name) = lower($1)
	`, name)
	return scanStatus(row)
}

func (r *PgRepository) ListStatuses(ctx context.Context) ([]Status, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, position, created_at, updated_at
		FROM statuses
		ORDER BY position, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Status
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

func (r *PgRepository) UpdateStatus(ctx context.Context, s *Status) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE statuses
		SET name = $2,
		    position = $3,
		    updated_at = now()
		WHERE id = $1
	`, s.ID, s.Name, s.Position)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStatusNotFound
	}
	return nil
}

func (r *PgRepository) DeleteStatus(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM statuses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStatusNotFound
	}
	return nil
}
