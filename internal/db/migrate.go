package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id uuid PRIMARY KEY,
		name text NOT NULL UNIQUE,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id uuid PRIMARY KEY,
		category_id uuid REFERENCES categories(id),
		first_name text NOT NULL,
		last_name text NOT NULL,
		email text NOT NULL UNIQUE,
		phone text NOT NULL UNIQUE,
		state text NOT NULL,
		city text NOT NULL,
		zipcode text NOT NULL,
		neighborhood text NOT NULL,
		street text NOT NULL,
		number text NOT NULL,
		complement text,
		reference text,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS staff_users (
		id uuid PRIMARY KEY,
		first_name text NOT NULL,
		last_name text NOT NULL,
		email text NOT NULL UNIQUE,
		phone text NOT NULL,
		password_hash text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id uuid PRIMARY KEY,
		name text NOT NULL UNIQUE,
		cost numeric(10,2) NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS statuses (
		id uuid PRIMARY KEY,
		name text NOT NULL UNIQUE,
		position int NOT NULL DEFAULT 0,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS schedulings (
		id uuid PRIMARY KEY,
		customer_id uuid NOT NULL REFERENCES customers(id),
		user_id uuid NOT NULL REFERENCES staff_users(id),
		status_id uuid NOT NULL REFERENCES statuses(id),
		cost numeric(10,2) NOT NULL,
		observations text,
		payment_method text,
		initial_date timestamptz NOT NULL,
		final_date timestamptz NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now(),
		CONSTRAINT schedulings_window_check CHECK (final_date >= initial_date)
	)`,
	`CREATE TABLE IF NOT EXISTS scheduled_services (
		scheduling_id uuid NOT NULL REFERENCES schedulings(id),
		service_id uuid NOT NULL REFERENCES services(id),
		PRIMARY KEY (scheduling_id, service_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_schedulings_initial_date ON schedulings (initial_date)`,
	`CREATE INDEX IF NOT EXISTS idx_schedulings_status_id ON schedulings (status_id)`,
}

// Migrate applies the schema idempotently. Statements are ordered so that
// referenced tables exist before their foreign keys.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
