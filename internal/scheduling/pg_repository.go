package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CAPRI-CORP/desinfec-backend/internal/catalog"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const schedulingColumns = `id, customer_id, user_id, status_id, cost::text,
		observations, payment_method, initial_date, final_date, created_at, updated_at`

func scanScheduling(row pgx.Row) (*SchedulingRecord, error) {
	var rec SchedulingRecord
	err := row.Scan(
		&rec.ID,
		&rec.CustomerID,
		&rec.UserID,
		&rec.StatusID,
		&rec.Cost,
		&rec.Observations,
		&rec.PaymentMethod,
		&rec.InitialDate,
		&rec.FinalDate,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSchedulingNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *PgRepository) CreateScheduling(ctx context.Context, rec *SchedulingRecord, serviceIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create scheduling: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO schedulings
			(id, customer_id, user_id, status_id, cost, observations, payment_method,
			 initial_date, final_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
	`, rec.ID, rec.CustomerID, rec.UserID, rec.StatusID, rec.Cost,
		rec.Observations, rec.PaymentMethod, rec.InitialDate, rec.FinalDate)
	if err != nil {
		return fmt.Errorf("insert scheduling: %w", err)
	}

	if err := insertLinks(ctx, tx, rec.ID, serviceIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PgRepository) GetScheduling(ctx context.Context, id uuid.UUID) (*SchedulingRecord, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+schedulingColumns+`
		FROM schedulings
		WHERE id = $1
	`, id)
	return scanScheduling(row)
}

func (r *PgRepository) GetSchedulingDetail(ctx context.Context, id uuid.UUID) (*SchedulingDetail, error) {
	rec, err := r.GetScheduling(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := r.hydrate(ctx, []SchedulingRecord{*rec})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (r *PgRepository) ListSchedulingDetails(ctx context.Context) ([]SchedulingDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+schedulingColumns+`
		FROM schedulings
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []SchedulingRecord
	for rows.Next() {
		rec, err := scanScheduling(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.hydrate(ctx, records)
}

func (r *PgRepository) UpdateScheduling(ctx context.Context, rec *SchedulingRecord, serviceIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update scheduling: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := linkedServiceIDs(ctx, tx, rec.ID)
	if err != nil {
		return err
	}

	toAdd, toRemove := DiffLinks(current, serviceIDs)

	if len(toRemove) > 0 {
		_, err = tx.Exec(ctx, `
			DELETE FROM scheduled_services
			WHERE scheduling_id = $1 AND service_id = ANY($2)
		`, rec.ID, toRemove)
		if err != nil {
			return fmt.Errorf("unlink services: %w", err)
		}
	}

	if err := insertLinks(ctx, tx, rec.ID, toAdd); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE schedulings
		SET customer_id = $2,
		    user_id = $3,
		    status_id = $4,
		    cost = $5,
		    observations = $6,
		    payment_method = $7,
		    initial_date = $8,
		    final_date = $9,
		    updated_at = now()
		WHERE id = $1
	`, rec.ID, rec.CustomerID, rec.UserID, rec.StatusID, rec.Cost,
		rec.Observations, rec.PaymentMethod, rec.InitialDate, rec.FinalDate)
	if err != nil {
		return fmt.Errorf("update scheduling: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSchedulingNotFound
	}

	return tx.Commit(ctx)
}

func (r *PgRepository) DeleteScheduling(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete scheduling: %w", err)
	}
	defer tx.Rollback(ctx)

	// Links go first so the record delete cannot leave dangling rows.
	_, err = tx.Exec(ctx, `
		DELETE FROM scheduled_services WHERE scheduling_id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("unlink services: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM schedulings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete scheduling: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSchedulingNotFound
	}

	return tx.Commit(ctx)
}

func (r *PgRepository) ListReportRecords(ctx context.Context, from, to time.Time) ([]ReportRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.status_id,
		       COALESCE(array_agg(sv.name ORDER BY sv.name) FILTER (WHERE sv.name IS NOT NULL), '{}')
		FROM schedulings s
		LEFT JOIN scheduled_services ss ON ss.scheduling_id = s.id
		LEFT JOIN services sv ON sv.id = ss.service_id
		WHERE s.initial_date >= $1 AND s.final_date <= $2
		GROUP BY s.id
		ORDER BY s.created_at
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ReportRecord
	for rows.Next() {
		var rec ReportRecord
		if err := rows.Scan(&rec.SchedulingID, &rec.StatusID, &rec.ServiceNames); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// insertLinks adds one scheduled_services row per service id inside tx.
func insertLinks(ctx context.Context, tx pgx.Tx, schedulingID uuid.UUID, serviceIDs []uuid.UUID) error {
	for _, serviceID := range serviceIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO scheduled_services (scheduling_id, service_id)
			VALUES ($1, $2)
		`, schedulingID, serviceID)
		if err != nil {
			return fmt.Errorf("link service %s: %w", serviceID, err)
		}
	}
	return nil
}

// linkedServiceIDs reads the current link set inside tx, locking the rows
// for the remainder of the transaction.
func linkedServiceIDs(ctx context.Context, tx pgx.Tx, schedulingID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, `
		SELECT service_id
		FROM scheduled_services
		WHERE scheduling_id = $1
		FOR UPDATE
	`, schedulingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// hydrate assembles joined detail for a batch of records from separate
// lookups, one query per referenced table.
func (r *PgRepository) hydrate(ctx context.Context, records []SchedulingRecord) ([]SchedulingDetail, error) {
	details := make([]SchedulingDetail, 0, len(records))
	if len(records) == 0 {
		return details, nil
	}

	ids := make([]uuid.UUID, 0, len(records))
	customerIDs := make([]uuid.UUID, 0, len(records))
	userIDs := make([]uuid.UUID, 0, len(records))
	statusIDs := make([]uuid.UUID, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
		customerIDs = append(customerIDs, rec.CustomerID)
		userIDs = append(userIDs, rec.UserID)
		statusIDs = append(statusIDs, rec.StatusID)
	}

	customers, err := r.customersByID(ctx, customerIDs)
	if err != nil {
		return nil, err
	}
	users, err := r.staffUsersByID(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	statuses, err := r.statusesByID(ctx, statusIDs)
	if err != nil {
		return nil, err
	}
	services, err := r.servicesByScheduling(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		details = append(details, SchedulingDetail{
			SchedulingRecord: rec,
			Customer:         customers[rec.CustomerID],
			User:             users[rec.UserID],
			Status:           statuses[rec.StatusID],
			Services:         services[rec.ID],
		})
	}
	return details, nil
}

func (r *PgRepository) customersByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Customer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.category_id, c.first_name, c.last_name, c.email, c.phone,
		       c.state, c.city, c.zipcode, c.neighborhood, c.street, c.number,
		       c.complement, c.reference, c.created_at, c.updated_at,
		       cat.id, cat.name, cat.created_at, cat.updated_at
		FROM customers c
		LEFT JOIN categories cat ON cat.id = c.category_id
		WHERE c.id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID]*catalog.Customer)
	for rows.Next() {
		var c catalog.Customer
		var catID *uuid.UUID
		var catName *string
		var catCreated, catUpdated *time.Time
		err := rows.Scan(
			&c.ID, &c.CategoryID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
			&c.State, &c.City, &c.Zipcode, &c.Neighborhood, &c.Street, &c.Number,
			&c.Complement, &c.Reference, &c.CreatedAt, &c.UpdatedAt,
			&catID, &catName, &catCreated, &catUpdated,
		)
		if err != nil {
			return nil, err
		}
		if catID != nil {
			c.Category = &catalog.Category{
				ID:        *catID,
				Name:      *catName,
				CreatedAt: *catCreated,
				UpdatedAt: *catUpdated,
			}
		}
		result[c.ID] = &c
	}
	return result, rows.Err()
}

func (r *PgRepository) staffUsersByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.StaffUser, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, last_name, email, phone, password_hash, created_at, updated_at
		FROM staff_users
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID]*catalog.StaffUser)
	for rows.Next() {
		var u catalog.StaffUser
		err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
			&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, err
		}
		result[u.ID] = &u
	}
	return result, rows.Err()
}

func (r *PgRepository) statusesByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Status, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, position, created_at, updated_at
		FROM statuses
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID]*catalog.Status)
	for rows.Next() {
		var s catalog.Status
		if err := rows.Scan(&s.ID, &s.Name, &s.Position, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result[s.ID] = &s
	}
	return result, rows.Err()
}

func (r *PgRepository) servicesByScheduling(ctx context.Context, schedulingIDs []uuid.UUID) (map[uuid.UUID][]catalog.Service, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ss.scheduling_id, sv.id, sv.name, sv.cost::text, sv.created_at, sv.updated_at
		FROM scheduled_services ss
		JOIN services sv ON sv.id = ss.service_id
		WHERE ss.scheduling_id = ANY($1)
		ORDER BY sv.name
	`, schedulingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]catalog.Service)
	for rows.Next() {
		var schedulingID uuid.UUID
		var s catalog.Service
		err := rows.Scan(&schedulingID, &s.ID, &s.Name, &s.Cost, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		result[schedulingID] = append(result[schedulingID], s)
	}
	return result, rows.Err()
}
