package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CAPRI-CORP/desinfec-backend/internal/catalog"
	"github.com/CAPRI-CORP/desinfec-backend/internal/db"
)

var statusNames = []string{
	"Aguardando Confirmação",
	"Confirmado",
	"Concluído",
	"Cancelado",
}

var categoryNames = []string{
	"Residencial",
	"Comercial",
	"Industrial",
	"Condomínio",
}

var serviceNames = []string{
	"Desinfecção Residencial",
	"Desinfecção Comercial",
	"Desratização",
	"Descupinização",
	"Controle de Escorpiões",
	"Sanitização de Caixa d'Água",
	"Controle de Pombos",
	"Dedetização Geral",
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	statusIDs, err := seedStatuses(context.Background(), pool)
	if err != nil {
		log.Fatalf("seed statuses: %v", err)
	}
	categoryIDs, err := seedCategories(context.Background(), pool)
	if err != nil {
		log.Fatalf("seed categories: %v", err)
	}
	serviceIDs, err := seedServices(context.Background(), pool)
	if err != nil {
		log.Fatalf("seed services: %v", err)
	}
	customerIDs, err := seedCustomers(context.Background(), pool, categoryIDs, 200)
	if err != nil {
		log.Fatalf("seed customers: %v", err)
	}
	staffIDs, err := seedStaffUsers(context.Background(), pool, 10)
	if err != nil {
		log.Fatalf("seed staff users: %v", err)
	}
	if err := seedSchedulings(context.Background(), pool, customerIDs, staffIDs, statusIDs, serviceIDs, 500); err != nil {
		log.Fatalf("seed schedulings: %v", err)
	}

	log.Println("seed complete")
}

func seedStatuses(ctx context.Context, pool *pgxpool.Pool) ([]uuid.UUID, error) {
	log.Printf("seeding %d statuses", len(statusNames))

	for i, name := range statusNames {
		_, err := pool.Exec(ctx, `
			INSERT INTO statuses (id, name, position, created_at, updated_at)
			VALUES ($1, $2, $3, now(), now())
			ON CONFLICT (name) DO NOTHING
		`, uuid.New(), name, i)
		if err != nil {
			return nil, err
		}
	}
	// Re-read so re-runs get the ids that actually exist.
	return tableIDs(ctx, pool, "statuses")
}

func seedCategories(ctx context.Context, pool *pgxpool.Pool) ([]uuid.UUID, error) {
	log.Printf("seeding %d categories", len(categoryNames))

	for _, name := range categoryNames {
		_, err := pool.Exec(ctx, `
			INSERT INTO categories (id, name, created_at, updated_at)
			VALUES ($1, $2, now(), now())
			ON CONFLICT (name) DO NOTHING
		`, uuid.New(), name)
		if err != nil {
			return nil, err
		}
	}
	return tableIDs(ctx, pool, "categories")
}

func seedServices(ctx context.Context, pool *pgxpool.Pool) ([]uuid.UUID, error) {
	log.Printf("seeding %d services", len(serviceNames))

	for _, name := range serviceNames {
		cost := fmt.Sprintf("%.2f", gofakeit.Price(80, 900))
		_, err := pool.Exec(ctx, `
			INSERT INTO services (id, name, cost, created_at, updated_at)
			VALUES ($1, $2, $3, now(), now())
			ON CONFLICT (name) DO NOTHING
		`, uuid.New(), name, cost)
		if err != nil {
			return nil, err
		}
	}
	return tableIDs(ctx, pool, "services")
}

func tableIDs(ctx context.Context, pool *pgxpool.Pool, table string) ([]uuid.UUID, error) {
	rows, err := pool.Query(ctx, `SELECT id FROM `+table)
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

func seedCustomers(ctx context.Context, pool *pgxpool.Pool, categoryIDs []uuid.UUID, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d customers", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		categoryID := categoryIDs[gofakeit.Number(0, len(categoryIDs)-1)]
		addr := gofakeit.Address()

		_, err := tx.Exec(ctx, `
			INSERT INTO customers
				(id, category_id, first_name, last_name, email, phone,
				 state, city, zipcode, neighborhood, street, number, complement, reference,
				 created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULL, NULL, now(), now())
		`, id, categoryID, gofakeit.FirstName(), gofakeit.LastName(),
			fmt.Sprintf("%d.%s", i, gofakeit.Email()), fmt.Sprintf("%d%s", i, gofakeit.Phone()),
			addr.State, addr.City, addr.Zip, gofakeit.Word(), addr.Street, fmt.Sprint(gofakeit.Number(1, 9999)))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("customers seeded")
	return ids, nil
}

func seedStaffUsers(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d staff users", count)

	hash, err := catalog.HashPassword("password")
	if err != nil {
		return nil, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		_, err := tx.Exec(ctx, `
			INSERT INTO staff_users (id, first_name, last_name, email, phone, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		`, id, gofakeit.FirstName(), gofakeit.LastName(),
			fmt.Sprintf("staff%d.%s", i, gofakeit.Email()), gofakeit.Phone(), hash)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("staff users seeded")
	return ids, nil
}

func seedSchedulings(ctx context.Context, pool *pgxpool.Pool, customerIDs, staffIDs, statusIDs, serviceIDs []uuid.UUID, count int) error {
	log.Printf("seeding %d schedulings", count)

	const batchSize = 100

	paymentMethods := []string{"pix", "cartão", "dinheiro", "boleto"}

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for i := offset; i < end; i++ {
			id := uuid.New()
			day := gofakeit.DateRange(
				time.Now().AddDate(0, -3, 0),
				time.Now().AddDate(0, 3, 0),
			).UTC().Truncate(24 * time.Hour)
			startHour := gofakeit.Number(7, 16)
			initial := day.Add(time.Duration(startHour) * time.Hour)
			final := initial.Add(time.Duration(gofakeit.Number(1, 4)) * time.Hour)

			payment := paymentMethods[gofakeit.Number(0, len(paymentMethods)-1)]

			_, err := tx.Exec(ctx, `
				INSERT INTO schedulings
					(id, customer_id, user_id, status_id, cost, observations, payment_method,
					 initial_date, final_date, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
			`, id,
				customerIDs[gofakeit.Number(0, len(customerIDs)-1)],
				staffIDs[gofakeit.Number(0, len(staffIDs)-1)],
				statusIDs[gofakeit.Number(0, len(statusIDs)-1)],
				fmt.Sprintf("%.2f", gofakeit.Price(100, 2000)),
				gofakeit.Sentence(8),
				payment,
				initial, final)
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}

			linked := map[uuid.UUID]struct{}{}
			for n := 0; n < gofakeit.Number(1, 3); n++ {
				serviceID := serviceIDs[gofakeit.Number(0, len(serviceIDs)-1)]
				if _, ok := linked[serviceID]; ok {
					continue
				}
				linked[serviceID] = struct{}{}

				_, err := tx.Exec(ctx, `
					INSERT INTO scheduled_services (scheduling_id, service_id)
					VALUES ($1, $2)
				`, id, serviceID)
				if err != nil {
					_ = tx.Rollback(ctx)
					return err
				}
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		log.Printf("schedulings seeded: %d/%d", end, count)
	}

	log.Println("schedulings seeded")
	return nil
}
