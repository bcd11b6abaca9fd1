package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CAPRI-CORP/desinfec-backend/internal/config"
	"github.com/CAPRI-CORP/desinfec-backend/internal/db"
)

type SimConfig struct {
	APIBaseURL  string
	Duration    time.Duration
	Workers     int
	CreateRatio float64
	UpdateRatio float64
	ReadRatio   float64
	ReportRatio float64
	PostgresDSN string
}

// DataPool holds ids loaded from Postgres so workers can issue requests
// against real referenced entities.
type DataPool struct {
	Customers   []uuid.UUID
	Staff       []uuid.UUID
	Statuses    []uuid.UUID
	Services    []uuid.UUID
	Schedulings []uuid.UUID
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Conflict  int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, success bool, conflict bool) {
	atomic.AddInt64(&om.Total, 1)
	if success {
		atomic.AddInt64(&om.Success, 1)
	} else if conflict {
		atomic.AddInt64(&om.Conflict, 1)
	} else {
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)

	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]

	p50Idx := len(latencies) * 50 / 100
	if p50Idx >= len(latencies) {
		p50Idx = len(latencies) - 1
	}
	p50 = latencies[p50Idx]

	p95Idx := len(latencies) * 95 / 100
	if p95Idx >= len(latencies) {
		p95Idx = len(latencies) - 1
	}
	p95 = latencies[p95Idx]

	return avg, min, max, p50, p95
}

type Metrics struct {
	Create OperationMetrics
	Update OperationMetrics
	Read   OperationMetrics
	List   OperationMetrics
	Report OperationMetrics
}

type Simulator struct {
	config  SimConfig
	pool    *DataPool
	client  *http.Client
	metrics Metrics
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	log.Printf("config: duration=%s workers=%d create=%.2f update=%.2f read=%.2f report=%.2f",
		cfg.Duration, cfg.Workers, cfg.CreateRatio, cfg.UpdateRatio, cfg.ReadRatio, cfg.ReportRatio)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgPool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pgPool.Close()

	dataPool, err := loadDataPool(ctx, pgPool)
	if err != nil {
		log.Fatalf("load data pool: %v", err)
	}

	log.Printf("loaded: %d customers, %d staff, %d statuses, %d services, %d schedulings",
		len(dataPool.Customers), len(dataPool.Staff), len(dataPool.Statuses),
		len(dataPool.Services), len(dataPool.Schedulings))

	sim := &Simulator{
		config: cfg,
		pool:   dataPool,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	sim.Run()
	sim.PrintReport()
}

func loadConfig() SimConfig {
	baseCfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load base config: %v", err)
	}

	cfg := SimConfig{
		APIBaseURL:  getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Duration:    getDuration("SIM_DURATION", 30*time.Second),
		Workers:     getInt("SIM_WORKERS", 10),
		CreateRatio: getFloat("SIM_CREATE_RATIO", 0.4),
		UpdateRatio: getFloat("SIM_UPDATE_RATIO", 0.2),
		ReadRatio:   getFloat("SIM_READ_RATIO", 0.3),
		ReportRatio: getFloat("SIM_REPORT_RATIO", 0.1),
		PostgresDSN: baseCfg.PostgresDSN,
	}

	total := cfg.CreateRatio + cfg.UpdateRatio + cfg.ReadRatio + cfg.ReportRatio
	if total > 0 {
		cfg.CreateRatio /= total
		cfg.UpdateRatio /= total
		cfg.ReadRatio /= total
		cfg.ReportRatio /= total
	}

	return cfg
}

func validateConfig(cfg SimConfig) error {
	if cfg.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required (set in .env or environment)")
	}
	if cfg.Workers <= 0 {
		return fmt.Errorf("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("SIM_DURATION must be > 0")
	}
	return nil
}

func loadIDs(ctx context.Context, pool *pgxpool.Pool, query string) ([]uuid.UUID, error) {
	rows, err := pool.Query(ctx, query)
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

func loadDataPool(ctx context.Context, pool *pgxpool.Pool) (*DataPool, error) {
	dataPool := &DataPool{}
	var err error

	if dataPool.Customers, err = loadIDs(ctx, pool, `SELECT id FROM customers LIMIT 2000`); err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	if dataPool.Staff, err = loadIDs(ctx, pool, `SELECT id FROM staff_users LIMIT 100`); err != nil {
		return nil, fmt.Errorf("load staff: %w", err)
	}
	if dataPool.Statuses, err = loadIDs(ctx, pool, `SELECT id FROM statuses`); err != nil {
		return nil, fmt.Errorf("load statuses: %w", err)
	}
	if dataPool.Services, err = loadIDs(ctx, pool, `SELECT id FROM services`); err != nil {
		return nil, fmt.Errorf("load services: %w", err)
	}
	if dataPool.Schedulings, err = loadIDs(ctx, pool, `SELECT id FROM schedulings LIMIT 2000`); err != nil {
		return nil, fmt.Errorf("load schedulings: %w", err)
	}

	if len(dataPool.Customers) == 0 || len(dataPool.Staff) == 0 ||
		len(dataPool.Statuses) == 0 || len(dataPool.Services) == 0 {
		return nil, fmt.Errorf("catalog tables are empty, run cmd/seed first")
	}

	return dataPool, nil
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	log.Printf("starting simulation for %s with %d workers", s.config.Duration, s.config.Workers)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	log.Println("simulation complete")
}

func (s *Simulator) worker(ctx context.Context, workerID int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	for {
		select {
		case <-ctx.Done():
			return
		default:
			r := rng.Float64()
			switch {
			case r < s.config.CreateRatio:
				s.doCreate(ctx, rng)
			case r < s.config.CreateRatio+s.config.UpdateRatio:
				s.doUpdate(ctx, rng)
			case r < s.config.CreateRatio+s.config.UpdateRatio+s.config.ReadRatio:
				if rng.Intn(2) == 0 {
					s.doRead(ctx, rng)
				} else {
					s.doList(ctx)
				}
			default:
				s.doReport(ctx, rng)
			}
		}
	}
}

func (s *Simulator) schedulingBody(rng *rand.Rand) []byte {
	day := time.Now().AddDate(0, 0, rng.Intn(60)-30)
	startHour := 7 + rng.Intn(10)

	serviceCount := 1 + rng.Intn(3)
	services := make([]string, 0, serviceCount)
	for i := 0; i < serviceCount; i++ {
		services = append(services, s.pool.Services[rng.Intn(len(s.pool.Services))].String())
	}

	body, _ := json.Marshal(map[string]any{
		"customerId":     s.pool.Customers[rng.Intn(len(s.pool.Customers))].String(),
		"serviceId":      services,
		"userId":         s.pool.Staff[rng.Intn(len(s.pool.Staff))].String(),
		"statusId":       s.pool.Statuses[rng.Intn(len(s.pool.Statuses))].String(),
		"cost":           fmt.Sprintf("%d.00", 100+rng.Intn(1900)),
		"date":           day.Format("2006-01-02"),
		"initialTime":    fmt.Sprintf("%02d:00:00", startHour),
		"conclusionTime": fmt.Sprintf("%02d:00:00", startHour+1+rng.Intn(3)),
	})
	return body
}

func (s *Simulator) doCreate(ctx context.Context, rng *rand.Rand) {
	start := time.Now()

	req, _ := http.NewRequestWithContext(ctx, "POST", s.config.APIBaseURL+"/schedulings",
		bytes.NewReader(s.schedulingBody(rng)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	latency := time.Since(start)

	success := false
	if err == nil {
		resp.Body.Close()
		success = resp.StatusCode == http.StatusCreated
	}
	s.metrics.Create.Record(latency, success, false)
}

func (s *Simulator) doUpdate(ctx context.Context, rng *rand.Rand) {
	if len(s.pool.Schedulings) == 0 {
		return
	}
	id := s.pool.Schedulings[rng.Intn(len(s.pool.Schedulings))]

	start := time.Now()

	req, _ := http.NewRequestWithContext(ctx, "PUT",
		fmt.Sprintf("%s/schedulings/%s", s.config.APIBaseURL, id),
		bytes.NewReader(s.schedulingBody(rng)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	latency := time.Since(start)

	success := false
	conflict := false
	if err == nil {
		resp.Body.Close()
		success = resp.StatusCode == http.StatusOK
		conflict = resp.StatusCode == http.StatusConflict
	}
	s.metrics.Update.Record(latency, success, conflict)
}

func (s *Simulator) doRead(ctx context.Context, rng *rand.Rand) {
	if len(s.pool.Schedulings) == 0 {
		return
	}
	id := s.pool.Schedulings[rng.Intn(len(s.pool.Schedulings))]

	start := time.Now()

	req, _ := http.NewRequestWithContext(ctx, "GET",
		fmt.Sprintf("%s/schedulings/%s", s.config.APIBaseURL, id), nil)

	resp, err := s.client.Do(req)
	latency := time.Since(start)

	success := false
	if err == nil {
		resp.Body.Close()
		success = resp.StatusCode == http.StatusOK
	}
	s.metrics.Read.Record(latency, success, false)
}

func (s *Simulator) doList(ctx context.Context) {
	start := time.Now()

	req, _ := http.NewRequestWithContext(ctx, "GET", s.config.APIBaseURL+"/schedulings", nil)

	resp, err := s.client.Do(req)
	latency := time.Since(start)

	success := false
	if err == nil {
		resp.Body.Close()
		success = resp.StatusCode == http.StatusOK
	}
	s.metrics.List.Record(latency, success, false)
}

func (s *Simulator) doReport(ctx context.Context, rng *rand.Rand) {
	from := time.Now().AddDate(0, 0, -30-rng.Intn(30))
	to := from.AddDate(0, 1, 0)

	start := time.Now()

	req, _ := http.NewRequestWithContext(ctx, "GET",
		fmt.Sprintf("%s/schedulings?initialDate=%s&finalDate=%s",
			s.config.APIBaseURL, from.Format("2006-01-02"), to.Format("2006-01-02")), nil)

	resp, err := s.client.Do(req)
	latency := time.Since(start)

	success := false
	if err == nil {
		resp.Body.Close()
		success = resp.StatusCode == http.StatusOK
	}
	s.metrics.Report.Record(latency, success, false)
}

func (s *Simulator) PrintReport() {
	fmt.Println()
	fmt.Println("=== simulation report ===")
	printOp("create", &s.metrics.Create)
	printOp("update", &s.metrics.Update)
	printOp("read", &s.metrics.Read)
	printOp("list", &s.metrics.List)
	printOp("report", &s.metrics.Report)
}

func printOp(name string, om *OperationMetrics) {
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		fmt.Printf("%-8s no requests\n", name)
		return
	}
	avg, min, max, p50, p95 := om.Stats()
	fmt.Printf("%-8s total=%d success=%d conflict=%d error=%d avg=%s min=%s max=%s p50=%s p95=%s\n",
		name, total,
		atomic.LoadInt64(&om.Success),
		atomic.LoadInt64(&om.Conflict),
		atomic.LoadInt64(&om.Error),
		avg, min, max, p50, p95)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
