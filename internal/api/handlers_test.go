package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/CAPRI-CORP/desinfec-backend/internal/catalog"
	"github.com/CAPRI-CORP/desinfec-backend/internal/scheduling"
)

type fakeSchedulingRepo struct {
	records map[uuid.UUID]*scheduling.SchedulingRecord
	links   map[uuid.UUID][]uuid.UUID
}

func newFakeSchedulingRepo() *fakeSchedulingRepo {
	return &fakeSchedulingRepo{
		records: make(map[uuid.UUID]*scheduling.SchedulingRecord),
		links:   make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *fakeSchedulingRepo) CreateScheduling(_ context.Context, rec *scheduling.SchedulingRecord, serviceIDs []uuid.UUID) error {
	cp := *rec
	r.records[rec.ID] = &cp
	r.links[rec.ID] = append([]uuid.UUID(nil), serviceIDs...)
	return nil
}

func (r *fakeSchedulingRepo) GetScheduling(_ context.Context, id uuid.UUID) (*scheduling.SchedulingRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, scheduling.ErrSchedulingNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeSchedulingRepo) GetSchedulingDetail(_ context.Context, id uuid.UUID) (*scheduling.SchedulingDetail, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, scheduling.ErrSchedulingNotFound
	}
	return &scheduling.SchedulingDetail{SchedulingRecord: *rec}, nil
}

func (r *fakeSchedulingRepo) ListSchedulingDetails(_ context.Context) ([]scheduling.SchedulingDetail, error) {
	out := make([]scheduling.SchedulingDetail, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, scheduling.SchedulingDetail{SchedulingRecord: *rec})
	}
	return out, nil
}

func (r *fakeSchedulingRepo) UpdateScheduling(_ context.Context, rec *scheduling.SchedulingRecord, serviceIDs []uuid.UUID) error {
	if _, ok := r.records[rec.ID]; !ok {
		return scheduling.ErrSchedulingNotFound
	}
	cp := *rec
	r.records[rec.ID] = &cp
	r.links[rec.ID] = append([]uuid.UUID(nil), serviceIDs...)
	return nil
}

func (r *fakeSchedulingRepo) DeleteScheduling(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return scheduling.ErrSchedulingNotFound
	}
	delete(r.records, id)
	delete(r.links, id)
	return nil
}

func (r *fakeSchedulingRepo) ListReportRecords(_ context.Context, from, to time.Time) ([]scheduling.ReportRecord, error) {
	var out []scheduling.ReportRecord
	for id, rec := range r.records {
		if rec.InitialDate.Before(from) || rec.InitialDate.After(to) {
			continue
		}
		out = append(out, scheduling.ReportRecord{SchedulingID: id, StatusID: rec.StatusID})
	}
	return out, nil
}

type fakeDirectory struct {
	customers map[uuid.UUID]bool
	staff     map[uuid.UUID]bool
	statuses  []scheduling.StatusName
	services  map[uuid.UUID]bool
}

func (d *fakeDirectory) CustomerExists(_ context.Context, id uuid.UUID) (bool, error) {
	return d.customers[id], nil
}

func (d *fakeDirectory) StaffUserExists(_ context.Context, id uuid.UUID) (bool, error) {
	return d.staff[id], nil
}

func (d *fakeDirectory) StatusExists(_ context.Context, id uuid.UUID) (bool, error) {
	for _, s := range d.statuses {
		if s.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (d *fakeDirectory) CountServices(_ context.Context, ids []uuid.UUID) (int, error) {
	count := 0
	for _, id := range ids {
		if d.services[id] {
			count++
		}
	}
	return count, nil
}

func (d *fakeDirectory) StatusNames(_ context.Context) ([]scheduling.StatusName, error) {
	return d.statuses, nil
}

type noopLocker struct{}

func (noopLocker) WithSchedulingLock(ctx context.Context, _ uuid.UUID, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stubCatalogRepo implements the handful of catalog methods the router
// tests exercise; the embedded interface panics on anything else.
type stubCatalogRepo struct {
	catalog.Repository
	categories map[uuid.UUID]*catalog.Category
	statuses   map[uuid.UUID]*catalog.Status
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{
		categories: make(map[uuid.UUID]*catalog.Category),
		statuses:   make(map[uuid.UUID]*catalog.Status),
	}
}

func (r *stubCatalogRepo) CreateCategory(_ context.Context, c *catalog.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *stubCatalogRepo) GetCategoryByID(_ context.Context, id uuid.UUID) (*catalog.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, catalog.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCatalogRepo) GetCategoryByName(_ context.Context, name string) (*catalog.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, catalog.ErrCategoryNotFound
}

func (r *stubCatalogRepo) ListCategories(_ context.Context) ([]catalog.Category, error) {
	out := make([]catalog.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCatalogRepo) ListStatuses(_ context.Context) ([]catalog.Status, error) {
	out := make([]catalog.Status, 0, len(r.statuses))
	for _, s := range r.statuses {
		out = append(out, *s)
	}
	return out, nil
}

type routerFixture struct {
	handler  http.Handler
	repo     *fakeSchedulingRepo
	customer uuid.UUID
	user     uuid.UUID
	status   uuid.UUID
	service  uuid.UUID
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	customer := uuid.New()
	user := uuid.New()
	status := uuid.New()
	service := uuid.New()

	dir := &fakeDirectory{
		customers: map[uuid.UUID]bool{customer: true},
		staff:     map[uuid.UUID]bool{user: true},
		statuses:  []scheduling.StatusName{{ID: status, Name: "Confirmado"}},
		services:  map[uuid.UUID]bool{service: true},
	}
	repo := newFakeSchedulingRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewRouter(RouterConfig{
		Scheduling: scheduling.NewService(repo, dir, noopLocker{}, logger),
		Catalog:    catalog.NewManager(newStubCatalogRepo()),
		Logger:     logger,
		Env:        "test",
		Version:    "test",
	})

	return &routerFixture{
		handler:  handler,
		repo:     repo,
		customer: customer,
		user:     user,
		status:   status,
		service:  service,
	}
}

func (f *routerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *routerFixture) schedulingBody() map[string]any {
	return map[string]any{
		"customerId":     f.customer.String(),
		"serviceId":      []string{f.service.String()},
		"userId":         f.user.String(),
		"statusId":       f.status.String(),
		"cost":           "250.00",
		"date":           "2024-05-10",
		"initialTime":    "09:00:00",
		"conclusionTime": "11:00:00",
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestCreateScheduling(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/schedulings", f.schedulingBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Message == "" {
		t.Error("expected a confirmation message")
	}
	if len(f.repo.records) != 1 {
		t.Errorf("stored %d records, want 1", len(f.repo.records))
	}
}

func TestCreateSchedulingMissingField(t *testing.T) {
	f := newRouterFixture(t)

	body := f.schedulingBody()
	delete(body, "cost")

	rec := f.do(t, http.MethodPost, "/schedulings", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if resp := decodeError(t, rec); resp.Error != "missing_required_field" {
		t.Errorf("error = %q, want missing_required_field", resp.Error)
	}
}

func TestCreateSchedulingEmptyServices(t *testing.T) {
	f := newRouterFixture(t)

	body := f.schedulingBody()
	body["serviceId"] = []string{}

	rec := f.do(t, http.MethodPost, "/schedulings", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateSchedulingUnknownService(t *testing.T) {
	f := newRouterFixture(t)

	body := f.schedulingBody()
	body["serviceId"] = []string{uuid.NewString()}

	rec := f.do(t, http.MethodPost, "/schedulings", body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
	if resp := decodeError(t, rec); resp.Error != "service_not_found" {
		t.Errorf("error = %q, want service_not_found", resp.Error)
	}
	if len(f.repo.records) != 0 {
		t.Error("nothing should be stored on a failed create")
	}
}

func TestCreateSchedulingInvalidWindow(t *testing.T) {
	f := newRouterFixture(t)

	body := f.schedulingBody()
	body["initialTime"] = "15:00:00"
	body["conclusionTime"] = "14:00:00"

	rec := f.do(t, http.MethodPost, "/schedulings", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if resp := decodeError(t, rec); resp.Error != "invalid_window" {
		t.Errorf("error = %q, want invalid_window", resp.Error)
	}
}

func TestListSchedulingsEmpty(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/schedulings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp []SchedulingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	if len(resp) != 0 {
		t.Errorf("got %d schedulings, want 0", len(resp))
	}
}

func TestGetSchedulingNotFound(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/schedulings/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestGetSchedulingBadID(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/schedulings/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestGetSchedulingRoundTrip(t *testing.T) {
	f := newRouterFixture(t)

	if rec := f.do(t, http.MethodPost, "/schedulings", f.schedulingBody()); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}

	var id uuid.UUID
	for storedID := range f.repo.records {
		id = storedID
	}

	rec := f.do(t, http.MethodGet, "/schedulings/"+id.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp SchedulingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.ID != id {
		t.Errorf("id = %s, want %s", resp.ID, id)
	}
	if resp.Cost != "250.00" {
		t.Errorf("cost = %q, want 250.00", resp.Cost)
	}
}

func TestDeleteScheduling(t *testing.T) {
	f := newRouterFixture(t)

	if rec := f.do(t, http.MethodPost, "/schedulings", f.schedulingBody()); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var id uuid.UUID
	for storedID := range f.repo.records {
		id = storedID
	}

	if rec := f.do(t, http.MethodDelete, "/schedulings/"+id.String(), nil); rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d: %s", rec.Code, rec.Body.String())
	}
	if rec := f.do(t, http.MethodGet, "/schedulings/"+id.String(), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestListSchedulingsHalfRange(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/schedulings?initialDate=2024-05-01", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if resp := decodeError(t, rec); resp.Error != "invalid_range" {
		t.Errorf("error = %q, want invalid_range", resp.Error)
	}
}

func TestSchedulingReport(t *testing.T) {
	f := newRouterFixture(t)

	if rec := f.do(t, http.MethodPost, "/schedulings", f.schedulingBody()); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}

	rec := f.do(t, http.MethodGet, "/schedulings?initialDate=2024-05-01&finalDate=2024-05-31", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var report map[string][]scheduling.ServiceCount
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	if _, ok := report["Confirmado"]; !ok {
		t.Errorf("report missing Confirmado bucket: %v", report)
	}
}

func TestSchedulingReportInvalidDate(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/schedulings?initialDate=05/01/2024&finalDate=2024-05-31", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateCategory(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/categories", map[string]any{"name": "Residencial"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodPost, "/categories", map[string]any{"name": "Residencial"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
	if resp := decodeError(t, rec); resp.Error != "already_registered" {
		t.Errorf("error = %q, want already_registered", resp.Error)
	}
}

func TestListCategories(t *testing.T) {
	f := newRouterFixture(t)

	for i := 0; i < 3; i++ {
		body := map[string]any{"name": fmt.Sprintf("Categoria %d", i)}
		if rec := f.do(t, http.MethodPost, "/categories", body); rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec := f.do(t, http.MethodGet, "/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp []CategoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(resp) != 3 {
		t.Errorf("got %d categories, want 3", len(resp))
	}
}

func TestCategoryBadID(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/categories/nope", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestHealthLiveness(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/health/live", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp LivenessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}

func TestRequestIDHeader(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/schedulings", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected an X-Request-ID response header")
	}
}
