package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/CAPRI-CORP/desinfec-backend/internal/catalog"
)

// SchedulingRecord is one appointment: a customer, a staff user, a status,
// a cost and a composed time window. The covered services live in the
// scheduled_services join table.
type SchedulingRecord struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	UserID        uuid.UUID
	StatusID      uuid.UUID
	Cost          string
	Observations  *string
	PaymentMethod *string
	InitialDate   time.Time
	FinalDate     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SchedulingDetail is a record hydrated with its referenced entities.
type SchedulingDetail struct {
	SchedulingRecord
	Customer *catalog.Customer
	User     *catalog.StaffUser
	Status   *catalog.Status
	Services []catalog.Service
}

// ReportRecord is the slice of a scheduling the report aggregator needs:
// which status bucket it falls into and the names of its linked services.
type ReportRecord struct {
	SchedulingID uuid.UUID
	StatusID     uuid.UUID
	ServiceNames []string
}

// ServiceCount is one report entry: how many schedulings in a status
// bucket covered the named service.
type ServiceCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Report maps a status label to its service frequency list. Every known
// status appears, empty slice when nothing matched.
type Report map[string][]ServiceCount
