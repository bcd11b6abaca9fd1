package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSchedulingNotFound = errors.New("scheduling not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrUserNotFound       = errors.New("staff user not found")
	ErrServiceNotFound    = errors.New("one or more services not found")
	ErrStatusNotFound     = errors.New("status not found")
)

// Repository contains all DB interactions needed by the scheduling service.
// Each mutation covers the record and its service links in one transaction:
// no orphan links or half-applied updates are ever observable.
type Repository interface {
	// CreateScheduling inserts the record plus one link per service id.
	CreateScheduling(ctx context.Context, rec *SchedulingRecord, serviceIDs []uuid.UUID) error

	GetScheduling(ctx context.Context, id uuid.UUID) (*SchedulingRecord, error)
	GetSchedulingDetail(ctx context.Context, id uuid.UUID) (*SchedulingDetail, error)
	ListSchedulingDetails(ctx context.Context) ([]SchedulingDetail, error)

	// UpdateScheduling overwrites the scalar fields and reconciles the link
	// set so that exactly serviceIDs remain linked afterwards.
	UpdateScheduling(ctx context.Context, rec *SchedulingRecord, serviceIDs []uuid.UUID) error

	// DeleteScheduling removes the links, then the record.
	DeleteScheduling(ctx context.Context, id uuid.UUID) error

	// ListReportRecords returns schedulings whose window falls inside
	// [from, to], each with its linked service names.
	ListReportRecords(ctx context.Context, from, to time.Time) ([]ReportRecord, error)
}

// Directory is the narrow view of the catalog the referential validator
// needs: existence checks plus the status set for reporting.
type Directory interface {
	CustomerExists(ctx context.Context, id uuid.UUID) (bool, error)
	StaffUserExists(ctx context.Context, id uuid.UUID) (bool, error)
	StatusExists(ctx context.Context, id uuid.UUID) (bool, error)
	CountServices(ctx context.Context, ids []uuid.UUID) (int, error)
	StatusNames(ctx context.Context) ([]StatusName, error)
}

// StatusName pairs a status id with its display label.
type StatusName struct {
	ID   uuid.UUID
	Name string
}
