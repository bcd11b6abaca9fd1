package scheduling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	redisclient "github.com/CAPRI-CORP/desinfec-backend/internal/redis"
)

var (
	ErrSchedulingBusy = errors.New("scheduling is currently being modified, please retry")
)

// SchedulingInput carries the fields of a create or update request. Date
// and the two clock strings arrive separately and are merged into the
// record's time window.
type SchedulingInput struct {
	CustomerID     uuid.UUID
	ServiceIDs     []uuid.UUID
	UserID         uuid.UUID
	StatusID       uuid.UUID
	Cost           string
	Observations   *string
	PaymentMethod  *string
	Date           time.Time
	InitialTime    string
	ConclusionTime string
}

type Service struct {
	repo   Repository
	dir    Directory
	locker redisclient.Locker
	logger *slog.Logger
}

func NewService(repo Repository, dir Directory, locker redisclient.Locker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		dir:    dir,
		locker: locker,
		logger: logger,
	}
}

// Create validates the referenced entities, composes the time window and
// stores the record with one link per requested service.
func (s *Service) Create(ctx context.Context, in SchedulingInput) (*SchedulingRecord, error) {
	serviceIDs := DedupeServiceIDs(in.ServiceIDs)

	if err := s.validateReferences(ctx, in, serviceIDs); err != nil {
		return nil, err
	}

	window, err := ComposeWindow(in.Date, in.InitialTime, in.ConclusionTime)
	if err != nil {
		return nil, err
	}

	rec := &SchedulingRecord{
		ID:            uuid.New(),
		CustomerID:    in.CustomerID,
		UserID:        in.UserID,
		StatusID:      in.StatusID,
		Cost:          in.Cost,
		Observations:  in.Observations,
		PaymentMethod: in.PaymentMethod,
		InitialDate:   window.Initial,
		FinalDate:     window.Final,
	}

	if err := s.repo.CreateScheduling(ctx, rec, serviceIDs); err != nil {
		return nil, fmt.Errorf("create scheduling: %w", err)
	}

	s.logger.Info("scheduling created",
		"scheduling_id", rec.ID,
		"customer_id", rec.CustomerID,
		"services", len(serviceIDs),
	)

	return rec, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*SchedulingDetail, error) {
	detail, err := s.repo.GetSchedulingDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *Service) List(ctx context.Context) ([]SchedulingDetail, error) {
	return s.repo.ListSchedulingDetails(ctx)
}

// Report buckets the schedulings inside [from, to] by status and counts
// service name occurrences per bucket.
func (s *Service) Report(ctx context.Context, from, to time.Time) (Report, error) {
	records, err := s.repo.ListReportRecords(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list report records: %w", err)
	}

	statuses, err := s.dir.StatusNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}

	return AggregateReport(records, statuses), nil
}

// Update replaces the scalar fields and reconciles the service links so
// the stored set equals the requested one. The per-id lock keeps two
// concurrent read-then-write mutations of the same record from
// interleaving.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in SchedulingInput) error {
	serviceIDs := DedupeServiceIDs(in.ServiceIDs)

	err := s.locker.WithSchedulingLock(ctx, id, func(lockCtx context.Context) error {
		if _, err := s.repo.GetScheduling(lockCtx, id); err != nil {
			return err
		}

		if err := s.validateReferences(lockCtx, in, serviceIDs); err != nil {
			return err
		}

		window, err := ComposeWindow(in.Date, in.InitialTime, in.ConclusionTime)
		if err != nil {
			return err
		}

		rec := &SchedulingRecord{
			ID:            id,
			CustomerID:    in.CustomerID,
			UserID:        in.UserID,
			StatusID:      in.StatusID,
			Cost:          in.Cost,
			Observations:  in.Observations,
			PaymentMethod: in.PaymentMethod,
			InitialDate:   window.Initial,
			FinalDate:     window.Final,
		}

		if err := s.repo.UpdateScheduling(lockCtx, rec, serviceIDs); err != nil {
			return fmt.Errorf("update scheduling: %w", err)
		}

		s.logger.Info("scheduling updated", "scheduling_id", id, "services", len(serviceIDs))
		return nil
	})

	if errors.Is(err, redisclient.ErrLockNotAcquired) {
		return ErrSchedulingBusy
	}
	return err
}

// Delete removes the service links, then the record itself.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.locker.WithSchedulingLock(ctx, id, func(lockCtx context.Context) error {
		if err := s.repo.DeleteScheduling(lockCtx, id); err != nil {
			return err
		}
		s.logger.Info("scheduling deleted", "scheduling_id", id)
		return nil
	})

	if errors.Is(err, redisclient.ErrLockNotAcquired) {
		return ErrSchedulingBusy
	}
	return err
}

// validateReferences confirms customer, staff user, status and every
// requested service resolve to existing records. A single unknown service
// id fails the whole batch.
func (s *Service) validateReferences(ctx context.Context, in SchedulingInput, serviceIDs []uuid.UUID) error {
	ok, err := s.dir.StaffUserExists(ctx, in.UserID)
	if err != nil {
		return fmt.Errorf("check staff user: %w", err)
	}
	if !ok {
		return ErrUserNotFound
	}

	ok, err = s.dir.CustomerExists(ctx, in.CustomerID)
	if err != nil {
		return fmt.Errorf("check customer: %w", err)
	}
	if !ok {
		return ErrCustomerNotFound
	}

	ok, err = s.dir.StatusExists(ctx, in.StatusID)
	if err != nil {
		return fmt.Errorf("check status: %w", err)
	}
	if !ok {
		return ErrStatusNotFound
	}

	count, err := s.dir.CountServices(ctx, serviceIDs)
	if err != nil {
		return fmt.Errorf("check services: %w", err)
	}
	if count < len(serviceIDs) {
		return ErrServiceNotFound
	}

	return nil
}
