package scheduling

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/CAPRI-CORP/desinfec-backend/internal/catalog"
)

// catalogDirectory adapts the catalog repository to the narrow Directory
// view the validator needs.
type catalogDirectory struct {
	repo catalog.Repository
}

func NewCatalogDirectory(repo catalog.Repository) Directory {
	return &catalogDirectory{repo: repo}
}

func (d *catalogDirectory) CustomerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := d.repo.GetCustomerByID(ctx, id)
	if errors.Is(err, catalog.ErrCustomerNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d *catalogDirectory) StaffUserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := d.repo.GetStaffUserByID(ctx, id)
	if errors.Is(err, catalog.ErrStaffUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d *catalogDirectory) StatusExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := d.repo.GetStatusByID(ctx, id)
	if errors.Is(err, catalog.ErrStatusNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d *catalogDirectory) CountServices(ctx context.Context, ids []uuid.UUID) (int, error) {
	return d.repo.CountServicesByIDs(ctx, ids)
}

func (d *catalogDirectory) StatusNames(ctx context.Context) ([]StatusName, error) {
	statuses, err := d.repo.ListStatuses(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]StatusName, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, StatusName{ID: s.ID, Name: s.Name})
	}
	return names, nil
}
