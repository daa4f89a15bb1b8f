package repositories

import (
	"context"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
)

// DemandRepository provides read access to master production schedules.
type DemandRepository interface {
	// GetMPS returns the schedule header, or (nil, nil) when unknown.
	GetMPS(ctx context.Context, id entities.MPSID) (*entities.MPS, error)

	// GetScheduleLines returns the MPS's demand lines in schedule order.
	// An MPS without lines yields an empty slice, not an error.
	GetScheduleLines(ctx context.Context, id entities.MPSID) ([]*entities.ScheduleLine, error)
}
