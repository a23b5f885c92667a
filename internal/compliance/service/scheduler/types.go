package scheduler

//go:generate mockgen -source=types.go -destination=mocks_test.go -package=scheduler

import (
	"context"
	"time"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
)

type (
	// Settler settles windows and finalizes expired grace periods.
	Settler interface {
		Settle(ctx context.Context, window model.Window) (model.Attempt, error)
		FinalizeExpired(ctx context.Context, limit int) (int, error)
	}

	// Directory lists the companies settled every cycle. An error wrapping
	// model.ErrInvalidCompany may come with the companies that are valid.
	Directory interface {
		Companies(ctx context.Context) ([]model.Company, error)
	}

	// Metrics records scheduled job runs.
	Metrics interface {
		ObserveRun(job string, items int, err error, started time.Time)
	}
)
