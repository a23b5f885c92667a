package clickhouse

import (
	"context"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Conn is the subset of the ClickHouse connection used by the repository.
	Conn interface {
		Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
		Exec(ctx context.Context, query string, args ...any) error
		Close() error
	}

	// Rows mirrors driver.Rows so it can be mocked.
	Rows interface {
		driver.Rows
	}

	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
