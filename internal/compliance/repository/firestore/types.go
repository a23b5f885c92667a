package firestore

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Documents iterates query results and returns iterator.Done once exhausted.
	Documents interface {
		Next() (Document, error)
		Stop()
	}

	// Store runs the document reads the repository needs.
	Store interface {
		Query(ctx context.Context, collection string, filters []Filter, orderBy string) Documents
		Get(ctx context.Context, collection, id string) (Document, error)
	}

	Metrics interface {
		Observe(operation string, documents int, err error, started time.Time)
	}
)

// Document is a decoded snapshot: its id and field map.
type Document struct {
	ID   string
	Data map[string]any
}

// Filter is a single where clause.
type Filter struct {
	Path  string
	Op    string
	Value any
}
