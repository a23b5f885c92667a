package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
)

type clientStore struct {
	client *firestore.Client
}

// NewStore adapts a Firestore client to Store.
func NewStore(client *firestore.Client) Store {
	return &clientStore{client: client}
}

func (s *clientStore) Query(ctx context.Context, collection string, filters []Filter, orderBy string) Documents {
	query := s.client.Collection(collection).Query
	for _, f := range filters {
		query = query.Where(f.Path, f.Op, f.Value)
	}
	if orderBy != "" {
		query = query.OrderBy(orderBy, firestore.Asc)
	}
	return &snapshotIterator{it: query.Documents(ctx)}
}

func (s *clientStore) Get(ctx context.Context, collection, id string) (Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return Document{}, err
	}
	return Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

type snapshotIterator struct {
	it *firestore.DocumentIterator
}

func (i *snapshotIterator) Next() (Document, error) {
	snap, err := i.it.Next()
	if err != nil {
		return Document{}, err
	}
	return Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (i *snapshotIterator) Stop() {
	i.it.Stop()
}
