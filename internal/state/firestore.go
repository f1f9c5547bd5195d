package state

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const CollectionState = "client_state"

type stateDoc struct {
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type firestoreKV struct {
	client *firestore.Client
}

func NewFirestoreKV(client *firestore.Client) KV {
	return &firestoreKV{client: client}
}

func (s *firestoreKV) Get(ctx context.Context, key string) ([]byte, error) {
	doc, err := s.client.Collection(CollectionState).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrMissing
	}
	if err != nil {
		return nil, err
	}
	var d stateDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return []byte(d.Value), nil
}

func (s *firestoreKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.client.Collection(CollectionState).Doc(key).Set(ctx, stateDoc{
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	})
	return err
}

func (s *firestoreKV) Delete(ctx context.Context, key string) error {
	_, err := s.client.Collection(CollectionState).Doc(key).Delete(ctx)
	return err
}
