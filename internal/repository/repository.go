// Package repository provides typed access to the document collections.
package repository

import "context"

// DocumentStore is the collection/id document access the repositories are
// written against. *store.Store satisfies it; tests substitute an in-memory
// fake.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string, out any) error
	Query(ctx context.Context, collection, field string, value any, out any) error
	Set(ctx context.Context, collection, id string, doc any) error
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}
