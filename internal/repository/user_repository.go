package repository

import (
	"context"
	"errors"

	"github.com/iliyamo/course-platform/internal/model"
	"github.com/iliyamo/course-platform/internal/store"
)

const usersCollection = "users"

var ErrUserNotFound = errors.New("user not found")

type UserRepo struct{ Store DocumentStore }

func NewUserRepo(s DocumentStore) *UserRepo { return &UserRepo{Store: s} }

// Get fetches a user by subject id.
func (r *UserRepo) Get(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.Store.Get(ctx, usersCollection, id, &u)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// Upsert writes the full user document keyed by its subject id. The write is
// idempotent: two racing first-sight provisions produce identical documents
// and the second write is a harmless overwrite.
func (r *UserRepo) Upsert(ctx context.Context, u model.User) error {
	return r.Store.Set(ctx, usersCollection, u.ID, u)
}

// UpdateRoles replaces the stored role set of an existing user.
func (r *UserRepo) UpdateRoles(ctx context.Context, id string, roles []string) error {
	err := r.Store.Update(ctx, usersCollection, id, map[string]any{"roles": roles})
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// List returns all user records.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.Store.Query(ctx, usersCollection, "", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
