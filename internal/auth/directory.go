package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/course-platform/internal/model"
	"github.com/iliyamo/course-platform/internal/repository"
)

// UserStore is the slice of the user repository the directory needs.
type UserStore interface {
	Get(ctx context.Context, id string) (model.User, error)
	Upsert(ctx context.Context, u model.User) error
}

// ProfileFetcher fetches a subject's profile from the identity provider.
type ProfileFetcher interface {
	Profile(ctx context.Context, subjectID string) (Profile, error)
}

// Directory maps provider subject ids to local user records. Resolution
// never fails with "not found": an unseen subject is provisioned on the
// spot with the default role.
type Directory struct {
	Users    UserStore
	Provider ProfileFetcher
}

func NewDirectory(users UserStore, provider ProfileFetcher) *Directory {
	return &Directory{Users: users, Provider: provider}
}

// Resolve returns the user record for a verified subject, provisioning it
// when absent. Provisioning is an idempotent upsert: two racing first
// requests for the same subject write identical documents and the second
// write wins harmlessly. Any failure to look up, fetch the profile, or
// persist surfaces as ErrProvisioningFailed.
func (d *Directory) Resolve(ctx context.Context, subjectID string) (model.User, error) {
	u, err := d.Users.Get(ctx, subjectID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return model.User{}, fmt.Errorf("%w: user lookup: %v", ErrProvisioningFailed, err)
	}

	prof, err := d.Provider.Profile(ctx, subjectID)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: profile fetch: %v", ErrProvisioningFailed, err)
	}
	u = model.User{
		ID:          subjectID,
		Email:       prof.Email,
		DisplayName: prof.DisplayName,
		Roles:       []string{model.RoleStudent},
	}
	if err := d.Users.Upsert(ctx, u); err != nil {
		return model.User{}, fmt.Errorf("%w: persist: %v", ErrProvisioningFailed, err)
	}
	return u, nil
}
