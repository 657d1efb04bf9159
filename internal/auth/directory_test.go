package auth

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/iliyamo/course-platform/internal/model"
	"github.com/iliyamo/course-platform/internal/repository"
)

type fakeUserStore struct {
	users   map[string]model.User
	getErr  error
	saveErr error
	upserts int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]model.User{}}
}

func (f *fakeUserStore) Get(_ context.Context, id string) (model.User, error) {
	if f.getErr != nil {
		return model.User{}, f.getErr
	}
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) Upsert(_ context.Context, u model.User) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.upserts++
	f.users[u.ID] = u
	return nil
}

type fakeProvider struct {
	profile Profile
	err     error
	calls   int
}

func (f *fakeProvider) Profile(context.Context, string) (Profile, error) {
	f.calls++
	return f.profile, f.err
}

func TestResolveProvisionsUnseenSubject(t *testing.T) {
	users := newFakeUserStore()
	provider := &fakeProvider{profile: Profile{Email: "ada@example.com", DisplayName: "Ada"}}
	d := NewDirectory(users, provider)

	u, err := d.Resolve(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := model.User{
		ID:          "sub-1",
		Email:       "ada@example.com",
		DisplayName: "Ada",
		Roles:       []string{model.RoleStudent},
	}
	if !reflect.DeepEqual(u, want) {
		t.Errorf("Resolve = %+v, want %+v", u, want)
	}

	// A repeated resolution returns the same record and does not touch the
	// provider again.
	again, err := d.Resolve(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if !reflect.DeepEqual(again, want) {
		t.Errorf("second Resolve = %+v, want %+v", again, want)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
	if users.upserts != 1 {
		t.Errorf("upserts = %d, want 1", users.upserts)
	}
}

func TestResolveExistingUserKeepsRoles(t *testing.T) {
	users := newFakeUserStore()
	users.users["sub-2"] = model.User{
		ID:    "sub-2",
		Email: "inst@example.com",
		Roles: []string{model.RoleInstructor, model.RoleStudent},
	}
	d := NewDirectory(users, &fakeProvider{})

	u, err := d.Resolve(context.Background(), "sub-2")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !u.HasRole(model.RoleInstructor) {
		t.Errorf("existing roles lost: %v", u.Roles)
	}
}

func TestResolveFailuresAreProvisioningFailed(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeUserStore, *fakeProvider)
	}{
		{"lookup error", func(s *fakeUserStore, _ *fakeProvider) {
			s.getErr = errors.New("store down")
		}},
		{"profile fetch error", func(_ *fakeUserStore, p *fakeProvider) {
			p.err = errors.New("provider down")
		}},
		{"persist error", func(s *fakeUserStore, _ *fakeProvider) {
			s.saveErr = errors.New("write failed")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserStore()
			provider := &fakeProvider{}
			tt.setup(users, provider)
			d := NewDirectory(users, provider)

			_, err := d.Resolve(context.Background(), "sub-3")
			if !errors.Is(err, ErrProvisioningFailed) {
				t.Errorf("Resolve error = %v, want ErrProvisioningFailed", err)
			}
		})
	}
}
