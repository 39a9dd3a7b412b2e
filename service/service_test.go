package service

import (
	"context"
	"testing"
	"time"

	"devconnect/apperror"
	"devconnect/auth"
	"devconnect/lock"
	"devconnect/models"
	"devconnect/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Str0ng!pass"

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *Services
	store  *repository.Store
	tokens *auth.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := repository.NewMemoryStore()
	tokens := auth.NewTokenService("test-secret", time.Hour).WithClock(func() time.Time { return testNow })
	svc := New(Deps{
		Store:  store,
		Hasher: auth.NewHasher(bcrypt.MinCost),
		Tokens: tokens,
		Locker: lock.NewLocal(),
		Now:    func() time.Time { return testNow },
	})
	return &fixture{svc: svc, store: store, tokens: tokens}
}

func (f *fixture) signup(t *testing.T, name, email string) *auth.Identity {
	t.Helper()

	user, err := f.svc.Users.Signup(context.Background(), models.SignupRequest{Name: name, Email: email, Password: testPassword})
	require.NoError(t, err)
	return &auth.Identity{ID: user.ID.Hex(), Name: user.Name, Email: user.Email, Avatar: user.Avatar}
}

func (f *fixture) withProfile(t *testing.T, id *auth.Identity, handle string) {
	t.Helper()

	_, err := f.svc.Profiles.Upsert(context.Background(), id, models.ProfileRequest{Handle: handle, Status: "Developer", Skills: "go"})
	require.NoError(t, err)
}

func assertKind(t *testing.T, err error, kind apperror.Kind, key, message string) {
	t.Helper()

	require.Error(t, err)
	appErr := apperror.As(err)
	assert.Equal(t, kind, appErr.Kind, err.Error())
	if key != "" {
		assert.Equal(t, message, appErr.Fields[key])
	}
}
