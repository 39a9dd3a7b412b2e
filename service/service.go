// Package service holds the business rules for accounts, profiles and posts.
// Every error it returns is an *apperror.Error.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devconnect/apperror"
	"devconnect/auth"
	"devconnect/lock"
	"devconnect/models"
	"devconnect/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Deps struct {
	Store  *repository.Store
	Hasher *auth.Hasher
	Tokens *auth.TokenService
	Locker lock.Locker
	Log    *zap.Logger
	Now    func() time.Time
}

type Services struct {
	Users    *UserService
	Profiles *ProfileService
	Posts    *PostService
}

func New(d Deps) *Services {
	if d.Locker == nil {
		d.Locker = lock.Nop{}
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Services{
		Users:    &UserService{deps: d},
		Profiles: &ProfileService{deps: d},
		Posts:    &PostService{deps: d},
	}
}

// storeErr classifies a repository failure. notFound and conflict may be nil
// when the caller does not expect that outcome.
func storeErr(op string, err error, notFound, conflict *apperror.Error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, repository.ErrDuplicate) && conflict != nil:
		return conflict
	default:
		return apperror.Internal(fmt.Errorf("%s: %w", op, err))
	}
}

// identityID is the requester's id from a verified token.
func identityID(id *auth.Identity) (primitive.ObjectID, error) {
	if id == nil {
		return primitive.NilObjectID, apperror.ErrMissingToken
	}
	oid, err := primitive.ObjectIDFromHex(id.ID)
	if err != nil {
		return primitive.NilObjectID, apperror.ErrInvalidToken
	}
	return oid, nil
}

// parseID turns a path parameter into an ObjectID. A malformed id can never
// match a document, so it is reported as notFound.
func parseID(hex string, notFound *apperror.Error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}

// locked runs fn while holding the document lock for key.
func (d Deps) locked(ctx context.Context, key string, fn func() error) error {
	unlock, err := d.Locker.Lock(ctx, key)
	if err != nil {
		return apperror.Internal(fmt.Errorf("lock %s: %w", key, err))
	}
	defer unlock()
	return fn()
}

// summaries loads the users referenced by ids, keyed by id.
func (d Deps) summaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	users, err := d.Store.Users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, storeErr("load users", err, nil, nil)
	}
	byID := make(map[primitive.ObjectID]models.UserSummary, len(users))
	for _, u := range users {
		byID[u.ID] = u.Summary()
	}
	return byID, nil
}

func summaryOr(byID map[primitive.ObjectID]models.UserSummary, id primitive.ObjectID) models.UserSummary {
	if s, ok := byID[id]; ok {
		return s
	}
	return models.UserSummary{ID: id}
}
