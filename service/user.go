package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"devconnect/apperror"
	"devconnect/auth"
	"devconnect/models"
	"devconnect/repository"
	"devconnect/validation"

	"go.uber.org/zap"
)

var (
	errEmailTaken      = apperror.Conflict("email", "Such email already exists")
	errUnknownEmail    = apperror.New(apperror.KindValidation, "global", "The credentials does not match please confirm email and password")
	errBadPassword     = apperror.Unauthorized("global", "Invalid credentials")
	errUserGone        = apperror.NotFound("user", "User already deleted")
	errCurrentUserGone = apperror.NotFound("nouser", "User not found")
)

type UserService struct {
	deps Deps
}

type LoginResult struct {
	User models.User
	// Token is the value clients send back in the Authorization header.
	Token string
}

// Gravatar builds the avatar URL for an email address.
func Gravatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}

func (s *UserService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	req = req.Trimmed()
	if errs, ok := validation.Signup(req); !ok {
		return nil, apperror.Validation(errs)
	}

	email := strings.ToLower(req.Email)
	_, err := s.deps.Store.Users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, errEmailTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, storeErr("find user", err, nil, nil)
	}

	digest, err := s.deps.Hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := s.deps.Now()
	user := &models.User{
		Name:      req.Name,
		Email:     email,
		Password:  digest,
		Avatar:    Gravatar(email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.deps.Store.Users.Create(ctx, user); err != nil {
		return nil, storeErr("create user", err, nil, errEmailTaken)
	}

	s.deps.Log.Info("user signed up", zap.String("userId", user.ID.Hex()))
	return user, nil
}

func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	if errs, ok := validation.Login(req); !ok {
		return nil, apperror.Validation(errs)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.deps.Store.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, storeErr("find user", err, errUnknownEmail, nil)
	}

	if !s.deps.Hasher.Verify(req.Password, user.Password) {
		return nil, errBadPassword
	}

	token, err := s.deps.Tokens.Issue(auth.Identity{
		ID:     user.ID.Hex(),
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
	})
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("issue token: %w", err))
	}

	return &LoginResult{User: *user, Token: auth.BearerPrefix + token}, nil
}

// Current re-reads the requester from the store.
func (s *UserService) Current(ctx context.Context, id *auth.Identity) (*models.User, error) {
	userID, err := identityID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.deps.Store.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, storeErr("find user", err, errCurrentUserGone, nil)
	}
	return user, nil
}

// DeleteAccount removes the requester's profile, then the account itself.
func (s *UserService) DeleteAccount(ctx context.Context, id *auth.Identity) error {
	userID, err := identityID(id)
	if err != nil {
		return err
	}

	if err := s.deps.Store.Profiles.DeleteByUser(ctx, userID); err != nil {
		return storeErr("delete profile", err, nil, nil)
	}
	if err := s.deps.Store.Users.Delete(ctx, userID); err != nil {
		return storeErr("delete user", err, errUserGone, nil)
	}

	s.deps.Log.Info("account deleted", zap.String("userId", userID.Hex()))
	return nil
}
