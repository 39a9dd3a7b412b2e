// Package repository stores users, profiles and posts as whole documents.
//
// Nested lists (likes, comments, experience, education) are never updated in
// place: callers load the parent, change it in memory and Save it back in a
// single write.
package repository

import (
	"context"
	"errors"

	"devconnect/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProfileFields are the top-level profile attributes replaced on update.
type ProfileFields struct {
	Handle         string
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string
	Skills         []string
	Social         models.Social
}

type ProfileRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	FindByHandle(ctx context.Context, handle string) (*models.Profile, error)
	FindAll(ctx context.Context) ([]models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	// UpdateFields sets fields on the user's profile and returns the result.
	UpdateFields(ctx context.Context, userID primitive.ObjectID, fields ProfileFields) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

type PostRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	// FindAll returns every post, newest first.
	FindAll(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Save(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Store groups the three collections.
type Store struct {
	Users    UserRepository
	Profiles ProfileRepository
	Posts    PostRepository
}
