package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"devconnect/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewMemoryStore returns a store kept in process memory. It enforces the same
// unique keys as the mongo indexes: user email, profile user and profile handle.
func NewMemoryStore() *Store {
	return &Store{
		Users:    &memoryUsers{docs: map[primitive.ObjectID]models.User{}},
		Profiles: &memoryProfiles{docs: map[primitive.ObjectID]models.Profile{}},
		Posts:    &memoryPosts{docs: map[primitive.ObjectID]models.Post{}},
	}
}

type memoryUsers struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.User
}

func (r *memoryUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.docs {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUsers) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := []models.User{}
	for _, id := range ids {
		if user, ok := r.docs[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *memoryUsers) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.docs {
		if existing.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.docs[user.ID] = *user
	return nil
}

func (r *memoryUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

type memoryProfiles struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.Profile
}

func cloneProfile(p models.Profile) *models.Profile {
	out := p
	out.Skills = append([]string{}, p.Skills...)
	out.Experience = make([]models.Experience, len(p.Experience))
	for i, exp := range p.Experience {
		exp.To = cloneTime(exp.To)
		out.Experience[i] = exp
	}
	out.Education = make([]models.Education, len(p.Education))
	for i, edu := range p.Education {
		edu.To = cloneTime(edu.To)
		out.Education[i] = edu
	}
	return &out
}

// handleTaken reports whether another profile owns handle. Callers hold mu.
func (r *memoryProfiles) handleTaken(handle string, self primitive.ObjectID) bool {
	if handle == "" {
		return false
	}
	for id, p := range r.docs {
		if id != self && p.Handle == handle {
			return true
		}
	}
	return false
}

func (r *memoryProfiles) find(match func(models.Profile) bool) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.docs {
		if match(p) {
			return cloneProfile(p), nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryProfiles) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	return r.find(func(p models.Profile) bool { return p.User == userID })
}

func (r *memoryProfiles) FindByHandle(_ context.Context, handle string) (*models.Profile, error) {
	return r.find(func(p models.Profile) bool { return handle != "" && p.Handle == handle })
}

func (r *memoryProfiles) FindAll(_ context.Context) ([]models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]models.Profile, 0, len(r.docs))
	for _, p := range r.docs {
		profiles = append(profiles, *cloneProfile(p))
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].ID.Hex() < profiles[j].ID.Hex()
	})
	return profiles, nil
}

func (r *memoryProfiles) Create(_ context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if profile.ID.IsZero() {
		profile.ID = primitive.NewObjectID()
	}
	for _, p := range r.docs {
		if p.User == profile.User {
			return ErrDuplicate
		}
	}
	if r.handleTaken(profile.Handle, profile.ID) {
		return ErrDuplicate
	}
	normalizeProfile(profile)
	r.docs[profile.ID] = *cloneProfile(*profile)
	return nil
}

func (r *memoryProfiles) UpdateFields(_ context.Context, userID primitive.ObjectID, fields ProfileFields) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.docs {
		if p.User != userID {
			continue
		}
		if r.handleTaken(fields.Handle, id) {
			return nil, ErrDuplicate
		}
		updated := cloneProfile(p)
		fields.apply(updated)
		r.docs[id] = *cloneProfile(*updated)
		return updated, nil
	}
	return nil, ErrNotFound
}

func (r *memoryProfiles) Save(_ context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[profile.ID]; !ok {
		return ErrNotFound
	}
	if r.handleTaken(profile.Handle, profile.ID) {
		return ErrDuplicate
	}
	r.docs[profile.ID] = *cloneProfile(*profile)
	return nil
}

func (r *memoryProfiles) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.docs {
		if p.User == userID {
			delete(r.docs, id)
		}
	}
	return nil
}

type memoryPosts struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.Post
}

func clonePost(p models.Post) *models.Post {
	out := p
	out.Likes = append([]models.Like{}, p.Likes...)
	out.Comments = append([]models.Comment{}, p.Comments...)
	return &out
}

func (r *memoryPosts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clonePost(post), nil
}

func (r *memoryPosts) FindAll(_ context.Context) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]models.Post, 0, len(r.docs))
	for _, p := range r.docs {
		posts = append(posts, *clonePost(p))
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID.Hex() > posts[j].ID.Hex()
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *memoryPosts) Create(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if _, ok := r.docs[post.ID]; ok {
		return ErrDuplicate
	}
	normalizePost(post)
	r.docs[post.ID] = *clonePost(*post)
	return nil
}

func (r *memoryPosts) Save(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[post.ID]; !ok {
		return ErrNotFound
	}
	r.docs[post.ID] = *clonePost(*post)
	return nil
}

func (r *memoryPosts) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
