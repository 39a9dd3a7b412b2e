package repository

import (
	"context"
	"testing"
	"time"

	"devconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryUsersUniqueEmail(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := &models.User{Name: "Ann", Email: "ann@example.com"}
	require.NoError(t, store.Users.Create(ctx, first))
	assert.False(t, first.ID.IsZero())

	err := store.Users.Create(ctx, &models.User{Name: "Other", Email: "ann@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	found, err := store.Users.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	require.NoError(t, store.Users.Delete(ctx, first.ID))
	assert.ErrorIs(t, store.Users.Delete(ctx, first.ID), ErrNotFound)
}

func TestMemoryProfilesReturnCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	userID := primitive.NewObjectID()

	require.NoError(t, store.Profiles.Create(ctx, &models.Profile{User: userID, Status: "dev", Skills: []string{"go"}}))

	loaded, err := store.Profiles.FindByUser(ctx, userID)
	require.NoError(t, err)
	loaded.Skills[0] = "changed"
	loaded.Experience = append(loaded.Experience, models.Experience{ID: primitive.NewObjectID()})

	again, err := store.Profiles.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, again.Skills)
	assert.Empty(t, again.Experience)
}

func TestMemoryProfilesHandleUnique(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	ann, bob := primitive.NewObjectID(), primitive.NewObjectID()

	require.NoError(t, store.Profiles.Create(ctx, &models.Profile{User: ann, Handle: "ann", Status: "dev"}))
	require.NoError(t, store.Profiles.Create(ctx, &models.Profile{User: bob, Status: "dev"}))

	assert.ErrorIs(t, store.Profiles.Create(ctx, &models.Profile{User: primitive.NewObjectID(), Handle: "ann"}), ErrDuplicate)
	assert.ErrorIs(t, store.Profiles.Create(ctx, &models.Profile{User: ann}), ErrDuplicate)

	_, err := store.Profiles.UpdateFields(ctx, bob, ProfileFields{Handle: "ann", Status: "dev"})
	assert.ErrorIs(t, err, ErrDuplicate)

	updated, err := store.Profiles.UpdateFields(ctx, ann, ProfileFields{Handle: "ann", Bio: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", updated.Bio)
	assert.Equal(t, "dev", updated.Status)
}

func TestMemoryProfilesUpdateMissing(t *testing.T) {
	_, err := NewMemoryStore().Profiles.UpdateFields(context.Background(), primitive.NewObjectID(), ProfileFields{Status: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryPostsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, text := range []string{"first", "second", "third"} {
		require.NoError(t, store.Posts.Create(ctx, &models.Post{Text: text, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	posts, err := store.Posts.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Text)
	assert.Equal(t, "first", posts[2].Text)
	assert.NotNil(t, posts[0].Likes)
}

func TestMemoryPostsSaveReplacesWholeDocument(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	post := &models.Post{Text: "hello"}
	require.NoError(t, store.Posts.Create(ctx, post))

	post.Likes = append(post.Likes, models.Like{ID: primitive.NewObjectID(), User: primitive.NewObjectID()})
	require.NoError(t, store.Posts.Save(ctx, post))

	loaded, err := store.Posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Likes, 1)

	assert.ErrorIs(t, store.Posts.Save(ctx, &models.Post{ID: primitive.NewObjectID()}), ErrNotFound)
	require.NoError(t, store.Posts.Delete(ctx, post.ID))
	_, err = store.Posts.FindByID(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileFieldsSetDoc(t *testing.T) {
	set := ProfileFields{Status: "dev", Skills: []string{"go"}}.setDoc()

	assert.Equal(t, "dev", set["status"])
	assert.Equal(t, []string{"go"}, set["skills"])
	assert.Contains(t, set, "social")
	assert.NotContains(t, set, "handle")
}
