package service

import (
	"context"
	"testing"

	"devconnect/apperror"
	"devconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"go", "rust", "sql"}, SplitSkills(" go, rust,,sql "))
	assert.Equal(t, []string{}, SplitSkills(" , "))
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.signup(t, "Ann", "ann@example.com")

	created, err := f.svc.Profiles.Upsert(ctx, id, models.ProfileRequest{
		Handle:  "ann",
		Status:  "Developer",
		Skills:  "go, docker",
		Company: "Acme",
		Twitter: "https://twitter.com/ann",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "docker"}, created.Skills)
	assert.Equal(t, "https://twitter.com/ann", created.Social.Twitter)
	assert.Equal(t, testNow, created.Date)

	updated, err := f.svc.Profiles.Upsert(ctx, id, models.ProfileRequest{Handle: "ann", Status: "Lead", Skills: "go"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Lead", updated.Status)
	assert.Equal(t, "Acme", updated.Company)
	assert.Empty(t, updated.Social.Twitter)
}

func TestUpsertRejectsTakenHandle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann := f.signup(t, "Ann", "ann@example.com")
	bob := f.signup(t, "Bob", "bob@example.com")
	f.withProfile(t, ann, "dev")

	_, err := f.svc.Profiles.Upsert(ctx, bob, models.ProfileRequest{Handle: "dev", Status: "x", Skills: "go"})
	assertKind(t, err, apperror.KindConflict, "handle", "The handle already exists")

	f.withProfile(t, bob, "bob")
	_, err = f.svc.Profiles.Upsert(ctx, bob, models.ProfileRequest{Handle: "dev", Status: "x", Skills: "go"})
	assertKind(t, err, apperror.KindConflict, "handle", "The handle already exists")
}

func TestUpsertValidation(t *testing.T) {
	f := newFixture(t)
	id := f.signup(t, "Ann", "ann@example.com")

	_, err := f.svc.Profiles.Upsert(context.Background(), id, models.ProfileRequest{Website: "not a url"})
	assertKind(t, err, apperror.KindValidation, "status", "Status field is required")
	assert.Equal(t, "Not a valid URL", apperror.As(err).Fields["website"])
}

func TestProfileLookups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Profiles.All(ctx)
	assertKind(t, err, apperror.KindNotFound, "noprofile", "There are no profiles")

	id := f.signup(t, "Ann", "ann@example.com")
	f.withProfile(t, id, "ann")

	byHandle, err := f.svc.Profiles.ByHandle(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, "Ann", byHandle.User.Name)
	assert.Equal(t, id.Avatar, byHandle.User.Avatar)

	byUser, err := f.svc.Profiles.ByUser(ctx, id.ID)
	require.NoError(t, err)
	assert.Equal(t, byHandle.ID, byUser.ID)

	all, err := f.svc.Profiles.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Ann", all[0].User.Name)

	_, err = f.svc.Profiles.ByHandle(ctx, "nobody")
	assertKind(t, err, apperror.KindNotFound, "noprofile", "No profile found for this handle")

	_, err = f.svc.Profiles.ByUser(ctx, "not-an-id")
	assertKind(t, err, apperror.KindNotFound, "noprofile", "No profile by this user id")
}

func TestExperienceIsPrependedAndRemovedById(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.signup(t, "Ann", "ann@example.com")

	_, err := f.svc.Profiles.AddExperience(ctx, id, models.ExperienceRequest{Title: "Dev", Company: "A", From: "2020-01-01"})
	assertKind(t, err, apperror.KindNotFound, "noprofile", "You must have a profile to add experience")

	f.withProfile(t, id, "ann")
	for _, company := range []string{"A", "B", "C"} {
		_, err := f.svc.Profiles.AddExperience(ctx, id, models.ExperienceRequest{Title: "Dev", Company: company, From: "2020-01-01", To: "2021-06-30"})
		require.NoError(t, err)
	}

	profile, err := f.svc.Profiles.Own(ctx, id)
	require.NoError(t, err)
	require.Len(t, profile.Experience, 3)
	assert.Equal(t, "C", profile.Experience[0].Company)
	assert.Equal(t, "A", profile.Experience[2].Company)
	require.NotNil(t, profile.Experience[0].To)
	assert.Equal(t, 2021, profile.Experience[0].To.Year())

	middle := profile.Experience[1].ID.Hex()
	updated, removed, err := f.svc.Profiles.DeleteExperience(ctx, id, middle)
	require.NoError(t, err)
	assert.True(t, removed)
	require.Len(t, updated.Experience, 2)
	assert.Equal(t, "C", updated.Experience[0].Company)
	assert.Equal(t, "A", updated.Experience[1].Company)

	_, removed, err = f.svc.Profiles.DeleteExperience(ctx, id, middle)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestEducationLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.signup(t, "Ann", "ann@example.com")

	_, err := f.svc.Profiles.AddEducation(ctx, id, models.EducationRequest{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2015-09-01"})
	assertKind(t, err, apperror.KindNotFound, "noprofile", "You must have a profile to add education background")

	_, err = f.svc.Profiles.AddEducation(ctx, id, models.EducationRequest{School: "MIT"})
	assertKind(t, err, apperror.KindValidation, "from", "From date field is required")

	f.withProfile(t, id, "")
	profile, err := f.svc.Profiles.AddEducation(ctx, id, models.EducationRequest{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2015-09-01", Current: true})
	require.NoError(t, err)
	require.Len(t, profile.Education, 1)
	assert.Nil(t, profile.Education[0].To)

	_, removed, err := f.svc.Profiles.DeleteEducation(ctx, id, "garbage")
	require.NoError(t, err)
	assert.False(t, removed)

	profile, removed, err = f.svc.Profiles.DeleteEducation(ctx, id, profile.Education[0].ID.Hex())
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, profile.Education)
}

func TestUpsertValidatesTrimmedHandle(t *testing.T) {
	f := newFixture(t)
	id := f.signup(t, "Ann", "ann@example.com")

	_, err := f.svc.Profiles.Upsert(context.Background(), id, models.ProfileRequest{Handle: " a", Status: "dev", Skills: "go"})
	assertKind(t, err, apperror.KindValidation, "handle", "Handle needs to be between 2 and 40 characters")
}
