package repository

import (
	"context"
	"errors"
	"fmt"

	"devconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection    = "users"
	ProfilesCollection = "profiles"
	PostsCollection    = "posts"
)

func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Users:    &mongoUsers{coll: db.Collection(UsersCollection)},
		Profiles: &mongoProfiles{coll: db.Collection(ProfilesCollection)},
		Posts:    &mongoPosts{coll: db.Collection(PostsCollection)},
	}
}

func mapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

type mongoUsers struct {
	coll *mongo.Collection
}

func (r *mongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, mapErr("find user", err)
	}
	return &user, nil
}

func (r *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, mapErr("find user by email", err)
	}
	return &user, nil
}

func (r *mongoUsers) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, mapErr("find users", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &users); err != nil {
		return nil, mapErr("decode users", err)
	}
	return users, nil
}

func (r *mongoUsers) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, user)
	return mapErr("insert user", err)
}

func (r *mongoUsers) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr("delete user", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoProfiles struct {
	coll *mongo.Collection
}

func (r *mongoProfiles) findOne(ctx context.Context, filter bson.M) (*models.Profile, error) {
	var profile models.Profile
	if err := r.coll.FindOne(ctx, filter).Decode(&profile); err != nil {
		return nil, mapErr("find profile", err)
	}
	normalizeProfile(&profile)
	return &profile, nil
}

func (r *mongoProfiles) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	return r.findOne(ctx, bson.M{"user": userID})
}

func (r *mongoProfiles) FindByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	return r.findOne(ctx, bson.M{"handle": handle})
}

func (r *mongoProfiles) FindAll(ctx context.Context) ([]models.Profile, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, mapErr("find profiles", err)
	}
	defer cursor.Close(ctx)

	profiles := []models.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, mapErr("decode profiles", err)
	}
	for i := range profiles {
		normalizeProfile(&profiles[i])
	}
	return profiles, nil
}

func (r *mongoProfiles) Create(ctx context.Context, profile *models.Profile) error {
	if profile.ID.IsZero() {
		profile.ID = primitive.NewObjectID()
	}
	normalizeProfile(profile)
	_, err := r.coll.InsertOne(ctx, profile)
	return mapErr("insert profile", err)
}

func (r *mongoProfiles) UpdateFields(ctx context.Context, userID primitive.ObjectID, fields ProfileFields) (*models.Profile, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile models.Profile
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"user": userID}, bson.M{"$set": fields.setDoc()}, opts).Decode(&profile)
	if err != nil {
		return nil, mapErr("update profile", err)
	}
	normalizeProfile(&profile)
	return &profile, nil
}

func (r *mongoProfiles) Save(ctx context.Context, profile *models.Profile) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	if err != nil {
		return mapErr("save profile", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProfiles) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"user": userID})
	return mapErr("delete profile", err)
}

type mongoPosts struct {
	coll *mongo.Collection
}

func (r *mongoPosts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, mapErr("find post", err)
	}
	normalizePost(&post)
	return &post, nil
}

func (r *mongoPosts) FindAll(ctx context.Context) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, mapErr("find posts", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, mapErr("decode posts", err)
	}
	for i := range posts {
		normalizePost(&posts[i])
	}
	return posts, nil
}

func (r *mongoPosts) Create(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	normalizePost(post)
	_, err := r.coll.InsertOne(ctx, post)
	return mapErr("insert post", err)
}

func (r *mongoPosts) Save(ctx context.Context, post *models.Post) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return mapErr("save post", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoPosts) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr("delete post", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
