package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mediavault/mediavault-backend/internal/common"
	"github.com/mediavault/mediavault-backend/internal/models"
)

// UserRepository persists users in the "users" collection. It implements
// the CredentialLookup, ProfileLookup and UserStore ports of the services
// package.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection("users")}
}

// Create inserts the user. A duplicate email surfaces as ErrEmailExists
// (uniqueness is enforced by the email index, see database.EnsureIndexes).
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrEmailExists
		}
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return user, nil
}

// FindByEmail returns the full user document including the password hash.
// Only the authentication path may use it.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetProfile returns the user keyed by email with the password field
// projected out, so the hash never crosses the authentication boundary.
func (r *UserRepository) GetProfile(ctx context.Context, email string) (*models.User, error) {
	opts := options.FindOne().SetProjection(bson.M{"password": 0})

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByID returns name and email only.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrUserNotFound
	}

	opts := options.FindOne().SetProjection(bson.M{"name": 1, "email": 1})

	var user models.User
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns a page of non-deleted users (password excluded) together
// with the total non-deleted count.
func (r *UserRepository) List(ctx context.Context, skip, take int64) ([]*models.User, int64, error) {
	filter := bson.M{"deletedAt": nil}
	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSkip(skip).
		SetLimit(take)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := []*models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
