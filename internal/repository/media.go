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

// MediaRepository persists media documents in the "media" collection.
// Soft-delete marking, restore and view counting are all single-document
// updates, so concurrent calls resolve by whichever update lands last.
type MediaRepository struct {
	coll *mongo.Collection
}

func NewMediaRepository(db *mongo.Database) *MediaRepository {
	return &MediaRepository{coll: db.Collection("media")}
}

func (r *MediaRepository) Insert(ctx context.Context, media *models.Media) (*models.Media, error) {
	now := time.Now().UTC()
	media.CreatedAt = now
	media.UpdatedAt = now
	if media.Tags == nil {
		media.Tags = []string{}
	}

	res, err := r.coll.InsertOne(ctx, media)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		media.ID = id
	}
	return media, nil
}

// FindByID returns the document in any state, including soft-deleted, so
// callers can inspect and restore hidden records.
func (r *MediaRepository) FindByID(ctx context.Context, id string) (*models.Media, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrMediaNotFound
	}

	var media models.Media
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&media)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}

// Find lists visible media. searchText, when given, is a case-insensitive
// substring match on fileName. Soft-deleted documents never appear.
func (r *MediaRepository) Find(ctx context.Context, limit, offset int64, searchText string) ([]*models.Media, error) {
	filter := bson.M{"deletedAt": nil}
	if searchText != "" {
		filter["fileName"] = primitive.Regex{Pattern: searchText, Options: "i"}
	}

	opts := options.Find().SetSkip(offset).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	media := []*models.Media{}
	if err := cursor.All(ctx, &media); err != nil {
		return nil, err
	}
	return media, nil
}

// MarkDeleted stamps deletedAt, hiding the document from listings.
func (r *MediaRepository) MarkDeleted(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrMediaNotFound
	}

	now := time.Now().UTC()
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"deletedAt": now, "updatedAt": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return common.ErrMediaNotFound
	}
	return nil
}

// ClearDeleted restores a soft-deleted document and returns it. The filter
// requires deletedAt to be set: restoring a record that is missing or
// already active reports ErrMediaNotFound.
func (r *MediaRepository) ClearDeleted(ctx context.Context, id string) (*models.Media, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrMediaNotFound
	}

	filter := bson.M{"_id": oid, "deletedAt": bson.M{"$ne": nil}}
	update := bson.M{"$set": bson.M{"deletedAt": nil, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var media models.Media
	err = r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&media)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}

// ApplyUpdate merges the provided fields and returns the updated document.
func (r *MediaRepository) ApplyUpdate(ctx context.Context, id string, upd models.MediaUpdate) (*models.Media, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrMediaNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.FileName != nil {
		set["fileName"] = *upd.FileName
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.IsPublic != nil {
		set["isPublic"] = *upd.IsPublic
	}
	if upd.Tags != nil {
		set["tags"] = upd.Tags
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var media models.Media
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&media)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}

// IncrementViewCount atomically bumps viewCount for the document with the
// given sharable id and returns the updated document.
func (r *MediaRepository) IncrementViewCount(ctx context.Context, sharableID string) (*models.Media, error) {
	update := bson.M{"$inc": bson.M{"viewCount": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var media models.Media
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"sharableId": sharableID}, update, opts).Decode(&media)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}
