package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media is a stored media asset. DeletedAt is the sole soft-delete marker:
// nil means visible, non-nil means hidden from listing but still reachable
// by id or sharable id so it can be restored.
type Media struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`

	FileName    string   `bson:"fileName" json:"file_name"`
	URL         string   `bson:"url" json:"url"`
	ContentType string   `bson:"contentType" json:"content_type"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	IsPublic    bool     `bson:"isPublic" json:"is_public"`
	Size        int64    `bson:"size,omitempty" json:"size,omitempty"`
	ViewCount   int64    `bson:"viewCount" json:"view_count"`
	SharableID  string   `bson:"sharableId" json:"sharable_id"` // assigned once at upload, immutable
	Tags        []string `bson:"tags" json:"tags"`

	DeletedAt *time.Time `bson:"deletedAt" json:"deleted_at,omitempty"`
}

// MediaUpdate carries a partial edit. Nil fields are left untouched.
type MediaUpdate struct {
	FileName    *string  `json:"file_name,omitempty"`
	Description *string  `json:"description,omitempty"`
	IsPublic    *bool    `json:"is_public,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}
