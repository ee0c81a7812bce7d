package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a remark attached to one issue. Comments are append-only: they
// are never edited or deleted.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IssueID   primitive.ObjectID `bson:"issueId" json:"issueId"`
	UserID    primitive.ObjectID `bson:"userId" json:"-"`
	Author    *UserRef           `bson:"-" json:"user,omitempty"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
