package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCategory enum
type IssueCategory string

const (
	CategoryRoad        IssueCategory = "Road"
	CategoryGarbage     IssueCategory = "Garbage"
	CategoryWater       IssueCategory = "Water"
	CategoryElectricity IssueCategory = "Electricity"
	CategoryOther       IssueCategory = "Other"
)

// IssueStatus enum
type IssueStatus string

const (
	StatusPending    IssueStatus = "Pending"
	StatusInProgress IssueStatus = "In Progress"
	StatusResolved   IssueStatus = "Resolved"
)

// ParseCategory maps a raw string onto the closed category set. Unknown or
// empty values coerce to Other instead of failing.
func ParseCategory(s string) IssueCategory {
	switch IssueCategory(s) {
	case CategoryRoad, CategoryGarbage, CategoryWater, CategoryElectricity, CategoryOther:
		return IssueCategory(s)
	default:
		return CategoryOther
	}
}

// ParseStatus maps a raw string onto the closed status set. Unlike
// categories, an unknown status is rejected.
func ParseStatus(s string) (IssueStatus, bool) {
	switch IssueStatus(s) {
	case StatusPending, StatusInProgress, StatusResolved:
		return IssueStatus(s), true
	default:
		return "", false
	}
}

// Location is the optional place an issue was reported at. All fields are
// independently optional.
type Location struct {
	Address string   `bson:"address,omitempty" json:"address,omitempty"`
	Lat     *float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng     *float64 `bson:"lng,omitempty" json:"lng,omitempty"`
}

// UserRef is the denormalized creator/author shape exposed on reads.
type UserRef struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// Issue represents a civic issue reported by a citizen
type Issue struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	ImageURL    *string            `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Category    IssueCategory      `bson:"category" json:"category"`
	Location    *Location          `bson:"location,omitempty" json:"location,omitempty"`
	Status      IssueStatus        `bson:"status" json:"status"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"-"`
	Creator     *UserRef           `bson:"-" json:"createdBy,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
