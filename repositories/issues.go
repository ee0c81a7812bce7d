package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sudharnayak-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 10 * time.Second

// CreateIssueInput carries the caller-supplied fields for a new issue.
type CreateIssueInput struct {
	Title       string
	Description string
	ImageURL    *string
	Category    string
	Location    *models.Location
	CreatedBy   primitive.ObjectID
}

// IssueFilter is an exact-match conjunction; empty fields impose no constraint.
type IssueFilter struct {
	Category string
	Status   string
}

// IssueStore defines persistence operations for Issue entities.
type IssueStore interface {
	Create(ctx context.Context, input CreateIssueInput) (*models.Issue, error)
	List(ctx context.Context, filter IssueFilter) ([]models.Issue, error)
	GetByID(ctx context.Context, id string) (*models.Issue, error)
	UpdateStatus(ctx context.Context, id string, status *models.IssueStatus) (*models.Issue, error)
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Issue, error)
}

// IssueRepository is the MongoDB-backed IssueStore.
type IssueRepository struct {
	issues *mongo.Collection
	users  *mongo.Collection
}

func NewIssueRepository(db *mongo.Database) *IssueRepository {
	return &IssueRepository{
		issues: db.Collection("issues"),
		users:  db.Collection("users"),
	}
}

func (r *IssueRepository) Create(ctx context.Context, input CreateIssueInput) (*models.Issue, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", ErrValidation)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("description is required: %w", ErrValidation)
	}

	issue := models.Issue{
		ID:          primitive.NewObjectID(),
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Category:    models.ParseCategory(input.Category),
		Location:    input.Location,
		Status:      models.StatusPending,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.issues.InsertOne(ctx, issue); err != nil {
		return nil, fmt.Errorf("failed to insert issue: %w", err)
	}

	return &issue, nil
}

func (r *IssueRepository) List(ctx context.Context, filter IssueFilter) ([]models.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.issues.Find(ctx, query, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve issues: %w", err)
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, fmt.Errorf("failed to decode issues: %w", err)
	}

	for i := range issues {
		issues[i].Creator = r.resolveCreator(ctx, issues[i].CreatedBy)
	}

	return issues, nil
}

func (r *IssueRepository) GetByID(ctx context.Context, id string) (*models.Issue, error) {
	issueID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("issue %q: %w", id, ErrNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var issue models.Issue
	if err := r.issues.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("issue %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve issue: %w", err)
	}

	issue.Creator = r.resolveCreator(ctx, issue.CreatedBy)
	return &issue, nil
}

func (r *IssueRepository) UpdateStatus(ctx context.Context, id string, status *models.IssueStatus) (*models.Issue, error) {
	issueID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("issue %q: %w", id, ErrNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var issue models.Issue
	if err := r.issues.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("issue %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve issue: %w", err)
	}

	// An omitted status leaves the record unchanged.
	if status != nil && *status != issue.Status {
		update := bson.M{"$set": bson.M{"status": *status}}
		if _, err := r.issues.UpdateOne(ctx, bson.M{"_id": issueID}, update); err != nil {
			return nil, fmt.Errorf("failed to update issue: %w", err)
		}
		issue.Status = *status
	}

	issue.Creator = r.resolveCreator(ctx, issue.CreatedBy)
	return &issue, nil
}

func (r *IssueRepository) Delete(ctx context.Context, id string) error {
	issueID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("issue %q: %w", id, ErrNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.issues.DeleteOne(ctx, bson.M{"_id": issueID})
	if err != nil {
		return fmt.Errorf("failed to delete issue: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("issue %q: %w", id, ErrNotFound)
	}

	return nil
}

func (r *IssueRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.issues.Find(ctx, bson.M{"createdBy": ownerID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve issues: %w", err)
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, fmt.Errorf("failed to decode issues: %w", err)
	}

	return issues, nil
}

// resolveCreator looks up the denormalized display fields for a creator.
// A missing user degrades to an id-only reference instead of failing the read.
func (r *IssueRepository) resolveCreator(ctx context.Context, userID primitive.ObjectID) *models.UserRef {
	var user models.User
	if err := r.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return &models.UserRef{ID: userID}
	}
	return user.Ref()
}
