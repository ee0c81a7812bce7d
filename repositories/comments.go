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

// CommentStore defines persistence operations for Comment entities.
type CommentStore interface {
	Create(ctx context.Context, issueID string, authorID primitive.ObjectID, text string) (*models.Comment, error)
	ListForIssue(ctx context.Context, issueID string) ([]models.Comment, error)
}

// CommentRepository is the MongoDB-backed CommentStore. Both operations
// verify that the referenced issue exists.
type CommentRepository struct {
	comments *mongo.Collection
	issues   *mongo.Collection
	users    *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{
		comments: db.Collection("comments"),
		issues:   db.Collection("issues"),
		users:    db.Collection("users"),
	}
}

func (r *CommentRepository) Create(ctx context.Context, issueID string, authorID primitive.ObjectID, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is required: %w", ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	issueObjID, err := r.requireIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		IssueID:   issueObjID,
		UserID:    authorID,
		Text:      text,
		CreatedAt: time.Now(),
	}

	if _, err := r.comments.InsertOne(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	comment.Author = r.resolveAuthor(ctx, authorID)
	return &comment, nil
}

func (r *CommentRepository) ListForIssue(ctx context.Context, issueID string) ([]models.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	issueObjID, err := r.requireIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.comments.Find(ctx, bson.M{"issueId": issueObjID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	for i := range comments {
		comments[i].Author = r.resolveAuthor(ctx, comments[i].UserID)
	}

	return comments, nil
}

// requireIssue resolves the issue id and confirms the issue exists.
func (r *CommentRepository) requireIssue(ctx context.Context, issueID string) (primitive.ObjectID, error) {
	issueObjID, err := primitive.ObjectIDFromHex(issueID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("issue %q: %w", issueID, ErrNotFound)
	}

	count, err := r.issues.CountDocuments(ctx, bson.M{"_id": issueObjID})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to check issue: %w", err)
	}
	if count == 0 {
		return primitive.NilObjectID, fmt.Errorf("issue %q: %w", issueID, ErrNotFound)
	}

	return issueObjID, nil
}

func (r *CommentRepository) resolveAuthor(ctx context.Context, userID primitive.ObjectID) *models.UserRef {
	var user models.User
	if err := r.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return &models.UserRef{ID: userID}
	}
	return user.Ref()
}
