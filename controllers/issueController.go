package controllers

import (
	"errors"
	"io"
	"net/http"

	"sudharnayak-be/middlewares"
	"sudharnayak-be/models"
	"sudharnayak-be/repositories"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueController maps the issue routes onto the issue store.
type IssueController struct {
	store repositories.IssueStore
}

func NewIssueController(store repositories.IssueStore) *IssueController {
	return &IssueController{store: store}
}

// Create handles the creation of a new issue
func (ic *IssueController) Create(c *gin.Context) {
	callerID, ok := callerObjectID(c)
	if !ok {
		return
	}

	var input struct {
		Title       string           `json:"title" binding:"required,max=200"`
		Description string           `json:"description" binding:"required,max=1000"`
		ImageURL    *string          `json:"imageUrl,omitempty"`
		Category    string           `json:"category,omitempty"`
		Location    *models.Location `json:"location,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ic.store.Create(c.Request.Context(), repositories.CreateIssueInput{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Location:    input.Location,
		CreatedBy:   callerID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// List handles retrieving all issues with optional category/status filters
func (ic *IssueController) List(c *gin.Context) {
	filter := repositories.IssueFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}

	issues, err := ic.store.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, issues)
}

// Get retrieves an issue by its ID
func (ic *IssueController) Get(c *gin.Context) {
	issue, err := ic.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, issue)
}

// MyIssues retrieves all issues created by the caller
func (ic *IssueController) MyIssues(c *gin.Context) {
	callerID, ok := callerObjectID(c)
	if !ok {
		return
	}

	issues, err := ic.store.ListByOwner(c.Request.Context(), callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, issues)
}

// UpdateStatus moves an issue through its lifecycle. Admin-only, enforced
// by the route middleware.
func (ic *IssueController) UpdateStatus(c *gin.Context) {
	var input struct {
		Status *string `json:"status,omitempty"`
	}

	// An absent body means status omitted, same as {}.
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var status *models.IssueStatus
	if input.Status != nil {
		parsed, ok := models.ParseStatus(*input.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		status = &parsed
	}

	issue, err := ic.store.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, issue)
}

// Delete removes an issue. Admin-only, enforced by the route middleware.
func (ic *IssueController) Delete(c *gin.Context) {
	if err := ic.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue removed"})
}

// callerObjectID extracts the authenticated caller id set by the auth
// middleware. Responds 401 itself when the id is missing or malformed.
func callerObjectID(c *gin.Context) (primitive.ObjectID, bool) {
	userID := c.GetString(middlewares.ContextUserID)

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return primitive.NilObjectID, false
	}

	return objID, true
}
