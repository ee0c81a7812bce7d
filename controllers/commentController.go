package controllers

import (
	"net/http"

	"sudharnayak-be/repositories"

	"github.com/gin-gonic/gin"
)

// CommentController maps the comment routes onto the comment store.
type CommentController struct {
	store repositories.CommentStore
}

func NewCommentController(store repositories.CommentStore) *CommentController {
	return &CommentController{store: store}
}

// Add creates a comment against an existing issue
func (cc *CommentController) Add(c *gin.Context) {
	callerID, ok := callerObjectID(c)
	if !ok {
		return
	}

	var input struct {
		Text string `json:"text" binding:"required,max=1000"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := cc.store.Create(c.Request.Context(), c.Param("issueId"), callerID, input.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// List retrieves the comments for an issue, newest first
func (cc *CommentController) List(c *gin.Context) {
	comments, err := cc.store.ListForIssue(c.Request.Context(), c.Param("issueId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}
