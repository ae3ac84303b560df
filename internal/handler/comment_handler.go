package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ruangpendapat.com/forum/internal/service"
	"ruangpendapat.com/forum/pkg/response"
	"ruangpendapat.com/forum/pkg/validator"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req service.CreateCommentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), userID, postID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, comment)
}

func (h *CommentHandler) GetThread(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	nodes, err := h.service.GetThread(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nodes)
}
