package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ruangpendapat.com/forum/internal/service"
	"ruangpendapat.com/forum/pkg/response"
	"ruangpendapat.com/forum/pkg/validator"
)

type VoteHandler struct {
	service service.VoteService
}

func NewVoteHandler(service service.VoteService) *VoteHandler {
	return &VoteHandler{service: service}
}

type castVoteRequest struct {
	VoteType string `json:"vote_type" binding:"required,oneof=strongly_disagree disagree neutral agree strongly_agree"`
}

func (h *VoteHandler) CastVote(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req castVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.CastVote(c.Request.Context(), userID, postID, req.VoteType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
