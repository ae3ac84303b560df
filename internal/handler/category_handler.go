package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ruangpendapat.com/forum/internal/model"
	"ruangpendapat.com/forum/internal/repository"
	"ruangpendapat.com/forum/pkg/response"
	"ruangpendapat.com/forum/pkg/validator"
)

type CategoryHandler struct {
	repo repository.CategoryRepository
}

func NewCategoryHandler(repo repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

type createCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	category := &model.Category{
		Name:        req.Name,
		Slug:        slugify(req.Name),
		Description: req.Description,
	}
	if err := h.repo.Create(c.Request.Context(), category); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, category)
}

func (h *CategoryHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, categories)
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
