package handler

import (
	"net/http"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/repository"
	"github.com/gdugdh24/skillswap-backend/internal/usecase/catalog"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves CRUD for one tag kind (skills or interests).
type CatalogHandler[T domain.Skill | domain.Interest] struct {
	catalogUseCase *catalog.CatalogUseCase[T]
}

func NewCatalogHandler[T domain.Skill | domain.Interest](catalogUseCase *catalog.CatalogUseCase[T]) *CatalogHandler[T] {
	return &CatalogHandler[T]{
		catalogUseCase: catalogUseCase,
	}
}

func (h *CatalogHandler[T]) List(c *gin.Context) {
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	tags, err := h.catalogUseCase.List(c.Request.Context(), repository.TagFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tags)
}

func (h *CatalogHandler[T]) Create(c *gin.Context) {
	name, ok := h.bindName(c)
	if !ok {
		return
	}
	if name == nil {
		respondError(c, domain.NewValidationError(h.catalogUseCase.Field(), "this field is required"))
		return
	}

	tag, err := h.catalogUseCase.Create(c.Request.Context(), *name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tag)
}

func (h *CatalogHandler[T]) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	tag, err := h.catalogUseCase.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tag)
}

// Update handles PUT and PATCH.
func (h *CatalogHandler[T]) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	name, ok := h.bindName(c)
	if !ok {
		return
	}

	tag, err := h.catalogUseCase.Update(c.Request.Context(), id, name, partialUpdate(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tag)
}

func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.catalogUseCase.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// bindName extracts the name attribute from the body. The key differs per
// tag kind, so the body is decoded as a map.
func (h *CatalogHandler[T]) bindName(c *gin.Context) (*string, bool) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return nil, false
	}

	field := h.catalogUseCase.Field()
	raw, present := body[field]
	if !present || raw == nil {
		return nil, true
	}
	name, isString := raw.(string)
	if !isString {
		respondError(c, domain.NewValidationError(field, "not a valid string"))
		return nil, false
	}
	return &name, true
}
