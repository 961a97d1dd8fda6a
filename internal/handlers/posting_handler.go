package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-catalog/internal/dtos"
	apperrors "github.com/justsurfingit/job-catalog/internal/errors"
	"github.com/justsurfingit/job-catalog/internal/services"
)

// DraftExtractor turns raw advertisement text into an unsaved posting draft.
type DraftExtractor interface {
	ExtractDraft(ctx context.Context, rawText string) (*dtos.PostingRequest, error)
}

type PostingHandler struct {
	Postings *services.PostingService
	// Extractor is nil when no language model is configured.
	Extractor DraftExtractor
}

func NewPostingHandler(postings *services.PostingService, extractor DraftExtractor) *PostingHandler {
	return &PostingHandler{Postings: postings, Extractor: extractor}
}

// ListPostings is GET /api/postings
func (h *PostingHandler) ListPostings(c *gin.Context) {
	postings, err := h.Postings.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postings)
}

// GetPosting is GET /api/postings/:id
func (h *PostingHandler) GetPosting(c *gin.Context) {
	id, ok := postingID(c)
	if !ok {
		return
	}
	p, err := h.Postings.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreatePosting is POST /api/postings
func (h *PostingHandler) CreatePosting(c *gin.Context) {
	var req dtos.PostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := h.Postings.Create(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.PostingCreatedResponse{Message: "posting created", ID: id})
}

// ReplacePosting is PUT /api/postings/:id
func (h *PostingHandler) ReplacePosting(c *gin.Context) {
	id, ok := postingID(c)
	if !ok {
		return
	}
	var req dtos.PostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.Postings.Replace(c.Request.Context(), id, req.ToModel()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.MessageResponse{Message: "posting updated"})
}

// DeletePosting is DELETE /api/postings/:id
func (h *PostingHandler) DeletePosting(c *gin.Context) {
	id, ok := postingID(c)
	if !ok {
		return
	}
	if err := h.Postings.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.MessageResponse{Message: "posting deleted"})
}

// DuplicatePosting is POST /api/postings/:id/duplicate
func (h *PostingHandler) DuplicatePosting(c *gin.Context) {
	id, ok := postingID(c)
	if !ok {
		return
	}
	newID, err := h.Postings.Duplicate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.PostingCreatedResponse{Message: "posting duplicated", ID: newID})
}

// SearchByField is GET /api/postings/search/:field/:value
func (h *PostingHandler) SearchByField(c *gin.Context) {
	postings, err := h.Postings.SearchByField(c.Request.Context(), c.Param("field"), c.Param("value"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postings)
}

// SearchBySkill is GET /api/postings/skill/:skill
func (h *PostingHandler) SearchBySkill(c *gin.Context) {
	result, err := h.Postings.SearchBySkill(c.Request.Context(), c.Param("skill"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Statistics is GET /api/statistics
func (h *PostingHandler) Statistics(c *gin.Context) {
	snapshot, err := h.Postings.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ExtractPosting is POST /api/postings/extract. The draft is returned for
// review and is not stored.
func (h *PostingHandler) ExtractPosting(c *gin.Context) {
	if h.Extractor == nil {
		respondError(c, apperrors.Unavailable("posting extraction is not configured", nil))
		return
	}

	var req dtos.ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	draft, err := h.Extractor.ExtractDraft(c.Request.Context(), req.RawText)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": draft})
}

func postingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, apperrors.InvalidInput("posting id must be a positive integer", err))
		return 0, false
	}
	return id, true
}
