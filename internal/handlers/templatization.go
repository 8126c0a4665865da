package handlers

import (
  "errors"
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/campusorbit/collegelist-backend/internal/logger"
  "github.com/campusorbit/collegelist-backend/internal/services"
)

type TemplatizationHandler struct {
  log                   *logger.Logger
  templatizationService services.TemplatizationService
}

func NewTemplatizationHandler(log *logger.Logger, templatizationService services.TemplatizationService) *TemplatizationHandler {
  return &TemplatizationHandler{
    log:                   log.With("handler", "TemplatizationHandler"),
    templatizationService: templatizationService,
  }
}

// GenerateBulk handles POST /api/templatization/silo/:silo.
func (h *TemplatizationHandler) GenerateBulk(c *gin.Context) {
  silo := c.Param("silo")

  result, err := h.templatizationService.GenerateBulk(c.Request.Context(), silo)
  if err != nil {
    switch {
    case errors.Is(err, services.ErrUnknownSilo):
      RespondError(c, http.StatusBadRequest, "unknown_silo", err)
    case errors.Is(err, services.ErrNoCandidates):
      RespondError(c, http.StatusBadRequest, "no_candidates", err)
    case errors.Is(err, services.ErrGenerationBusy):
      RespondError(c, http.StatusConflict, "generation_busy", err)
    default:
      h.log.Error("GenerateBulk failed", "error", err, "silo", silo)
      RespondError(c, http.StatusInternalServerError, "templatize_failed", err)
    }
    return
  }

  payload := gin.H{
    "success": true,
    "total":   result.Generated,
    "message": fmt.Sprintf("Generated %d %q articles", result.Generated, silo),
  }
  if len(result.Failures) > 0 {
    payload["failed"] = result.Failures
  }
  RespondOK(c, payload)
}

// GenerateOne handles POST /api/templatization/college/:collegeId/silo/:silo.
func (h *TemplatizationHandler) GenerateOne(c *gin.Context) {
  collegeID, err := uuid.Parse(c.Param("collegeId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_college_id", err)
    return
  }
  silo := c.Param("silo")

  doc, err := h.templatizationService.GenerateOne(c.Request.Context(), collegeID, silo)
  if err != nil {
    switch {
    case errors.Is(err, services.ErrUnknownSilo):
      RespondError(c, http.StatusBadRequest, "unknown_silo", err)
    case errors.Is(err, services.ErrCollegeNotFound):
      RespondError(c, http.StatusNotFound, "college_not_found", err)
    case errors.Is(err, services.ErrAlreadyGenerated):
      RespondError(c, http.StatusConflict, "already_generated", err)
    case errors.Is(err, services.ErrEmptyDocument):
      RespondError(c, http.StatusBadRequest, "no_facts", err)
    default:
      h.log.Error("GenerateOne failed", "error", err, "silo", silo, "college_id", collegeID)
      RespondError(c, http.StatusInternalServerError, "templatize_failed", err)
    }
    return
  }

  RespondOK(c, gin.H{
    "success":    true,
    "total":      1,
    "message":    fmt.Sprintf("Generated %q article", silo),
    "content_id": doc.ID,
  })
}

type updateGeneratedRequest struct {
  IsActive    *bool   `json:"is_active"`
  Description *string `json:"description"`
}

// UpdateGenerated handles PUT /api/templatization/content/:contentId.
func (h *TemplatizationHandler) UpdateGenerated(c *gin.Context) {
  contentID, err := uuid.Parse(c.Param("contentId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_content_id", err)
    return
  }

  var req updateGeneratedRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }

  collegeID, err := h.templatizationService.UpdateGenerated(c.Request.Context(), contentID, req.IsActive, req.Description)
  if err != nil {
    switch {
    case errors.Is(err, services.ErrContentNotFound):
      RespondError(c, http.StatusNotFound, "content_not_found", err)
    default:
      h.log.Error("UpdateGenerated failed", "error", err, "content_id", contentID)
      RespondError(c, http.StatusInternalServerError, "update_failed", err)
    }
    return
  }

  RespondOK(c, gin.H{
    "success":    true,
    "college_id": collegeID,
  })
}
