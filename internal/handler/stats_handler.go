package handler

import (
	"net/http"

	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/auditrain/auditrain-backend/internal/response"
	"github.com/auditrain/auditrain-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// StatsHandler handles the admin read-side endpoints.
type StatsHandler struct {
	statsService  *service.StatsService
	surveyService *service.SurveyService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService *service.StatsService, surveyService *service.SurveyService) *StatsHandler {
	return &StatsHandler{statsService: statsService, surveyService: surveyService}
}

// Statistics godoc
// GET /api/v1/admin/stats
// Recomputes the full statistics projection from source tables.
func (h *StatsHandler) Statistics(c *gin.Context) {
	stats, err := h.statsService.Compute(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// Submissions godoc
// GET /api/v1/admin/submissions?email=
// Returns stored attempts, newest first, optionally for one respondent.
func (h *StatsHandler) Submissions(c *gin.Context) {
	var (
		subs []model.Submission
		err  error
	)
	if email := c.Query("email"); email != "" {
		subs, err = h.surveyService.SubmissionsByEmail(c.Request.Context(), email)
	} else {
		subs, err = h.surveyService.AllSubmissions(c.Request.Context())
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"submissions": subs})
}
