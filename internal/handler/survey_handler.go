package handler

import (
	"errors"
	"net/http"

	"github.com/auditrain/auditrain-backend/internal/middleware"
	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/auditrain/auditrain-backend/internal/repository"
	"github.com/auditrain/auditrain-backend/internal/response"
	"github.com/auditrain/auditrain-backend/internal/service"
	"github.com/auditrain/auditrain-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// SurveyHandler handles the student-facing survey endpoints.
type SurveyHandler struct {
	surveyService *service.SurveyService
}

// NewSurveyHandler creates a new SurveyHandler.
func NewSurveyHandler(surveyService *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

// Paper godoc
// GET /api/v1/survey
// Returns the question set without answer keys, plus remaining attempts.
func (h *SurveyHandler) Paper(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	questions, remaining, err := h.surveyService.Paper(c.Request.Context(), claims.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"questions":          questions,
		"remaining_attempts": remaining,
		"max_attempts":       service.MaxAttempts,
	})
}

// Submit godoc
// POST /api/v1/survey
// Scores and records one attempt. Returns 403 when all attempts are used.
func (h *SurveyHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sub, err := h.surveyService.Submit(c.Request.Context(), claims.Email, req.Responses)
	if err != nil {
		if errors.Is(err, repository.ErrAttemptLimitReached) {
			response.Fail(c, http.StatusForbidden, response.ErrAttemptLimitReached)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	remaining, err := h.surveyService.RemainingAttempts(c.Request.Context(), claims.Email)
	if err != nil {
		remaining = 0
	}

	response.Success(c, http.StatusCreated, gin.H{
		"submission":         sub,
		"remaining_attempts": remaining,
	})
}

// History godoc
// GET /api/v1/survey/history
// Returns the caller's attempts, newest first, each with a per-question
// review against the current question set.
func (h *SurveyHandler) History(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	subs, reviews, err := h.surveyService.History(c.Request.Context(), claims.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	attempts := make([]gin.H, len(subs))
	for i := range subs {
		attempts[i] = gin.H{
			"submission": subs[i],
			"review":     reviews[i],
		}
	}

	response.Success(c, http.StatusOK, gin.H{"attempts": attempts})
}
