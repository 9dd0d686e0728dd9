package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/auditrain/auditrain-backend/internal/export"
	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/auditrain/auditrain-backend/internal/response"
	"github.com/auditrain/auditrain-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	contentTypePDF  = "application/pdf"
)

// ExportHandler renders the admin download endpoints. Every export is built
// from a fresh statistics computation; nothing is cached.
type ExportHandler struct {
	statsService    *service.StatsService
	surveyService   *service.SurveyService
	questionService *service.QuestionService
	userService     *service.UserService
	mediaService    *service.MediaService
	pdf             *export.PDFExporter
	log             zerolog.Logger
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(
	statsService *service.StatsService,
	surveyService *service.SurveyService,
	questionService *service.QuestionService,
	userService *service.UserService,
	mediaService *service.MediaService,
	pdf *export.PDFExporter,
	log zerolog.Logger,
) *ExportHandler {
	return &ExportHandler{
		statsService:    statsService,
		surveyService:   surveyService,
		questionService: questionService,
		userService:     userService,
		mediaService:    mediaService,
		pdf:             pdf,
		log:             log.With().Str("component", "export_handler").Logger(),
	}
}

// Workbook godoc
// GET /api/v1/admin/exports/workbook.xlsx
// Full Excel workbook: submissions, per-question stats, students, classes.
func (h *ExportHandler) Workbook(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.statsService.Compute(ctx)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	subs, err := h.surveyService.AllSubmissions(ctx)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	questions, err := h.questionService.List(ctx)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	studentRole := model.RoleStudent
	students, err := h.userService.List(ctx, &studentRole, nil)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, stats, subs, questions, students); err != nil {
		h.log.Error().Err(err).Msg("workbook export failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	serveAttachment(c, "survey-results.xlsx", contentTypeXLSX, buf.Bytes())
}

// StatsPDF godoc
// GET /api/v1/admin/exports/report.pdf
// The aggregate statistics report with the uploaded logos in the header.
func (h *ExportHandler) StatsPDF(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.statsService.Compute(ctx)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	questions, err := h.questionService.List(ctx)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	var buf bytes.Buffer
	if err := h.pdf.WriteStatsReport(&buf, stats, questions, h.mediaService.LogoPaths()); err != nil {
		h.log.Error().Err(err).Msg("stats pdf export failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	serveAttachment(c, "survey-report.pdf", contentTypePDF, buf.Bytes())
}

// StudentDocx godoc
// GET /api/v1/admin/exports/students/:email/report.docx
func (h *ExportHandler) StudentDocx(c *gin.Context) {
	user, subs, reviews, totalPossible, ok := h.studentReportData(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteStudentDocx(&buf, user, subs, reviews, totalPossible); err != nil {
		h.log.Error().Err(err).Str("email", user.Email).Msg("student docx export failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	serveAttachment(c, fmt.Sprintf("report-%s.docx", user.Email), contentTypeDOCX, buf.Bytes())
}

// StudentPDF godoc
// GET /api/v1/admin/exports/students/:email/report.pdf
func (h *ExportHandler) StudentPDF(c *gin.Context) {
	user, subs, reviews, totalPossible, ok := h.studentReportData(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.pdf.WriteStudentReport(&buf, user, subs, reviews, totalPossible); err != nil {
		h.log.Error().Err(err).Str("email", user.Email).Msg("student pdf export failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	serveAttachment(c, fmt.Sprintf("report-%s.pdf", user.Email), contentTypePDF, buf.Bytes())
}

func (h *ExportHandler) studentReportData(c *gin.Context) (*model.User, []model.Submission, [][]model.AnswerReview, int, bool) {
	ctx := c.Request.Context()

	user, err := h.userService.GetByEmail(ctx, c.Param("email"))
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return nil, nil, nil, 0, false
	}

	subs, reviews, err := h.surveyService.History(ctx, user.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return nil, nil, nil, 0, false
	}

	questions, err := h.questionService.List(ctx)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return nil, nil, nil, 0, false
	}
	totalPossible := 0
	for i := range questions {
		totalPossible += questions[i].Score
	}

	return user, subs, reviews, totalPossible, true
}

func serveAttachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
