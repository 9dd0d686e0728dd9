package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/auditrain/auditrain-backend/internal/service"
	"github.com/signintech/gopdf"
)

// PDFExporter renders the statistics and per-student reports. A Unicode TTF
// is required because question texts and names are Vietnamese.
type PDFExporter struct {
	fontPath string
	fontName string
}

// NewPDFExporter creates a PDFExporter using the configured font.
func NewPDFExporter(fontPath, fontName string) *PDFExporter {
	return &PDFExporter{fontPath: fontPath, fontName: fontName}
}

const (
	pdfMarginLeft = 40.0
	pdfLineHeight = 18.0
	pdfPageBottom = 790.0
)

func (e *PDFExporter) begin() (*gopdf.GoPdf, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()
	if err := pdf.AddTTFFont(e.fontName, e.fontPath); err != nil {
		return nil, fmt.Errorf("load font %s: %w", e.fontPath, err)
	}
	return pdf, nil
}

// WriteStatsReport renders the aggregate statistics report, with the uploaded
// logos (if any) across the header.
func (e *PDFExporter) WriteStatsReport(w io.Writer, stats *service.Statistics, questions []model.Question, logoPaths []string) error {
	pdf, err := e.begin()
	if err != nil {
		return err
	}

	y := e.drawLogos(pdf, logoPaths)
	pdf.SetXY(pdfMarginLeft, y)

	if err := e.heading(pdf, "Survey Statistics Report"); err != nil {
		return err
	}

	if err := pdf.SetFont(e.fontName, "", 11); err != nil {
		return fmt.Errorf("set font: %w", err)
	}

	lines := []string{
		fmt.Sprintf("Total submissions: %d", stats.TotalSubmissions),
		fmt.Sprintf("Distinct respondents: %d", stats.StudentCount),
		fmt.Sprintf("Average score: %.2f / %d (%.1f%%)", stats.AvgScore, stats.TotalPossibleScore, stats.AvgPercentage),
	}
	for _, line := range lines {
		e.line(pdf, line)
	}
	pdf.Br(pdfLineHeight)

	if err := e.heading(pdf, "Per-question results"); err != nil {
		return err
	}
	if err := pdf.SetFont(e.fontName, "", 11); err != nil {
		return fmt.Errorf("set font: %w", err)
	}
	for i := range questions {
		q := &questions[i]
		stat := stats.QuestionStats[strconv.FormatInt(q.ID, 10)]
		e.line(pdf, fmt.Sprintf("%d. %s", q.ID, q.Question))
		e.line(pdf, fmt.Sprintf("    answered %d, correct %d (%.1f%%)",
			stat.TotalAnswers, stat.CorrectCount, stat.CorrectPercentage))
	}
	pdf.Br(pdfLineHeight)

	if len(stats.ClassStats) > 0 {
		if err := e.heading(pdf, "Per-class results"); err != nil {
			return err
		}
		if err := pdf.SetFont(e.fontName, "", 11); err != nil {
			return fmt.Errorf("set font: %w", err)
		}
		for _, cs := range stats.ClassStats {
			e.line(pdf, fmt.Sprintf("%s: %d students, %d submissions, avg %.2f, best %d",
				cs.Class, cs.Students, cs.Submissions, cs.AvgScore, cs.BestScore))
		}
		pdf.Br(pdfLineHeight)
	}

	if len(stats.DailyCounts) > 0 {
		if err := e.heading(pdf, "Submissions per day"); err != nil {
			return err
		}
		if err := pdf.SetFont(e.fontName, "", 11); err != nil {
			return fmt.Errorf("set font: %w", err)
		}
		days := make([]string, 0, len(stats.DailyCounts))
		for day := range stats.DailyCounts {
			days = append(days, day)
		}
		sort.Strings(days)
		for _, day := range days {
			e.line(pdf, fmt.Sprintf("%s: %d", day, stats.DailyCounts[day]))
		}
	}

	if _, err := pdf.WriteTo(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WriteStudentReport renders one respondent's full attempt history with a
// per-question review of each attempt.
func (e *PDFExporter) WriteStudentReport(w io.Writer, user *model.User, subs []model.Submission, reviews [][]model.AnswerReview, totalPossible int) error {
	pdf, err := e.begin()
	if err != nil {
		return err
	}
	pdf.SetXY(pdfMarginLeft, 40)

	if err := e.heading(pdf, "Student Report"); err != nil {
		return err
	}
	if err := pdf.SetFont(e.fontName, "", 11); err != nil {
		return fmt.Errorf("set font: %w", err)
	}

	e.line(pdf, fmt.Sprintf("Name: %s", user.FullName))
	e.line(pdf, fmt.Sprintf("Email: %s", user.Email))
	if user.Class != "" {
		e.line(pdf, fmt.Sprintf("Class: %s", user.Class))
	}
	e.line(pdf, fmt.Sprintf("Attempts: %d / %d", len(subs), service.MaxAttempts))
	pdf.Br(pdfLineHeight)

	for i := range subs {
		sub := &subs[i]
		if err := e.heading(pdf, fmt.Sprintf("Attempt %d — %s", len(subs)-i, sub.SubmittedAt.Format("2006-01-02 15:04"))); err != nil {
			return err
		}
		if err := pdf.SetFont(e.fontName, "", 11); err != nil {
			return fmt.Errorf("set font: %w", err)
		}
		e.line(pdf, fmt.Sprintf("Score: %d / %d", sub.Score, totalPossible))

		for _, r := range reviews[i] {
			mark := "✗"
			if r.Correct {
				mark = "✓"
			}
			e.line(pdf, fmt.Sprintf("%s %s", mark, r.Question))
			e.line(pdf, fmt.Sprintf("    selected: %s", joinOrDash(r.Selected)))
			e.line(pdf, fmt.Sprintf("    correct: %s (%d/%d points)", joinOrDash(r.CorrectTexts), r.Earned, r.Score))
		}
		pdf.Br(pdfLineHeight)
	}

	if _, err := pdf.WriteTo(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (e *PDFExporter) heading(pdf *gopdf.GoPdf, text string) error {
	if err := pdf.SetFont(e.fontName, "", 14); err != nil {
		return fmt.Errorf("set font: %w", err)
	}
	e.line(pdf, text)
	pdf.Br(4)
	return nil
}

// line writes one text cell and advances, breaking the page when needed.
func (e *PDFExporter) line(pdf *gopdf.GoPdf, text string) {
	if pdf.GetY() > pdfPageBottom {
		pdf.AddPage()
		pdf.SetXY(pdfMarginLeft, 40)
	}
	pdf.SetX(pdfMarginLeft)
	_ = pdf.Cell(nil, text)
	pdf.Br(pdfLineHeight)
}

// drawLogos lays the uploaded logos left to right and returns the Y where
// content should start.
func (e *PDFExporter) drawLogos(pdf *gopdf.GoPdf, paths []string) float64 {
	if len(paths) == 0 {
		return 40
	}
	x := pdfMarginLeft
	for _, p := range paths {
		// A failed image (corrupt upload) just leaves a gap.
		_ = pdf.Image(p, x, 30, &gopdf.Rect{W: 90, H: 45})
		x += 110
	}
	return 95
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "—"
	}
	out := values[0]
	for _, v := range values[1:] {
		out += ", " + v
	}
	return out
}
