package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/auditrain/auditrain-backend/internal/service"
	"github.com/xuri/excelize/v2"
)

// WriteWorkbook renders the full admin workbook: one sheet per projection.
// Everything is recomputed by the caller per request; this only lays out rows.
func WriteWorkbook(w io.Writer, stats *service.Statistics, submissions []model.Submission, questions []model.Question, students []model.User) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSubmissionsSheet(f, submissions, stats.TotalPossibleScore); err != nil {
		return err
	}
	if err := writeQuestionStatsSheet(f, stats, questions); err != nil {
		return err
	}
	if err := writeStudentsSheet(f, students); err != nil {
		return err
	}
	if err := writeClassStatsSheet(f, stats.ClassStats); err != nil {
		return err
	}

	// The implicit "Sheet1" is only a placeholder.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSubmissionsSheet(f *excelize.File, submissions []model.Submission, totalPossible int) error {
	const sheet = "Submissions"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet %s: %w", sheet, err)
	}

	headers := []interface{}{"ID", "Email", "Score", "Max Score", "Percentage", "Submitted At"}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}

	for i, sub := range submissions {
		pct := 0.0
		if totalPossible > 0 {
			pct = float64(sub.Score) / float64(totalPossible) * 100
		}
		row := []interface{}{
			sub.ID,
			sub.UserEmail,
			sub.Score,
			totalPossible,
			fmt.Sprintf("%.1f%%", pct),
			sub.SubmittedAt.Format("2006-01-02 15:04:05"),
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeQuestionStatsSheet(f *excelize.File, stats *service.Statistics, questions []model.Question) error {
	const sheet = "Question Stats"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet %s: %w", sheet, err)
	}

	headers := []interface{}{"ID", "Question", "Type", "Score", "Answered", "Correct", "Correct %"}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}

	// Iterate questions, not the stats map, to keep the sheet in question
	// order.
	for i, q := range questions {
		stat := stats.QuestionStats[strconv.FormatInt(q.ID, 10)]
		row := []interface{}{
			q.ID,
			q.Question,
			string(q.Type),
			q.Score,
			stat.TotalAnswers,
			stat.CorrectCount,
			fmt.Sprintf("%.1f%%", stat.CorrectPercentage),
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeStudentsSheet(f *excelize.File, students []model.User) error {
	const sheet = "Students"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet %s: %w", sheet, err)
	}

	headers := []interface{}{"Email", "Full Name", "Class", "Registered At"}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}

	for i, u := range students {
		row := []interface{}{
			u.Email,
			u.FullName,
			u.Class,
			u.RegistrationDate.Format("2006-01-02 15:04:05"),
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeClassStatsSheet(f *excelize.File, classStats []service.ClassStat) error {
	const sheet = "Class Stats"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet %s: %w", sheet, err)
	}

	headers := []interface{}{"Class", "Students", "Submissions", "Avg Score", "Best Score"}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}

	sorted := make([]service.ClassStat, len(classStats))
	copy(sorted, classStats)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Class < sorted[j].Class })

	for i, cs := range sorted {
		row := []interface{}{
			cs.Class,
			cs.Students,
			cs.Submissions,
			fmt.Sprintf("%.2f", cs.AvgScore),
			cs.BestScore,
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("set row %d on %s: %w", row, sheet, err)
	}
	return nil
}
