package export

import (
	"fmt"
	"io"

	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/auditrain/auditrain-backend/internal/service"
	"github.com/fumiama/go-docx"
)

// WriteStudentDocx renders one respondent's attempt history as a Word
// document. Same content as the PDF student report; some training centers
// require editable files.
func WriteStudentDocx(w io.Writer, user *model.User, subs []model.Submission, reviews [][]model.AnswerReview, totalPossible int) error {
	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph()
	title.Justification("center")
	title.AddText("Student Report").Size("32").Bold()

	doc.AddParagraph().AddText(fmt.Sprintf("Name: %s", user.FullName))
	doc.AddParagraph().AddText(fmt.Sprintf("Email: %s", user.Email))
	if user.Class != "" {
		doc.AddParagraph().AddText(fmt.Sprintf("Class: %s", user.Class))
	}
	doc.AddParagraph().AddText(fmt.Sprintf("Attempts: %d / %d", len(subs), service.MaxAttempts))
	doc.AddParagraph()

	for i := range subs {
		sub := &subs[i]

		heading := doc.AddParagraph()
		heading.AddText(fmt.Sprintf("Attempt %d - %s", len(subs)-i, sub.SubmittedAt.Format("2006-01-02 15:04"))).Size("26").Bold()
		doc.AddParagraph().AddText(fmt.Sprintf("Score: %d / %d", sub.Score, totalPossible)).Bold()

		for _, r := range reviews[i] {
			q := doc.AddParagraph()
			run := q.AddText(r.Question)
			if r.Correct {
				run.Color("2e7d32")
			} else {
				run.Color("c62828")
			}
			doc.AddParagraph().AddText(fmt.Sprintf("    Selected: %s", joinOrDash(r.Selected)))
			doc.AddParagraph().AddText(fmt.Sprintf("    Correct: %s (%d/%d points)", joinOrDash(r.CorrectTexts), r.Earned, r.Score))
		}
		doc.AddParagraph()
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
