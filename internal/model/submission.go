package model

import "time"

// Submission is one completed survey attempt. Rows are insert-only: the
// score is computed once at submission time and never recomputed, even if
// questions are edited or deleted afterwards.
type Submission struct {
	ID          int64               `json:"id"`
	UserEmail   string              `json:"user_email"`
	Responses   map[string][]string `json:"responses"`
	Score       int                 `json:"score"`
	SubmittedAt time.Time           `json:"submitted_at"`
}

// SubmitRequest is the payload for submitting a survey attempt.
// Responses maps question id (as text) to the selected answer texts.
type SubmitRequest struct {
	Responses map[string][]string `json:"responses" binding:"required"`
}

// AnswerReview is the per-question breakdown of a past submission, evaluated
// against the question set in effect at review time.
type AnswerReview struct {
	QuestionID   int64        `json:"question_id"`
	Question     string       `json:"question"`
	Type         QuestionType `json:"type"`
	Selected     []string     `json:"selected"`
	CorrectTexts []string     `json:"correct_texts"`
	Correct      bool         `json:"correct"`
	Score        int          `json:"score"`
	Earned       int          `json:"earned"`
}
