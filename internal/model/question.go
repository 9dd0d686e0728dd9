package model

import "time"

// QuestionType distinguishes single-select from multi-select questions.
type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "SINGLE_CHOICE"
	QuestionTypeMultiChoice  QuestionType = "MULTI_CHOICE"
)

// NormalizeQuestionType maps stored type labels to the canonical enum.
// Rows imported from the legacy system carry "Combobox"/"Checkbox".
func NormalizeQuestionType(raw string) QuestionType {
	switch raw {
	case "Combobox", string(QuestionTypeSingleChoice):
		return QuestionTypeSingleChoice
	case "Checkbox", string(QuestionTypeMultiChoice):
		return QuestionTypeMultiChoice
	default:
		return QuestionType(raw)
	}
}

// Question represents a single training-survey question.
//
// Answers is an ordered option list; positions are 1-indexed and significant.
// Correct holds the 1-indexed positions of the correct option(s). Every
// index in Correct must lie within [1, len(Answers)].
type Question struct {
	ID        int64        `json:"id"`
	Question  string       `json:"question"`
	Type      QuestionType `json:"type"`
	Score     int          `json:"score"`
	Answers   []string     `json:"answers"`
	Correct   []int        `json:"correct"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// StudentQuestion is the respondent-facing view of a question. The correct
// set is never sent to students.
type StudentQuestion struct {
	ID       int64        `json:"id"`
	Question string       `json:"question"`
	Type     QuestionType `json:"type"`
	Score    int          `json:"score"`
	Answers  []string     `json:"answers"`
}

// StudentView strips the answer key from a question.
func (q *Question) StudentView() StudentQuestion {
	return StudentQuestion{
		ID:       q.ID,
		Question: q.Question,
		Type:     q.Type,
		Score:    q.Score,
		Answers:  q.Answers,
	}
}

// SaveQuestionRequest is the payload for creating or updating a question.
type SaveQuestionRequest struct {
	Question string   `json:"question" binding:"required,min=1,max=2000"`
	Type     string   `json:"type" binding:"required,oneof=SINGLE_CHOICE MULTI_CHOICE"`
	Score    int      `json:"score" binding:"min=0"`
	Answers  []string `json:"answers" binding:"required,min=2,dive,required"`
	Correct  []int    `json:"correct" binding:"required,min=1,dive,min=1"`
}
