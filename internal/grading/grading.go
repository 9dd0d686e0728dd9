// Package grading holds the answer evaluator and score aggregator. Both are
// pure functions over decoded records; they carry no state and touch no
// storage, which is what makes the rest of the system a thin layer over the
// database.
package grading

import (
	"strconv"

	"github.com/auditrain/auditrain-backend/internal/model"
)

// IsCorrect reports whether the selected answer texts are the correct
// response to q.
//
// An empty selection is never correct. For single-choice questions exactly
// one option must be selected and its 1-indexed position in q.Answers must be
// in q.Correct; text not present in q.Answers counts as a miss. For
// multi-choice questions the set of 1-indexed positions of the selected texts
// must equal q.Correct exactly — no partial credit. Selected texts not found
// in q.Answers are dropped, not counted as wrong.
//
// Duplicate option texts resolve to the first occurrence; a quirk of
// position-based lookup kept for compatibility with stored responses.
func IsCorrect(selected []string, q *model.Question) bool {
	if len(selected) == 0 {
		return false
	}

	switch q.Type {
	case model.QuestionTypeSingleChoice:
		if len(selected) != 1 {
			return false
		}
		return containsInt(q.Correct, positionOf(q.Answers, selected[0]))

	case model.QuestionTypeMultiChoice:
		picked := make(map[int]struct{}, len(selected))
		for _, text := range selected {
			if pos := positionOf(q.Answers, text); pos > 0 {
				picked[pos] = struct{}{}
			}
		}

		want := make(map[int]struct{}, len(q.Correct))
		for _, pos := range q.Correct {
			want[pos] = struct{}{}
		}

		if len(picked) != len(want) {
			return false
		}
		for pos := range want {
			if _, ok := picked[pos]; !ok {
				return false
			}
		}
		return true
	}

	return false
}

// Score sums the points of every question in questions that responses answer
// correctly. Responses are keyed by question id as text; a missing key is an
// unanswered question worth 0. The result does not depend on the order of
// questions.
func Score(responses map[string][]string, questions []model.Question) int {
	total := 0
	for i := range questions {
		q := &questions[i]
		selected := responses[strconv.FormatInt(q.ID, 10)]
		if IsCorrect(selected, q) {
			total += q.Score
		}
	}
	return total
}

// positionOf returns the 1-indexed position of the first occurrence of text
// in answers, or 0 if absent.
func positionOf(answers []string, text string) int {
	for i, a := range answers {
		if a == text {
			return i + 1
		}
	}
	return 0
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
