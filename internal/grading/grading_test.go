package grading

import (
	"testing"

	"github.com/auditrain/auditrain-backend/internal/model"
)

func singleChoiceQ() *model.Question {
	return &model.Question{
		ID:       1,
		Question: "Which clause of ISO 50001:2018 covers energy review?",
		Type:     model.QuestionTypeSingleChoice,
		Score:    10,
		Answers:  []string{"A", "B", "C"},
		Correct:  []int{2},
	}
}

func multiChoiceQ() *model.Question {
	return &model.Question{
		ID:       2,
		Question: "Select the audit evidence types",
		Type:     model.QuestionTypeMultiChoice,
		Score:    5,
		Answers:  []string{"X", "Y", "Z"},
		Correct:  []int{1, 3},
	}
}

func TestIsCorrect_SingleChoice(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		want     bool
	}{
		{name: "correct option", selected: []string{"B"}, want: true},
		{name: "wrong option", selected: []string{"A"}, want: false},
		{name: "empty selection", selected: nil, want: false},
		{name: "two selections always wrong", selected: []string{"B", "C"}, want: false},
		{name: "unknown text", selected: []string{"D"}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCorrect(tc.selected, singleChoiceQ()); got != tc.want {
				t.Errorf("IsCorrect(%v) = %v, want %v", tc.selected, got, tc.want)
			}
		})
	}
}

func TestIsCorrect_MultiChoice(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		want     bool
	}{
		{name: "exact set", selected: []string{"X", "Z"}, want: true},
		{name: "order does not matter", selected: []string{"Z", "X"}, want: true},
		{name: "strict subset", selected: []string{"X"}, want: false},
		{name: "strict superset", selected: []string{"X", "Y", "Z"}, want: false},
		{name: "empty selection", selected: []string{}, want: false},
		{name: "unknown texts dropped, set still short", selected: []string{"X", "Q"}, want: false},
		{name: "unknown texts dropped, set complete", selected: []string{"X", "Z", "Q"}, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCorrect(tc.selected, multiChoiceQ()); got != tc.want {
				t.Errorf("IsCorrect(%v) = %v, want %v", tc.selected, got, tc.want)
			}
		})
	}
}

func TestIsCorrect_DuplicateOptionTexts(t *testing.T) {
	// Position lookup resolves duplicates to the first occurrence.
	q := &model.Question{
		Type:    model.QuestionTypeSingleChoice,
		Score:   1,
		Answers: []string{"Yes", "No", "Yes"},
		Correct: []int{3},
	}
	if IsCorrect([]string{"Yes"}, q) {
		t.Error("duplicate text must resolve to position 1, which is not in the correct set")
	}

	q.Correct = []int{1}
	if !IsCorrect([]string{"Yes"}, q) {
		t.Error("duplicate text resolved to position 1 should match correct={1}")
	}
}

func TestScore(t *testing.T) {
	questions := []model.Question{*singleChoiceQ(), *multiChoiceQ()}

	tests := []struct {
		name      string
		responses map[string][]string
		want      int
	}{
		{name: "all correct", responses: map[string][]string{"1": {"B"}, "2": {"X", "Z"}}, want: 15},
		{name: "single correct only", responses: map[string][]string{"1": {"B"}, "2": {"X"}}, want: 10},
		{name: "multi correct only", responses: map[string][]string{"1": {"A"}, "2": {"Z", "X"}}, want: 5},
		{name: "unanswered contributes zero", responses: map[string][]string{"2": {"X", "Z"}}, want: 5},
		{name: "no responses", responses: map[string][]string{}, want: 0},
		{name: "response for deleted question ignored", responses: map[string][]string{"99": {"B"}}, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.responses, questions); got != tc.want {
				t.Errorf("Score = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestScore_OrderIndependent(t *testing.T) {
	responses := map[string][]string{"1": {"B"}, "2": {"X", "Z"}}
	forward := []model.Question{*singleChoiceQ(), *multiChoiceQ()}
	backward := []model.Question{*multiChoiceQ(), *singleChoiceQ()}

	if Score(responses, forward) != Score(responses, backward) {
		t.Error("score must not depend on question ordering")
	}
}
