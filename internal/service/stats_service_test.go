package service

import (
	"testing"
	"time"

	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsFixture() ([]model.Submission, []model.Question, []model.User) {
	day1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 11, 14, 30, 0, 0, time.UTC)

	submissions := []model.Submission{
		{
			ID: 1, UserEmail: "a@example.com", Score: 15, SubmittedAt: day1,
			Responses: map[string][]string{"1": {"B"}, "2": {"X", "Z"}},
		},
		{
			ID: 2, UserEmail: "a@example.com", Score: 10, SubmittedAt: day1,
			Responses: map[string][]string{"1": {"B"}, "2": {"Y"}},
		},
		{
			ID: 3, UserEmail: "b@example.com", Score: 0, SubmittedAt: day2,
			Responses: map[string][]string{"1": {"A"}},
		},
	}

	questions := testQuestions() // total possible score 15

	users := []model.User{
		{Email: "a@example.com", Class: "EnMS-K1", Role: model.RoleStudent},
		{Email: "b@example.com", Class: "EnMS-K2", Role: model.RoleStudent},
		{Email: "c@example.com", Class: "EnMS-K2", Role: model.RoleStudent},
	}
	return submissions, questions, users
}

func TestBuildStatistics_Totals(t *testing.T) {
	submissions, questions, users := statsFixture()

	stats := BuildStatistics(submissions, questions, users)

	assert.Equal(t, 3, stats.TotalSubmissions)
	assert.Equal(t, 2, stats.StudentCount, "distinct respondents, not registered users")
	assert.Equal(t, 15, stats.TotalPossibleScore)
	assert.InDelta(t, 25.0/3.0, stats.AvgScore, 1e-9)
	assert.InDelta(t, 25.0/3.0/15.0*100, stats.AvgPercentage, 1e-9)
}

func TestBuildStatistics_PerQuestion(t *testing.T) {
	submissions, questions, users := statsFixture()

	stats := BuildStatistics(submissions, questions, users)

	q1 := stats.QuestionStats["1"]
	assert.Equal(t, 3, q1.TotalAnswers)
	assert.Equal(t, 2, q1.CorrectCount)
	assert.InDelta(t, 200.0/3.0, q1.CorrectPercentage, 1e-9)

	q2 := stats.QuestionStats["2"]
	assert.Equal(t, 2, q2.TotalAnswers, "submission 3 skipped question 2")
	assert.Equal(t, 1, q2.CorrectCount)
	assert.InDelta(t, 50.0, q2.CorrectPercentage, 1e-9)
}

func TestBuildStatistics_DailyCounts(t *testing.T) {
	submissions, questions, users := statsFixture()

	stats := BuildStatistics(submissions, questions, users)

	assert.Equal(t, map[string]int{
		"2026-03-10": 2,
		"2026-03-11": 1,
	}, stats.DailyCounts)
}

func TestBuildStatistics_ClassStats(t *testing.T) {
	submissions, questions, users := statsFixture()

	stats := BuildStatistics(submissions, questions, users)

	require.Len(t, stats.ClassStats, 2)

	k1 := stats.ClassStats[0]
	assert.Equal(t, "EnMS-K1", k1.Class)
	assert.Equal(t, 1, k1.Students)
	assert.Equal(t, 2, k1.Submissions)
	assert.InDelta(t, 12.5, k1.AvgScore, 1e-9)
	assert.Equal(t, 15, k1.BestScore)

	k2 := stats.ClassStats[1]
	assert.Equal(t, "EnMS-K2", k2.Class)
	assert.Equal(t, 2, k2.Students, "classes with no submissions still count members")
	assert.Equal(t, 1, k2.Submissions)
	assert.InDelta(t, 0, k2.AvgScore, 1e-9)
}

func TestBuildStatistics_Empty(t *testing.T) {
	stats := BuildStatistics(nil, nil, nil)

	assert.Equal(t, 0, stats.TotalSubmissions)
	assert.Zero(t, stats.AvgScore)
	assert.Zero(t, stats.AvgPercentage)
	assert.Empty(t, stats.QuestionStats)
	assert.Empty(t, stats.DailyCounts)
	assert.Empty(t, stats.ClassStats)
}

func TestBuildStatistics_OrphanSubmissionSkippedInClassStats(t *testing.T) {
	submissions := []model.Submission{
		{ID: 1, UserEmail: "gone@example.com", Score: 5, SubmittedAt: time.Now()},
	}
	users := []model.User{
		{Email: "a@example.com", Class: "EnMS-K1", Role: model.RoleStudent},
	}

	stats := BuildStatistics(submissions, nil, users)

	require.Len(t, stats.ClassStats, 1)
	assert.Equal(t, 0, stats.ClassStats[0].Submissions)
	// The orphan still counts toward the global totals.
	assert.Equal(t, 1, stats.TotalSubmissions)
	assert.Equal(t, 1, stats.StudentCount)
}
