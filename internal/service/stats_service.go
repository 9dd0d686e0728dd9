package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/auditrain/auditrain-backend/internal/grading"
	"github.com/auditrain/auditrain-backend/internal/model"
)

// UserStore is the user listing surface the statistics need.
type UserStore interface {
	List(ctx context.Context, role *model.Role, class *string) ([]model.User, error)
}

// Statistics is the full read-side projection over submissions, questions
// and users. It is recomputed from source tables on every request — never
// cached, never persisted.
type Statistics struct {
	TotalSubmissions   int                     `json:"total_submissions"`
	StudentCount       int                     `json:"student_count"`
	AvgScore           float64                 `json:"avg_score"`
	AvgPercentage      float64                 `json:"avg_percentage"`
	TotalPossibleScore int                     `json:"total_possible_score"`
	QuestionStats      map[string]QuestionStat `json:"question_stats"`
	DailyCounts        map[string]int          `json:"daily_counts"`
	ClassStats         []ClassStat             `json:"class_stats"`
}

// QuestionStat aggregates one question across all submissions.
type QuestionStat struct {
	Question          string  `json:"question"`
	TotalAnswers      int     `json:"total_answers"`
	CorrectCount      int     `json:"correct_count"`
	CorrectPercentage float64 `json:"correct_percentage"`
}

// ClassStat aggregates submissions per (free-text) class of registered
// students.
type ClassStat struct {
	Class       string  `json:"class"`
	Students    int     `json:"students"`
	Submissions int     `json:"submissions"`
	AvgScore    float64 `json:"avg_score"`
	BestScore   int     `json:"best_score"`
}

// StatsService computes statistics on demand.
type StatsService struct {
	submissions SubmissionStore
	questions   QuestionStore
	users       UserStore
}

// NewStatsService creates a new StatsService.
func NewStatsService(submissions SubmissionStore, questions QuestionStore, users UserStore) *StatsService {
	return &StatsService{submissions: submissions, questions: questions, users: users}
}

// Compute loads all source rows and derives the statistics.
func (s *StatsService) Compute(ctx context.Context) (*Statistics, error) {
	submissions, err := s.submissions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	studentRole := model.RoleStudent
	students, err := s.users.List(ctx, &studentRole, nil)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	return BuildStatistics(submissions, questions, students), nil
}

// BuildStatistics derives the projection from in-memory rows. Pure; exists
// separately from Compute so exports and tests can share it.
func BuildStatistics(submissions []model.Submission, questions []model.Question, students []model.User) *Statistics {
	stats := &Statistics{
		TotalSubmissions: len(submissions),
		QuestionStats:    make(map[string]QuestionStat, len(questions)),
		DailyCounts:      make(map[string]int),
	}

	for i := range questions {
		stats.TotalPossibleScore += questions[i].Score
	}

	// Distinct respondents and average score.
	respondents := make(map[string]struct{}, len(submissions))
	totalScore := 0
	for i := range submissions {
		respondents[submissions[i].UserEmail] = struct{}{}
		totalScore += submissions[i].Score
	}
	stats.StudentCount = len(respondents)
	if len(submissions) > 0 {
		stats.AvgScore = float64(totalScore) / float64(len(submissions))
	}
	if stats.TotalPossibleScore > 0 {
		stats.AvgPercentage = stats.AvgScore / float64(stats.TotalPossibleScore) * 100
	}

	// Per-question stats: an answer counts when the question id is a key in
	// the submission's responses; correctness is evaluated against the
	// current question definition.
	for i := range questions {
		q := &questions[i]
		qID := strconv.FormatInt(q.ID, 10)

		stat := QuestionStat{Question: q.Question}
		for j := range submissions {
			selected, answered := submissions[j].Responses[qID]
			if !answered {
				continue
			}
			stat.TotalAnswers++
			if grading.IsCorrect(selected, q) {
				stat.CorrectCount++
			}
		}
		if stat.TotalAnswers > 0 {
			stat.CorrectPercentage = float64(stat.CorrectCount) / float64(stat.TotalAnswers) * 100
		}
		stats.QuestionStats[qID] = stat
	}

	// Per-day counts, keyed by the calendar date of the submission.
	for i := range submissions {
		day := submissions[i].SubmittedAt.Format("2006-01-02")
		stats.DailyCounts[day]++
	}

	stats.ClassStats = buildClassStats(submissions, students)
	return stats
}

func buildClassStats(submissions []model.Submission, students []model.User) []ClassStat {
	emailToClass := make(map[string]string, len(students))
	perClass := make(map[string]*ClassStat)

	for i := range students {
		class := students[i].Class
		emailToClass[students[i].Email] = class
		if _, ok := perClass[class]; !ok {
			perClass[class] = &ClassStat{Class: class}
		}
		perClass[class].Students++
	}

	classTotals := make(map[string]int)
	for i := range submissions {
		class, ok := emailToClass[submissions[i].UserEmail]
		if !ok {
			continue // Respondent no longer in the user table.
		}
		cs := perClass[class]
		cs.Submissions++
		classTotals[class] += submissions[i].Score
		if submissions[i].Score > cs.BestScore {
			cs.BestScore = submissions[i].Score
		}
	}

	out := make([]ClassStat, 0, len(perClass))
	for class, cs := range perClass {
		if cs.Submissions > 0 {
			cs.AvgScore = float64(classTotals[class]) / float64(cs.Submissions)
		}
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Class < out[j].Class })
	return out
}
