package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/auditrain/auditrain-backend/internal/config"
	"github.com/auditrain/auditrain-backend/internal/grading"
	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// MaxAttempts caps how many times one respondent may submit the survey.
// System-wide, not configurable per question set.
const MaxAttempts = 3

// SubmissionStore is the persistence surface the attempt ledger needs.
type SubmissionStore interface {
	ListAll(ctx context.Context) ([]model.Submission, error)
	ListByEmail(ctx context.Context, email string) ([]model.Submission, error)
	CountByEmail(ctx context.Context, email string) (int, error)
	InsertGuarded(ctx context.Context, sub *model.Submission, maxAttempts int) error
}

// QuestionStore provides the question set in effect at submission time.
type QuestionStore interface {
	List(ctx context.Context) ([]model.Question, error)
}

// FeedPublisher pushes newly persisted submissions to the admin live feed.
// Satisfied by *redis.Client; nil disables publishing.
type FeedPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// SurveyService is the attempt ledger: it decides whether a respondent may
// submit and records the attempt. Submissions are never amended or deleted;
// a retry is always a new attempt.
type SurveyService struct {
	submissions SubmissionStore
	questions   QuestionStore
	feed        FeedPublisher
	log         zerolog.Logger
}

// NewSurveyService creates a new SurveyService.
func NewSurveyService(submissions SubmissionStore, questions QuestionStore, feed FeedPublisher, log zerolog.Logger) *SurveyService {
	return &SurveyService{
		submissions: submissions,
		questions:   questions,
		feed:        feed,
		log:         log.With().Str("component", "survey_service").Logger(),
	}
}

// RemainingAttempts returns how many attempts the respondent has left.
func (s *SurveyService) RemainingAttempts(ctx context.Context, email string) (int, error) {
	count, err := s.submissions.CountByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	remaining := MaxAttempts - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Paper returns the respondent-facing question set plus remaining attempts.
func (s *SurveyService) Paper(ctx context.Context, email string) ([]model.StudentQuestion, int, error) {
	remaining, err := s.RemainingAttempts(ctx, email)
	if err != nil {
		return nil, 0, err
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	paper := make([]model.StudentQuestion, 0, len(questions))
	for i := range questions {
		paper = append(paper, questions[i].StudentView())
	}
	return paper, remaining, nil
}

// Submit scores the responses against the current question set and persists
// a new submission. The attempt limit is enforced atomically by the storage
// layer; callers receive repository.ErrAttemptLimitReached when exhausted.
func (s *SurveyService) Submit(ctx context.Context, email string, responses map[string][]string) (*model.Submission, error) {
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	sub := &model.Submission{
		UserEmail: email,
		Responses: responses,
		Score:     grading.Score(responses, questions),
	}

	if err := s.submissions.InsertGuarded(ctx, sub, MaxAttempts); err != nil {
		return nil, err
	}

	s.publish(ctx, sub)
	return sub, nil
}

// AllSubmissions returns every stored attempt, newest first. Admin listing
// and exports share this.
func (s *SurveyService) AllSubmissions(ctx context.Context) ([]model.Submission, error) {
	return s.submissions.ListAll(ctx)
}

// SubmissionsByEmail returns one respondent's attempts, newest first.
func (s *SurveyService) SubmissionsByEmail(ctx context.Context, email string) ([]model.Submission, error) {
	return s.submissions.ListByEmail(ctx, email)
}

// History returns the respondent's past submissions with a per-question
// review evaluated against the current question set. Scores shown per
// submission are the stored ones; the review may disagree with them after
// question edits, which mirrors how the data actually behaves.
func (s *SurveyService) History(ctx context.Context, email string) ([]model.Submission, [][]model.AnswerReview, error) {
	subs, err := s.submissions.ListByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	reviews := make([][]model.AnswerReview, len(subs))
	for i := range subs {
		reviews[i] = BuildReview(&subs[i], questions)
	}
	return subs, reviews, nil
}

// BuildReview evaluates one submission question by question.
func BuildReview(sub *model.Submission, questions []model.Question) []model.AnswerReview {
	review := make([]model.AnswerReview, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		selected := sub.Responses[strconv.FormatInt(q.ID, 10)]
		correct := grading.IsCorrect(selected, q)

		earned := 0
		if correct {
			earned = q.Score
		}

		texts := make([]string, 0, len(q.Correct))
		for _, pos := range q.Correct {
			if pos >= 1 && pos <= len(q.Answers) {
				texts = append(texts, q.Answers[pos-1])
			}
		}

		review = append(review, model.AnswerReview{
			QuestionID:   q.ID,
			Question:     q.Question,
			Type:         q.Type,
			Selected:     selected,
			CorrectTexts: texts,
			Correct:      correct,
			Score:        q.Score,
			Earned:       earned,
		})
	}
	return review
}

// publish pushes the submission to the live feed channel. Feed delivery is
// best effort; failures are logged and never fail the submit.
func (s *SurveyService) publish(ctx context.Context, sub *model.Submission) {
	if s.feed == nil {
		return
	}
	payload, err := json.Marshal(sub)
	if err != nil {
		return
	}
	if err := s.feed.Publish(ctx, config.CacheKey.SubmissionFeedChannel(), payload).Err(); err != nil {
		s.log.Warn().Err(err).Int64("submission_id", sub.ID).Msg("live feed publish failed")
	}
}
