package service

import (
	"context"
	"testing"
	"time"

	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/auditrain/auditrain-backend/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubmissionStore reproduces the storage guard in memory: insert only
// succeeds while the respondent's count is below the limit.
type fakeSubmissionStore struct {
	subs   []model.Submission
	nextID int64
}

func (f *fakeSubmissionStore) ListAll(ctx context.Context) ([]model.Submission, error) {
	return f.subs, nil
}

func (f *fakeSubmissionStore) ListByEmail(ctx context.Context, email string) ([]model.Submission, error) {
	var out []model.Submission
	for _, s := range f.subs {
		if s.UserEmail == email {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionStore) CountByEmail(ctx context.Context, email string) (int, error) {
	n := 0
	for _, s := range f.subs {
		if s.UserEmail == email {
			n++
		}
	}
	return n, nil
}

func (f *fakeSubmissionStore) InsertGuarded(ctx context.Context, sub *model.Submission, maxAttempts int) error {
	count, _ := f.CountByEmail(ctx, sub.UserEmail)
	if count >= maxAttempts {
		return repository.ErrAttemptLimitReached
	}
	f.nextID++
	sub.ID = f.nextID
	sub.SubmittedAt = time.Now()
	f.subs = append(f.subs, *sub)
	return nil
}

type fakeQuestionStore struct {
	questions []model.Question
}

func (f *fakeQuestionStore) List(ctx context.Context) ([]model.Question, error) {
	return f.questions, nil
}

func testQuestions() []model.Question {
	return []model.Question{
		{
			ID: 1, Question: "Energy review clause", Type: model.QuestionTypeSingleChoice,
			Score: 10, Answers: []string{"A", "B", "C"}, Correct: []int{2},
		},
		{
			ID: 2, Question: "Audit evidence", Type: model.QuestionTypeMultiChoice,
			Score: 5, Answers: []string{"X", "Y", "Z"}, Correct: []int{1, 3},
		},
	}
}

func newTestSurveyService(subs *fakeSubmissionStore) *SurveyService {
	return NewSurveyService(subs, &fakeQuestionStore{questions: testQuestions()}, nil, zerolog.Nop())
}

func TestSurveyService_Submit_ScoresAndPersists(t *testing.T) {
	store := &fakeSubmissionStore{}
	svc := newTestSurveyService(store)

	sub, err := svc.Submit(context.Background(), "hv01@example.com", map[string][]string{
		"1": {"B"},
		"2": {"Z", "X"},
	})

	require.NoError(t, err)
	assert.Equal(t, 15, sub.Score)
	assert.Equal(t, int64(1), sub.ID)
	assert.Len(t, store.subs, 1)
}

func TestSurveyService_Submit_WrongAnswersScoreZero(t *testing.T) {
	svc := newTestSurveyService(&fakeSubmissionStore{})

	sub, err := svc.Submit(context.Background(), "hv01@example.com", map[string][]string{
		"1": {"A"},
		"2": {"X"},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, sub.Score)
}

func TestSurveyService_Submit_FourthAttemptRejected(t *testing.T) {
	store := &fakeSubmissionStore{}
	svc := newTestSurveyService(store)
	ctx := context.Background()
	responses := map[string][]string{"1": {"B"}}

	for i := 0; i < MaxAttempts; i++ {
		_, err := svc.Submit(ctx, "hv02@example.com", responses)
		require.NoError(t, err)
	}

	_, err := svc.Submit(ctx, "hv02@example.com", responses)
	assert.ErrorIs(t, err, repository.ErrAttemptLimitReached)
	assert.Len(t, store.subs, MaxAttempts, "rejected attempt must not create a row")

	remaining, err := svc.RemainingAttempts(ctx, "hv02@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestSurveyService_RemainingAttempts_FreshRespondent(t *testing.T) {
	svc := newTestSurveyService(&fakeSubmissionStore{})

	remaining, err := svc.RemainingAttempts(context.Background(), "new@example.com")

	require.NoError(t, err)
	assert.Equal(t, MaxAttempts, remaining)
}

func TestSurveyService_Paper_HidesAnswerKey(t *testing.T) {
	svc := newTestSurveyService(&fakeSubmissionStore{})

	paper, remaining, err := svc.Paper(context.Background(), "hv01@example.com")

	require.NoError(t, err)
	assert.Equal(t, MaxAttempts, remaining)
	require.Len(t, paper, 2)
	assert.Equal(t, []string{"A", "B", "C"}, paper[0].Answers)
	// StudentQuestion has no Correct field at all; spot-check the payload
	// carries everything else.
	assert.Equal(t, 10, paper[0].Score)
}

func TestBuildReview(t *testing.T) {
	questions := testQuestions()
	sub := &model.Submission{
		UserEmail: "hv01@example.com",
		Responses: map[string][]string{"1": {"B"}},
		Score:     10,
	}

	review := BuildReview(sub, questions)

	require.Len(t, review, 2)

	assert.True(t, review[0].Correct)
	assert.Equal(t, 10, review[0].Earned)
	assert.Equal(t, []string{"B"}, review[0].CorrectTexts)

	assert.False(t, review[1].Correct, "unanswered question is not correct")
	assert.Equal(t, 0, review[1].Earned)
	assert.Equal(t, []string{"X", "Z"}, review[1].CorrectTexts)
}
