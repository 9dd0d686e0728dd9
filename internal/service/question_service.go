package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/auditrain/auditrain-backend/internal/repository"
)

// ErrCorrectOutOfRange signals a correct set referencing positions outside
// [1, len(answers)].
var ErrCorrectOutOfRange = errors.New("correct positions must lie within the answer list")

// QuestionService handles question management business logic.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

// List returns all questions.
func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	return s.questionRepo.List(ctx)
}

// GetByID returns a single question.
func (s *QuestionService) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// Create validates and inserts a new question.
func (s *QuestionService) Create(ctx context.Context, req *model.SaveQuestionRequest) (*model.Question, error) {
	q, err := fromSaveRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

// Update validates and replaces an existing question. Stored submissions are
// not rescored; their historical scores intentionally go stale.
func (s *QuestionService) Update(ctx context.Context, id int64, req *model.SaveQuestionRequest) (*model.Question, error) {
	q, err := fromSaveRequest(req)
	if err != nil {
		return nil, err
	}
	q.ID = id
	if err := s.questionRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Delete removes a question. Returns false when the id does not exist.
func (s *QuestionService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.questionRepo.Delete(ctx, id)
}

func fromSaveRequest(req *model.SaveQuestionRequest) (*model.Question, error) {
	for _, pos := range req.Correct {
		if pos < 1 || pos > len(req.Answers) {
			return nil, ErrCorrectOutOfRange
		}
	}
	return &model.Question{
		Question: req.Question,
		Type:     model.QuestionType(req.Type),
		Score:    req.Score,
		Answers:  req.Answers,
		Correct:  req.Correct,
	}, nil
}
