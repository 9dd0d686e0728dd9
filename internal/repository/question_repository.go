package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// List retrieves all questions ordered by id.
func (r *QuestionRepository) List(ctx context.Context) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question, type, score, answers, correct, created_at, updated_at
		 FROM questions ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var (
			q          model.Question
			rawType    string
			rawAnswers []byte
			rawCorrect []byte
		)
		if err := rows.Scan(&q.ID, &q.Question, &rawType, &q.Score, &rawAnswers, &rawCorrect, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		q.Type = model.NormalizeQuestionType(rawType)
		q.Answers = model.DecodeAnswers(rawAnswers)
		q.Correct = model.DecodeCorrect(rawCorrect)
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// GetByID retrieves a single question.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	var (
		q          model.Question
		rawType    string
		rawAnswers []byte
		rawCorrect []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, question, type, score, answers, correct, created_at, updated_at
		 FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.Question, &rawType, &q.Score, &rawAnswers, &rawCorrect, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	q.Type = model.NormalizeQuestionType(rawType)
	q.Answers = model.DecodeAnswers(rawAnswers)
	q.Correct = model.DecodeCorrect(rawCorrect)
	return &q, nil
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	answers, correct, err := encodeKey(q)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (question, type, score, answers, correct)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		q.Question, q.Type, q.Score, answers, correct,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// Update replaces a question's content. Returns pgx.ErrNoRows semantics via
// the underlying Scan when the id does not exist.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	answers, correct, err := encodeKey(q)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`UPDATE questions
		 SET question = $2, type = $3, score = $4, answers = $5, correct = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		q.ID, q.Question, q.Type, q.Score, answers, correct,
	).Scan(&q.CreatedAt, &q.UpdatedAt)
}

// Delete removes a question. Historical submissions keep referencing the id
// in their stored responses; that staleness is accepted behavior.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func encodeKey(q *model.Question) ([]byte, []byte, error) {
	answers, err := json.Marshal(q.Answers)
	if err != nil {
		return nil, nil, fmt.Errorf("encode answers: %w", err)
	}
	correct, err := json.Marshal(q.Correct)
	if err != nil {
		return nil, nil, fmt.Errorf("encode correct: %w", err)
	}
	return answers, correct, nil
}
