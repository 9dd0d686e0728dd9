package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrAttemptLimitReached signals that a respondent already has the maximum
// number of submissions. It is an expected rejection, not a fault.
var ErrAttemptLimitReached = errors.New("attempt limit reached")

// SubmissionRepository handles submission data access. Submissions are
// insert-only: nothing here updates or deletes rows.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// ListAll retrieves every submission, newest first.
func (r *SubmissionRepository) ListAll(ctx context.Context) ([]model.Submission, error) {
	return r.list(ctx,
		`SELECT id, user_email, responses, score, submitted_at
		 FROM submissions ORDER BY submitted_at DESC`)
}

// ListByEmail retrieves one respondent's submissions, newest first.
func (r *SubmissionRepository) ListByEmail(ctx context.Context, email string) ([]model.Submission, error) {
	return r.list(ctx,
		`SELECT id, user_email, responses, score, submitted_at
		 FROM submissions WHERE user_email = $1 ORDER BY submitted_at DESC`, email)
}

// CountByEmail returns how many submissions a respondent has made.
func (r *SubmissionRepository) CountByEmail(ctx context.Context, email string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM submissions WHERE user_email = $1`, email,
	).Scan(&count)
	return count, err
}

// InsertGuarded persists a submission only if the respondent still has
// attempts left, as a single atomic check-and-insert.
//
// The transaction takes a per-email advisory lock before the count-guarded
// insert, so two concurrent submits from the same respondent serialize and
// the displayed-count-vs-click race cannot push anyone past the limit.
// Returns ErrAttemptLimitReached when the guard rejects the row.
func (r *SubmissionRepository) InsertGuarded(ctx context.Context, sub *model.Submission, maxAttempts int) error {
	responses, err := json.Marshal(sub.Responses)
	if err != nil {
		return fmt.Errorf("encode responses: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, sub.UserEmail); err != nil {
		return fmt.Errorf("acquire submit lock: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO submissions (user_email, responses, score)
		 SELECT $1, $2, $3
		 WHERE (SELECT COUNT(*) FROM submissions WHERE user_email = $1) < $4
		 RETURNING id, submitted_at`,
		sub.UserEmail, responses, sub.Score, maxAttempts,
	).Scan(&sub.ID, &sub.SubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAttemptLimitReached
		}
		return fmt.Errorf("insert submission: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *SubmissionRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Submission, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var (
			s            model.Submission
			rawResponses []byte
		)
		if err := rows.Scan(&s.ID, &s.UserEmail, &rawResponses, &s.Score, &s.SubmittedAt); err != nil {
			return nil, err
		}
		s.Responses = model.DecodeResponses(rawResponses)
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
