package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateEmail signals a registration attempt with an email that is
// already taken.
var ErrDuplicateEmail = errors.New("user with this email already exists")

// UserRepository handles user data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `email, password, full_name, class, role, first_login, registration_date`

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email,
	).Scan(&u.Email, &u.Password, &u.FullName, &u.Class, &u.Role, &u.FirstLogin, &u.RegistrationDate)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByCredentials retrieves a user matching email and password.
// The stored passwords are clear text (legacy data); the comparison happens
// in SQL exactly like the original system did it.
func (r *UserRepository) GetByCredentials(ctx context.Context, email, password string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND password = $2`, email, password,
	).Scan(&u.Email, &u.Password, &u.FullName, &u.Class, &u.Role, &u.FirstLogin, &u.RegistrationDate)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// List retrieves users with optional role and class filters, ordered by name.
func (r *UserRepository) List(ctx context.Context, role *model.Role, class *string) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []interface{}
	argIdx := 1

	if role != nil {
		query += ` WHERE role = $` + strconv.Itoa(argIdx)
		args = append(args, *role)
		argIdx++
	}
	if class != nil {
		if argIdx == 1 {
			query += ` WHERE`
		} else {
			query += ` AND`
		}
		query += ` class = $` + strconv.Itoa(argIdx)
		args = append(args, *class)
	}
	query += ` ORDER BY full_name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Email, &u.Password, &u.FullName, &u.Class, &u.Role, &u.FirstLogin, &u.RegistrationDate); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Create inserts a new user. Returns ErrDuplicateEmail on a unique violation.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, password, full_name, class, role, first_login)
		 VALUES ($1, $2, $3, $4, $5, TRUE)
		 RETURNING first_login, registration_date`,
		u.Email, u.Password, u.FullName, u.Class, u.Role,
	).Scan(&u.FirstLogin, &u.RegistrationDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// UpdatePassword changes a user's password after verifying the old one.
// Returns pgx.ErrNoRows when the old password does not match.
func (r *UserRepository) UpdatePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	var updated string
	return r.pool.QueryRow(ctx,
		`UPDATE users SET password = $3, first_login = FALSE
		 WHERE email = $1 AND password = $2
		 RETURNING email`,
		email, oldPassword, newPassword,
	).Scan(&updated)
}

// UpdateProfile updates the non-empty profile fields of a user.
func (r *UserRepository) UpdateProfile(ctx context.Context, email, fullName, class string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`UPDATE users
		 SET full_name = COALESCE(NULLIF($2, ''), full_name),
		     class = COALESCE(NULLIF($3, ''), class)
		 WHERE email = $1
		 RETURNING `+userColumns,
		email, fullName, class,
	).Scan(&u.Email, &u.Password, &u.FullName, &u.Class, &u.Role, &u.FirstLogin, &u.RegistrationDate)
	if err != nil {
		return nil, err
	}
	return u, nil
}
