package identity

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Lookup is the read-side interface the permission guards depend on.
type Lookup interface {
	ByID(ctx context.Context, id uuid.UUID) (*Instructor, error)
	ByEmail(ctx context.Context, email string) (*Instructor, error)
}

// Repository stores instructor records in Postgres. Permission data lives
// in a jsonb column mirroring the shape the UI writes.
type Repository struct {
	pool       *pgxpool.Pool
	bcryptCost int
	resetTTL   time.Duration
}

// RepositoryOption configures a Repository during construction.
type RepositoryOption func(*Repository)

// WithBcryptCost overrides the bcrypt cost used for password hashes.
func WithBcryptCost(cost int) RepositoryOption {
	return func(r *Repository) { r.bcryptCost = cost }
}

// WithResetTokenTTL overrides the password reset token lifetime.
func WithResetTokenTTL(ttl time.Duration) RepositoryOption {
	return func(r *Repository) { r.resetTTL = ttl }
}

// NewRepository creates a Postgres-backed instructor repository.
func NewRepository(pool *pgxpool.Pool, opts ...RepositoryOption) *Repository {
	r := &Repository{
		pool:       pool,
		bcryptCost: bcrypt.DefaultCost,
		resetTTL:   time.Hour,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

const instructorColumns = `id, employee_id, email, name, auth_level, app_permissions, created_at`

func scanInstructor(row pgx.Row) (*Instructor, error) {
	var (
		ins      Instructor
		rawPerms []byte
	)
	err := row.Scan(&ins.ID, &ins.EmployeeID, &ins.Email, &ins.Name, &ins.AuthLevel, &rawPerms, &ins.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(rawPerms) > 0 {
		// Malformed permission data degrades to no grants, never to an error
		// surfaced as access.
		if err := json.Unmarshal(rawPerms, &ins.Apps); err != nil {
			ins.Apps = nil
		}
	}
	return &ins, nil
}

// ByID fetches an instructor by primary key.
func (r *Repository) ByID(ctx context.Context, id uuid.UUID) (*Instructor, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+instructorColumns+` FROM instructors WHERE id = $1`, id)
	return scanInstructor(row)
}

// ByEmail fetches an instructor by email address.
func (r *Repository) ByEmail(ctx context.Context, email string) (*Instructor, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+instructorColumns+` FROM instructors WHERE email = $1`, email)
	return scanInstructor(row)
}

// VerifyPassword compares a candidate password against the stored hash.
func (r *Repository) VerifyPassword(ctx context.Context, id uuid.UUID, password string) error {
	var hash []byte
	err := r.pool.QueryRow(ctx,
		`SELECT password_hash FROM instructors WHERE id = $1`, id).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}

// SetPassword hashes and stores a new password.
func (r *Repository) SetPassword(ctx context.Context, id uuid.UUID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.bcryptCost)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE instructors SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateResetToken records a password reset token for the instructor with
// the configured TTL, replacing any previous one.
func (r *Repository) CreateResetToken(ctx context.Context, id uuid.UUID, token string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE instructors SET reset_token = $2, reset_token_expires_at = $3 WHERE id = $1`,
		id, token, time.Now().Add(r.resetTTL))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeResetToken resolves a reset token to an instructor and clears it.
// Expired or unknown tokens yield ErrInvalidResetToken.
func (r *Repository) ConsumeResetToken(ctx context.Context, token string) (*Instructor, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE instructors
		 SET reset_token = NULL, reset_token_expires_at = NULL
		 WHERE reset_token = $1 AND reset_token_expires_at > now()
		 RETURNING `+instructorColumns, token)
	ins, err := scanInstructor(row)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidResetToken
		}
		return nil, err
	}
	return ins, nil
}

// UpdateAuthLevel sets the instructor's handicap/authentication level.
func (r *Repository) UpdateAuthLevel(ctx context.Context, id uuid.UUID, level int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE instructors SET auth_level = $2 WHERE id = $1`, id, level)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
