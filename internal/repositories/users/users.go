package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vlatan/media-hub/internal/drivers/database"
	"github.com/vlatan/media-hub/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type Repository struct {
	db database.DBTX
}

func New(db database.DBTX) *Repository {
	return &Repository{db: db}
}

// GetUserByEmail looks up the user case-insensitively
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, getUserByEmailQuery, strings.TrimSpace(email))
}

// GetUserByID looks up the user by its row ID
func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrUserNotFound
	}
	return r.getUser(ctx, getUserByIDQuery, id)
}

func (r *Repository) getUser(ctx context.Context, query, arg string) (*models.User, error) {

	var user models.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UpsertUser creates the user or resets the password of an existing one.
// It returns the user's row ID.
func (r *Repository) UpsertUser(ctx context.Context, email, passwordHash string) (string, error) {
	var id string
	err := r.db.QueryRow(
		ctx,
		upsertUserQuery,
		uuid.NewString(),
		strings.ToLower(strings.TrimSpace(email)),
		passwordHash,
	).Scan(&id)
	return id, err
}
