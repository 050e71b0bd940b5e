package auth

import (
	"context"
	"strings"

	"github.com/vlatan/media-hub/internal/models"
	"github.com/vlatan/media-hub/internal/repositories/users"
)

// LocalUsers are the accounts configured in the environment,
// keyed by lowercase email. Used with the memory store driver.
type LocalUsers map[string]*models.User

// NewLocalUsers creates the accounts out of email to bcrypt hash pairs
func NewLocalUsers(hashes map[string]string) LocalUsers {
	lu := make(LocalUsers, len(hashes))
	for email, hash := range hashes {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}
		lu[email] = &models.User{ID: email, Email: email, PasswordHash: strings.TrimSpace(hash)}
	}
	return lu
}

func (lu LocalUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, ok := lu[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, users.ErrUserNotFound
	}

	return user, nil
}
