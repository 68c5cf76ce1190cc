// Package users is the credential store: accounts with bcrypt password hashes.
package users

import (
	"context"

	"github.com/dmitrijs2005/odyssey/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
