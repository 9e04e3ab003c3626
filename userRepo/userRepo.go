package userRepo

import (
	"context"

	"github.com/FahriNazarudin/Frog/models"
)

type UserRepo interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	// GetUsersByUsername is a case-insensitive substring search.
	GetUsersByUsername(ctx context.Context, username string) ([]models.User, error)
	// GetUserByLogin returns the user with the password hash included,
	// for credential verification only.
	GetUserByLogin(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
}
