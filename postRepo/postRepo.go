package postRepo

import (
	"context"

	"github.com/FahriNazarudin/Frog/models"
)

type PostRepo interface {
	// GetPosts returns posts whose content matches the case-insensitive
	// substring filter (empty filter = all), each joined with its author
	// snapshot and sorted newest-first.
	GetPosts(ctx context.Context, content string) ([]models.Post, error)
	GetPostByID(ctx context.Context, id string) (models.Post, error)
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	CreateComment(ctx context.Context, postID string, comment models.Comment) error
	CreateLike(ctx context.Context, postID, username string) error
	DeleteLike(ctx context.Context, postID, username string) error
}
