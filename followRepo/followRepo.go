package followRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FahriNazarudin/Frog/models"
)

type FollowRepo interface {
	FollowUser(ctx context.Context, followerID, followingID primitive.ObjectID) error
	UnfollowUser(ctx context.Context, followerID, followingID primitive.ObjectID) error
	GetFollowers(ctx context.Context, userID primitive.ObjectID) ([]models.FollowDetail, error)
	GetFollowing(ctx context.Context, userID primitive.ObjectID) ([]models.FollowDetail, error)
}
