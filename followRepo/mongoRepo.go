package followRepo

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/FahriNazarudin/Frog/models"
)

type MongoRepo struct {
	database *mongo.Database
}

func NewMongoRepo(database *mongo.Database) *MongoRepo {
	return &MongoRepo{
		database: database,
	}
}

func (r *MongoRepo) follows() *mongo.Collection {
	return r.database.Collection("follows")
}

func (r *MongoRepo) FollowUser(ctx context.Context, followerID, followingID primitive.ObjectID) error {
	if followerID.IsZero() || followingID.IsZero() {
		return fmt.Errorf("%w: follower and following ids are required", models.ErrValidation)
	}
	if followerID == followingID {
		return models.ErrSelfFollow
	}

	now := time.Now()
	follow := models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// the unique (followerId, followingId) index rejects a second edge
	_, err := r.follows().InsertOne(ctx, follow)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicateFollow
	}
	if err != nil {
		log.Printf("Error following user{%v} by user{%v}: %v\n", followingID.Hex(), followerID.Hex(), err.Error())
		return err
	}
	return nil
}

func (r *MongoRepo) UnfollowUser(ctx context.Context, followerID, followingID primitive.ObjectID) error {
	res, err := r.follows().DeleteOne(ctx, bson.D{
		{Key: "followerId", Value: followerID},
		{Key: "followingId", Value: followingID},
	})
	if err != nil {
		log.Printf("Error unfollowing user{%v} by user{%v}: %v\n", followingID.Hex(), followerID.Hex(), err.Error())
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFollowing
	}
	return nil
}

func (r *MongoRepo) GetFollowers(ctx context.Context, userID primitive.ObjectID) ([]models.FollowDetail, error) {
	return r.edgeDetails(ctx, "followingId", userID, "followerId")
}

func (r *MongoRepo) GetFollowing(ctx context.Context, userID primitive.ObjectID) ([]models.FollowDetail, error) {
	return r.edgeDetails(ctx, "followerId", userID, "followingId")
}

// edgeDetails matches edges on one side and joins the user document on
// the other side, projecting it into a FollowDetail row.
func (r *MongoRepo) edgeDetails(ctx context.Context, matchField string, userID primitive.ObjectID, joinField string) ([]models.FollowDetail, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: matchField, Value: userID}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: joinField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "other"},
		}}},
		bson.D{{Key: "$unwind", Value: "$other"}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: "$other._id"},
			{Key: "name", Value: "$other.name"},
			{Key: "username", Value: "$other.username"},
			{Key: "email", Value: "$other.email"},
			{Key: "createdAt", Value: "$createdAt"},
		}}},
	}

	cursor, err := r.follows().Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("Error aggregating follows for user{%v}: %v\n", userID.Hex(), err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	details := []models.FollowDetail{}
	if err := cursor.All(ctx, &details); err != nil {
		log.Println("Error decoding follows: ", err.Error())
		return nil, err
	}
	return details, nil
}
