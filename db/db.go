package db

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FahriNazarudin/Frog/models"
)

func InitDB(ctx context.Context, config models.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.MongoURI))
	if err != nil {
		log.Println("Failed to Connect with MongoDB: ", err.Error())
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Println("MongoDB is not reachable: ", err.Error())
		return nil, err
	}

	database := client.Database(config.DBName)
	if err := applyIndexes(ctx, database); err != nil {
		return nil, err
	}
	return database, nil
}

// Unique indexes take the place of SQL migrations here. They are what
// closes the check-then-act windows on register and follow once
// requests run concurrently.
func applyIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		log.Println("Creating users indexes failed: ", err.Error())
		return err
	}

	// one edge per ordered (follower, following) pair
	_, err = database.Collection("follows").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "followerId", Value: 1}, {Key: "followingId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Println("Creating follows index failed: ", err.Error())
		return err
	}

	_, err = database.Collection("posts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		log.Println("Creating posts index failed: ", err.Error())
		return err
	}

	log.Println("Indexes applied successfully!")
	return nil
}
