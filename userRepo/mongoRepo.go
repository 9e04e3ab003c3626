package userRepo

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

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

func (r *MongoRepo) users() *mongo.Collection {
	return r.database.Collection("users")
}

// password never leaves the collection except through GetUserByLogin
var noPassword = options.Find().SetProjection(bson.D{{Key: "password", Value: 0}})

func (r *MongoRepo) GetUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := r.users().Find(ctx, bson.D{}, noPassword)
	if err != nil {
		log.Println("Error fetching users: ", err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		log.Println("Error decoding users: ", err.Error())
		return nil, err
	}
	return users, nil
}

func (r *MongoRepo) GetUserByID(ctx context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %q is not a valid user id", models.ErrInvalidID, id)
	}

	var user models.User
	err = r.users().FindOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		options.FindOne().SetProjection(bson.D{{Key: "password", Value: 0}}),
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, fmt.Errorf("%w: user %v", models.ErrNotFound, id)
	}
	if err != nil {
		log.Printf("Error fetching user{%v}: %v\n", id, err.Error())
		return models.User{}, err
	}
	return user, nil
}

func (r *MongoRepo) GetUsersByUsername(ctx context.Context, username string) ([]models.User, error) {
	filter := bson.D{{Key: "username", Value: bson.D{
		{Key: "$regex", Value: regexp.QuoteMeta(username)},
		{Key: "$options", Value: "i"},
	}}}

	cursor, err := r.users().Find(ctx, filter, noPassword)
	if err != nil {
		log.Printf("Error searching users by username{%v}: %v\n", username, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		log.Println("Error decoding users: ", err.Error())
		return nil, err
	}
	return users, nil
}

func (r *MongoRepo) GetUserByLogin(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.users().FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, fmt.Errorf("%w: user %v", models.ErrNotFound, username)
	}
	if err != nil {
		log.Printf("Error fetching login user{%v}: %v\n", username, err.Error())
		return models.User{}, err
	}
	return user, nil
}

func (r *MongoRepo) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	res, err := r.users().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return models.User{}, models.ErrConflict
	}
	if err != nil {
		log.Printf("Error creating user{%v}: %v\n", user.Username, err.Error())
		return models.User{}, err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	user.Password = ""
	return user, nil
}
