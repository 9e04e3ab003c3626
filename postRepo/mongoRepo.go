package postRepo

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
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

func (r *MongoRepo) posts() *mongo.Collection {
	return r.database.Collection("posts")
}

// lookupPipeline joins the author onto each matched post and strips
// the fields the client must never see.
func lookupPipeline(match bson.D) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "authorId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "authorDetail"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$authorDetail"},
			{Key: "preserveNullAndEmptyArrays", Value: false},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "authorDetail.password", Value: false},
			{Key: "authorDetail.createdAt", Value: false},
			{Key: "authorDetail.updatedAt", Value: false},
		}}},
	}
}

func (r *MongoRepo) GetPosts(ctx context.Context, content string) ([]models.Post, error) {
	match := bson.D{{Key: "content", Value: bson.D{
		{Key: "$regex", Value: regexp.QuoteMeta(content)},
		{Key: "$options", Value: "i"},
	}}}

	cursor, err := r.posts().Aggregate(ctx, lookupPipeline(match))
	if err != nil {
		log.Println("Error aggregating posts: ", err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []postDoc
	if err := cursor.All(ctx, &docs); err != nil {
		log.Println("Error decoding posts: ", err.Error())
		return nil, err
	}

	now := time.Now()
	posts := make([]models.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, sanitizePost(doc, now))
	}
	sortPosts(posts)
	return posts, nil
}

func (r *MongoRepo) GetPostByID(ctx context.Context, id string) (models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %q is not a valid post id", models.ErrInvalidID, id)
	}

	match := bson.D{{Key: "_id", Value: oid}}
	cursor, err := r.posts().Aggregate(ctx, lookupPipeline(match))
	if err != nil {
		log.Printf("Error aggregating post{%v}: %v\n", id, err.Error())
		return models.Post{}, err
	}
	defer cursor.Close(ctx)

	var docs []postDoc
	if err := cursor.All(ctx, &docs); err != nil {
		log.Printf("Error decoding post{%v}: %v\n", id, err.Error())
		return models.Post{}, err
	}
	if len(docs) == 0 {
		return models.Post{}, fmt.Errorf("%w: post %v", models.ErrNotFound, id)
	}
	return sanitizePost(docs[0], time.Now()), nil
}

func (r *MongoRepo) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	if strings.TrimSpace(post.Content) == "" {
		return models.Post{}, fmt.Errorf("%w: content is required", models.ErrValidation)
	}
	if post.AuthorID.IsZero() {
		return models.Post{}, fmt.Errorf("%w: author id is required", models.ErrValidation)
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	post.Comments = []models.Comment{}
	post.Likes = []models.Like{}
	if post.Tag != nil && *post.Tag == "" {
		post.Tag = nil
	}

	res, err := r.posts().InsertOne(ctx, post)
	if err != nil {
		log.Printf("Error creating post for author{%v}: %v\n", post.AuthorID.Hex(), err.Error())
		return models.Post{}, err
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return post, nil
}

func (r *MongoRepo) CreateComment(ctx context.Context, postID string, comment models.Comment) error {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid post id", models.ErrInvalidID, postID)
	}
	if strings.TrimSpace(comment.Content) == "" {
		return fmt.Errorf("%w: comment content is required", models.ErrValidation)
	}
	if comment.Username == "" {
		return fmt.Errorf("%w: username is required", models.ErrValidation)
	}

	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	res, err := r.posts().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "comments", Value: comment}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
		})
	if err != nil {
		log.Printf("Error creating comment on post{%v} by user{%v}: %v\n", postID, comment.Username, err.Error())
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: post %v", models.ErrNotFound, postID)
	}
	return nil
}

func (r *MongoRepo) CreateLike(ctx context.Context, postID, username string) error {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid post id", models.ErrInvalidID, postID)
	}
	if username == "" {
		return fmt.Errorf("%w: username is required", models.ErrValidation)
	}

	now := time.Now()
	like := models.Like{Username: username, CreatedAt: now, UpdatedAt: now}

	// The filter excludes posts this user already liked, so the push is
	// atomic and two concurrent likes cannot both land.
	res, err := r.posts().UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: oid},
			{Key: "likes.username", Value: bson.D{{Key: "$ne", Value: username}}},
		},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "likes", Value: like}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
		})
	if err != nil {
		log.Printf("Error creating like on post{%v} by user{%v}: %v\n", postID, username, err.Error())
		return err
	}
	if res.MatchedCount == 0 {
		// either the post is gone or this user already liked it
		findErr := r.posts().FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Err()
		if findErr == mongo.ErrNoDocuments {
			return fmt.Errorf("%w: post %v", models.ErrNotFound, postID)
		}
		if findErr != nil {
			return findErr
		}
		return models.ErrDuplicateLike
	}
	return nil
}

func (r *MongoRepo) DeleteLike(ctx context.Context, postID, username string) error {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid post id", models.ErrInvalidID, postID)
	}
	if username == "" {
		return fmt.Errorf("%w: username is required", models.ErrValidation)
	}

	// Removing a like the user never placed is a no-op, but a missing
	// post is still an error.
	res, err := r.posts().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{
			{Key: "$pull", Value: bson.D{{Key: "likes", Value: bson.D{{Key: "username", Value: username}}}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now()}}},
		})
	if err != nil {
		log.Printf("Error deleting like on post{%v} by user{%v}: %v\n", postID, username, err.Error())
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: post %v", models.ErrNotFound, postID)
	}
	return nil
}
