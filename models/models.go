package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	Content   string    `bson:"content" json:"content"`
	Username  string    `bson:"username" json:"username"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Like struct {
	Username  string    `bson:"username" json:"username"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AuthorDetail is the password-stripped user snapshot joined onto a
// post at query time. It is owned by the query result, not stored.
type AuthorDetail struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
}

type Post struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Content      string             `bson:"content" json:"content"`
	Tag          *string            `bson:"tag,omitempty" json:"tag"`
	ImgUrl       string             `bson:"imgUrl" json:"imgUrl"`
	AuthorID     primitive.ObjectID `bson:"authorId" json:"authorId"`
	Comments     []Comment          `bson:"comments" json:"comments"`
	Likes        []Like             `bson:"likes" json:"likes"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
	AuthorDetail *AuthorDetail      `bson:"authorDetail,omitempty" json:"authorDetail,omitempty"`
}

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"-"`
}

// Follow is a directed edge: follower -> following.
type Follow struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FollowerID  primitive.ObjectID `bson:"followerId"`
	FollowingID primitive.ObjectID `bson:"followingId"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// FollowDetail is one joined row from the followers/following
// aggregations: the user on the other side of the edge plus the time
// the edge was created.
type FollowDetail struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type UserProfile struct {
	User      User
	Followers []FollowDetail
	Following []FollowDetail
}

type Config struct {
	MongoURI      string
	DBName        string
	CacheAddr     string
	CachePassword string
	JWTSecret     []byte
	ServerHost    string
	ServerPort    string
}

type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	Cache  CacheConfig  `yaml:"cache"`
}

type ServerConfig struct {
	Host                  string `yaml:"host"`
	Port                  string `yaml:"port"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

type CacheConfig struct {
	PostsTTLSeconds int `yaml:"posts_ttl_seconds"`
	PostTTLSeconds  int `yaml:"post_ttl_seconds"`
}
