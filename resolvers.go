package main

import (
	"errors"
	"log"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/FahriNazarudin/Frog/models"
)

// errors safe to surface verbatim; everything else is wrapped so raw
// database text never crosses the API boundary
var publicErrors = []error{
	models.ErrValidation,
	models.ErrInvalidID,
	models.ErrNotFound,
	models.ErrDuplicateLike,
	models.ErrDuplicateFollow,
	models.ErrSelfFollow,
	models.ErrNotFollowing,
	models.ErrConflict,
	models.ErrInvalidCredentials,
	models.ErrUnauthorized,
	models.ErrInvalidToken,
	models.ErrPrincipalNotFound,
}

func publicError(err error) error {
	for _, e := range publicErrors {
		if errors.Is(err, e) {
			return err
		}
	}
	log.Println("internal error: ", err.Error())
	return models.ErrInternal
}

func strArg(p graphql.ResolveParams, name string) string {
	if v, ok := p.Args[name].(string); ok {
		return v
	}
	return ""
}

// ---- post queries ----

func (s *Server) getPosts(p graphql.ResolveParams) (interface{}, error) {
	if _, err := s.auth(p.Context); err != nil {
		return nil, err
	}
	posts, err := s.posts.GetPosts(p.Context, "")
	if err != nil {
		return nil, publicError(err)
	}
	return posts, nil
}

func (s *Server) getPostById(p graphql.ResolveParams) (interface{}, error) {
	if _, err := s.auth(p.Context); err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(p.Context, strArg(p, "id"))
	if err != nil {
		return nil, publicError(err)
	}
	return post, nil
}

func (s *Server) getPostByContent(p graphql.ResolveParams) (interface{}, error) {
	if _, err := s.auth(p.Context); err != nil {
		return nil, err
	}
	posts, err := s.posts.GetPosts(p.Context, strArg(p, "content"))
	if err != nil {
		return nil, publicError(err)
	}
	return posts, nil
}

// ---- post mutations ----

func (s *Server) addPost(p graphql.ResolveParams) (interface{}, error) {
	principal, err := s.auth(p.Context)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		Content:  strArg(p, "content"),
		ImgUrl:   strArg(p, "imgUrl"),
		AuthorID: principal.ID,
	}
	if tag := strArg(p, "tag"); tag != "" {
		post.Tag = &tag
	}

	created, err := s.posts.CreatePost(p.Context, post)
	if err != nil {
		return nil, publicError(err)
	}
	return created, nil
}

func (s *Server) addComment(p graphql.ResolveParams) (interface{}, error) {
	principal, err := s.auth(p.Context)
	if err != nil {
		return nil, err
	}

	// commenter identity comes from the verified credential only
	comment := models.Comment{
		Content:  strArg(p, "content"),
		Username: principal.Username,
	}
	if err := s.posts.CreateComment(p.Context, strArg(p, "postId"), comment); err != nil {
		return nil, publicError(err)
	}
	return "Comment Created Successfully", nil
}

func (s *Server) addLike(p graphql.ResolveParams) (interface{}, error) {
	principal, err := s.auth(p.Context)
	if err != nil {
		return nil, err
	}
	if err := s.posts.CreateLike(p.Context, strArg(p, "postId"), principal.Username); err != nil {
		return nil, publicError(err)
	}
	return "Like Created Successfully", nil
}

func (s *Server) removeLike(p graphql.ResolveParams) (interface{}, error) {
	principal, err := s.auth(p.Context)
	if err != nil {
		return nil, err
	}
	if err := s.posts.DeleteLike(p.Context, strArg(p, "postId"), principal.Username); err != nil {
		return nil, publicError(err)
	}
	return "Like Removed Successfully", nil
}

// ---- user queries ----

func (s *Server) getUsers(p graphql.ResolveParams) (interface{}, error) {
	if _, err := s.auth(p.Context); err != nil {
		return nil, err
	}
	users, err := s.users.GetUsers(p.Context)
	if err != nil {
		return nil, publicError(err)
	}
	return users, nil
}

// same listing as getUsers minus the caller, for the search screen
func (s *Server) getAllUsers(p graphql.ResolveParams) (interface{}, error) {
	principal, err := s.auth(p.Context)
	if err != nil {
		return nil, err
	}
	users, err := s.users.GetUsers(p.Context)
	if err != nil {
		return nil, publicError(err)
	}
	others := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.ID != principal.ID {
			others = append(others, u)
		}
	}
	return others, nil
}

func (s *Server) getUserById(p graphql.ResolveParams) (interface{}, error) {
	if _, err := s.auth(p.Context); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(p.Context, strArg(p, "id"))
	if err != nil {
		return nil, publicError(err)
	}
	return user, nil
}

func (s *Server) getUserByUsername(p graphql.ResolveParams) (interface{}, error) {
	if _, err := s.auth(p.Context); err != nil {
		return nil, err
	}
	users, err := s.users.GetUsersByUsername(p.Context, strArg(p, "username"))
	if err != nil {
		return nil, publicError(err)
	}
	return users, nil
}

func (s *Server) getUserProfile(p graphql.ResolveParams) (interface{}, error) {
	if _, err := s.auth(p.Context); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(p.Context, strArg(p, "id"))
	if err != nil {
		return nil, publicError(err)
	}
	followers, err := s.follows.GetFollowers(p.Context, user.ID)
	if err != nil {
		return nil, publicError(err)
	}
	following, err := s.follows.GetFollowing(p.Context, user.ID)
	if err != nil {
		return nil, publicError(err)
	}
	return models.UserProfile{
		User:      user,
		Followers: followers,
		Following: following,
	}, nil
}

// ---- auth mutations ----

func (s *Server) register(p graphql.ResolveParams) (interface{}, error) {
	user := models.User{
		Name:     strArg(p, "name"),
		Username: strArg(p, "username"),
		Email:    strArg(p, "email"),
		Password: strArg(p, "password"),
	}
	if err := checkRegister(user); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, publicError(err)
	}
	user.Password = string(hashed)

	created, err := s.users.CreateUser(p.Context, user)
	if err != nil {
		return nil, publicError(err)
	}
	log.Printf("Register succeeded for user{%v}\n", created.Username)
	return created, nil
}

func (s *Server) login(p graphql.ResolveParams) (interface{}, error) {
	username := strArg(p, "username")
	password := strArg(p, "password")

	// one error for unknown user and bad password, no existence oracle
	user, err := s.users.GetUserByLogin(p.Context, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, publicError(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, err := GenerateToken(user.ID.Hex(), s.config.JWTSecret)
	if err != nil {
		return nil, publicError(err)
	}
	return map[string]interface{}{"access_token": token}, nil
}

// ---- follow graph ----

func (s *Server) followUser(p graphql.ResolveParams) (interface{}, error) {
	principal, err := s.auth(p.Context)
	if err != nil {
		return nil, err
	}
	target, err := primitive.ObjectIDFromHex(strArg(p, "userId"))
	if err != nil {
		return nil, models.ErrInvalidID
	}
	if err := s.follows.FollowUser(p.Context, principal.ID, target); err != nil {
		return nil, publicError(err)
	}
	return "Followed Successfully", nil
}

func (s *Server) unfollowUser(p graphql.ResolveParams) (interface{}, error) {
	principal, err := s.auth(p.Context)
	if err != nil {
		return nil, err
	}
	target, err := primitive.ObjectIDFromHex(strArg(p, "userId"))
	if err != nil {
		return nil, models.ErrInvalidID
	}
	if err := s.follows.UnfollowUser(p.Context, principal.ID, target); err != nil {
		return nil, publicError(err)
	}
	return "Unfollowed Successfully", nil
}

func (s *Server) getMyFollowers(p graphql.ResolveParams) (interface{}, error) {
	principal, err := s.auth(p.Context)
	if err != nil {
		return nil, err
	}
	followers, err := s.follows.GetFollowers(p.Context, principal.ID)
	if err != nil {
		return nil, publicError(err)
	}
	return followers, nil
}

func (s *Server) getMyFollowing(p graphql.ResolveParams) (interface{}, error) {
	principal, err := s.auth(p.Context)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.GetFollowing(p.Context, principal.ID)
	if err != nil {
		return nil, publicError(err)
	}
	return following, nil
}
