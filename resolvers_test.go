package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FahriNazarudin/Frog/models"
)

// Fake repos mirroring the Mongo repo semantics closely enough to
// exercise the resolver orchestration without a database.

type fakePostRepo struct {
	posts   []models.Post
	listErr error
}

func (f *fakePostRepo) GetPosts(ctx context.Context, content string) ([]models.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Post
	for _, p := range f.posts {
		if content == "" || strings.Contains(strings.ToLower(p.Content), strings.ToLower(content)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) GetPostByID(ctx context.Context, id string) (models.Post, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return models.Post{}, models.ErrInvalidID
	}
	for _, p := range f.posts {
		if p.ID.Hex() == id {
			return p, nil
		}
	}
	return models.Post{}, models.ErrNotFound
}

func (f *fakePostRepo) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	if strings.TrimSpace(post.Content) == "" {
		return models.Post{}, fmt.Errorf("%w: content is required", models.ErrValidation)
	}
	if post.AuthorID.IsZero() {
		return models.Post{}, fmt.Errorf("%w: author id is required", models.ErrValidation)
	}
	now := time.Now()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now
	post.Comments = []models.Comment{}
	post.Likes = []models.Like{}
	f.posts = append(f.posts, post)
	return post, nil
}

func (f *fakePostRepo) CreateComment(ctx context.Context, postID string, comment models.Comment) error {
	for i, p := range f.posts {
		if p.ID.Hex() == postID {
			f.posts[i].Comments = append(f.posts[i].Comments, comment)
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakePostRepo) CreateLike(ctx context.Context, postID, username string) error {
	for i, p := range f.posts {
		if p.ID.Hex() == postID {
			for _, l := range p.Likes {
				if l.Username == username {
					return models.ErrDuplicateLike
				}
			}
			f.posts[i].Likes = append(f.posts[i].Likes, models.Like{Username: username})
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakePostRepo) DeleteLike(ctx context.Context, postID, username string) error {
	for i, p := range f.posts {
		if p.ID.Hex() == postID {
			likes := p.Likes[:0]
			for _, l := range p.Likes {
				if l.Username != username {
					likes = append(likes, l)
				}
			}
			f.posts[i].Likes = likes
			return nil
		}
	}
	return models.ErrNotFound
}

type fakeUserRepo struct {
	users []models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	return &fakeUserRepo{users: users}
}

func (f *fakeUserRepo) GetUsers(ctx context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (models.User, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			u.Password = ""
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (f *fakeUserRepo) GetUsersByUsername(ctx context.Context, username string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(username)) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetUserByLogin(ctx context.Context, username string) (models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return models.User{}, models.ErrConflict
		}
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return user, nil
}

type edge struct {
	follower, following primitive.ObjectID
}

type fakeFollowRepo struct {
	edges []edge
}

func (f *fakeFollowRepo) FollowUser(ctx context.Context, followerID, followingID primitive.ObjectID) error {
	if followerID == followingID {
		return models.ErrSelfFollow
	}
	for _, e := range f.edges {
		if e.follower == followerID && e.following == followingID {
			return models.ErrDuplicateFollow
		}
	}
	f.edges = append(f.edges, edge{followerID, followingID})
	return nil
}

func (f *fakeFollowRepo) UnfollowUser(ctx context.Context, followerID, followingID primitive.ObjectID) error {
	for i, e := range f.edges {
		if e.follower == followerID && e.following == followingID {
			f.edges = append(f.edges[:i], f.edges[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFollowing
}

func (f *fakeFollowRepo) GetFollowers(ctx context.Context, userID primitive.ObjectID) ([]models.FollowDetail, error) {
	return []models.FollowDetail{}, nil
}

func (f *fakeFollowRepo) GetFollowing(ctx context.Context, userID primitive.ObjectID) ([]models.FollowDetail, error) {
	return []models.FollowDetail{}, nil
}

func newTestServer(t *testing.T, principal models.User) (*Server, *fakePostRepo, *fakeUserRepo, *fakeFollowRepo) {
	t.Helper()
	posts := &fakePostRepo{}
	users := newFakeUserRepo(principal)
	follows := &fakeFollowRepo{}

	server, err := NewServer(
		models.Config{JWTSecret: testSecret},
		models.AppConfig{},
		posts, users, follows,
		func(ctx context.Context) (models.User, error) {
			if principal.ID.IsZero() {
				return models.User{}, models.ErrUnauthorized
			}
			return principal, nil
		},
	)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, posts, users, follows
}

func params(args map[string]interface{}) graphql.ResolveParams {
	return graphql.ResolveParams{
		Context: context.Background(),
		Args:    args,
	}
}

func testPrincipal() models.User {
	return models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Alice",
		Username: "alice",
		Email:    "alice@mail.com",
	}
}

func TestProtectedOperationsRejectMissingCredential(t *testing.T) {
	server, _, _, _ := newTestServer(t, models.User{})

	if _, err := server.getPosts(params(nil)); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("getPosts: expected ErrUnauthorized, got %v", err)
	}
	if _, err := server.addPost(params(map[string]interface{}{"content": "x"})); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("addPost: expected ErrUnauthorized, got %v", err)
	}
}

func TestAddPostScenario(t *testing.T) {
	server, _, _, _ := newTestServer(t, testPrincipal())

	if _, err := server.addPost(params(map[string]interface{}{"content": "hello"})); err != nil {
		t.Fatalf("addPost failed: %v", err)
	}

	res, err := server.getPosts(params(nil))
	if err != nil {
		t.Fatalf("getPosts failed: %v", err)
	}
	posts := res.([]models.Post)
	if len(posts) != 1 {
		t.Fatalf("expected exactly one post, got %d", len(posts))
	}
	post := posts[0]
	if post.Content != "hello" {
		t.Fatalf("expected content hello, got %q", post.Content)
	}
	if post.Tag != nil {
		t.Fatalf("expected nil tag, got %q", *post.Tag)
	}
	if len(post.Comments) != 0 || len(post.Likes) != 0 {
		t.Fatalf("expected empty comments and likes, got %v / %v", post.Comments, post.Likes)
	}
}

func TestAddPostRejectsWhitespaceContent(t *testing.T) {
	server, _, _, _ := newTestServer(t, testPrincipal())

	if _, err := server.addPost(params(map[string]interface{}{"content": "   "})); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCommentIdentityComesFromPrincipal(t *testing.T) {
	principal := testPrincipal()
	server, posts, _, _ := newTestServer(t, principal)

	res, err := server.addPost(params(map[string]interface{}{"content": "hello"}))
	if err != nil {
		t.Fatalf("addPost failed: %v", err)
	}
	postID := res.(models.Post).ID.Hex()

	// no username argument exists on the mutation; the stored comment
	// must carry the authenticated identity
	if _, err := server.addComment(params(map[string]interface{}{"postId": postID, "content": "first"})); err != nil {
		t.Fatalf("addComment failed: %v", err)
	}
	if got := posts.posts[0].Comments[0].Username; got != principal.Username {
		t.Fatalf("expected comment by %q, got %q", principal.Username, got)
	}
}

func TestDuplicateLikeRejected(t *testing.T) {
	server, _, _, _ := newTestServer(t, testPrincipal())

	res, err := server.addPost(params(map[string]interface{}{"content": "hello"}))
	if err != nil {
		t.Fatalf("addPost failed: %v", err)
	}
	args := map[string]interface{}{"postId": res.(models.Post).ID.Hex()}

	if _, err := server.addLike(params(args)); err != nil {
		t.Fatalf("first like failed: %v", err)
	}
	if _, err := server.addLike(params(args)); !errors.Is(err, models.ErrDuplicateLike) {
		t.Fatalf("expected ErrDuplicateLike, got %v", err)
	}

	// unlike returns the post to a likeable state
	if _, err := server.removeLike(params(args)); err != nil {
		t.Fatalf("removeLike failed: %v", err)
	}
	if _, err := server.addLike(params(args)); err != nil {
		t.Fatalf("like after unlike failed: %v", err)
	}
}

func TestFollowRules(t *testing.T) {
	principal := testPrincipal()
	server, _, _, _ := newTestServer(t, principal)
	other := primitive.NewObjectID()

	selfArgs := map[string]interface{}{"userId": principal.ID.Hex()}
	if _, err := server.followUser(params(selfArgs)); !errors.Is(err, models.ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}

	otherArgs := map[string]interface{}{"userId": other.Hex()}
	if _, err := server.followUser(params(otherArgs)); err != nil {
		t.Fatalf("followUser failed: %v", err)
	}
	if _, err := server.followUser(params(otherArgs)); !errors.Is(err, models.ErrDuplicateFollow) {
		t.Fatalf("expected ErrDuplicateFollow, got %v", err)
	}

	if _, err := server.unfollowUser(params(otherArgs)); err != nil {
		t.Fatalf("unfollowUser failed: %v", err)
	}
	if _, err := server.unfollowUser(params(otherArgs)); !errors.Is(err, models.ErrNotFollowing) {
		t.Fatalf("expected ErrNotFollowing, got %v", err)
	}
}

func TestFollowRejectsMalformedId(t *testing.T) {
	server, _, _, _ := newTestServer(t, testPrincipal())

	if _, err := server.followUser(params(map[string]interface{}{"userId": "nope"})); !errors.Is(err, models.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	server, _, _, _ := newTestServer(t, testPrincipal())

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"short password", map[string]interface{}{"name": "Bob", "username": "bob", "email": "bob@mail.com", "password": "1234"}},
		{"bad email", map[string]interface{}{"name": "Bob", "username": "bob", "email": "not-an-email", "password": "12345"}},
		{"missing name", map[string]interface{}{"username": "bob", "email": "bob@mail.com", "password": "12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := server.register(params(tt.args)); !errors.Is(err, models.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	server, _, _, _ := newTestServer(t, testPrincipal())

	args := map[string]interface{}{"name": "Alice Clone", "username": "alice", "email": "clone@mail.com", "password": "12345"}
	if _, err := server.register(params(args)); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate username, got %v", err)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	server, _, users, _ := newTestServer(t, testPrincipal())

	args := map[string]interface{}{"name": "Bob", "username": "bob", "email": "bob@mail.com", "password": "12345"}
	if _, err := server.register(params(args)); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	stored, err := users.GetUserByLogin(context.Background(), "bob")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.Password == "12345" || stored.Password == "" {
		t.Fatal("password stored in plain text")
	}
}

func TestLoginGivesNoExistenceOracle(t *testing.T) {
	server, _, _, _ := newTestServer(t, testPrincipal())

	// register a real user so one of the two failures hits bcrypt
	args := map[string]interface{}{"name": "Bob", "username": "bob", "email": "bob@mail.com", "password": "12345"}
	if _, err := server.register(params(args)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, errBadPass := server.login(params(map[string]interface{}{"username": "bob", "password": "wrongpass"}))
	_, errNoUser := server.login(params(map[string]interface{}{"username": "nonexistent", "password": "x"}))

	if !errors.Is(errBadPass, models.ErrInvalidCredentials) {
		t.Fatalf("bad password: expected ErrInvalidCredentials, got %v", errBadPass)
	}
	if !errors.Is(errNoUser, models.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errNoUser)
	}
	if errBadPass.Error() != errNoUser.Error() {
		t.Fatalf("error messages differ: %q vs %q", errBadPass.Error(), errNoUser.Error())
	}
}

func TestLoginIssuesUsableToken(t *testing.T) {
	server, _, _, _ := newTestServer(t, testPrincipal())

	args := map[string]interface{}{"name": "Bob", "username": "bob", "email": "bob@mail.com", "password": "12345"}
	if _, err := server.register(params(args)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := server.login(params(map[string]interface{}{"username": "bob", "password": "12345"}))
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	token := res.(map[string]interface{})["access_token"].(string)
	if _, err := ValidateToken(token, testSecret); err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
}

func TestInternalErrorsNeverLeak(t *testing.T) {
	server, posts, _, _ := newTestServer(t, testPrincipal())
	posts.listErr = errors.New("connection refused: mongodb://internal-host:27017")

	_, err := server.getPosts(params(nil))
	if !errors.Is(err, models.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if strings.Contains(err.Error(), "mongodb") {
		t.Fatalf("raw database error leaked: %v", err)
	}
}

func TestGetAllUsersExcludesCaller(t *testing.T) {
	principal := testPrincipal()
	server, _, users, _ := newTestServer(t, principal)
	users.users = append(users.users, models.User{ID: primitive.NewObjectID(), Username: "bob"})

	res, err := server.getAllUsers(params(nil))
	if err != nil {
		t.Fatalf("getAllUsers failed: %v", err)
	}
	for _, u := range res.([]models.User) {
		if u.ID == principal.ID {
			t.Fatal("caller present in getAllUsers listing")
		}
	}
}
