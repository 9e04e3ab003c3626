package cachedRepo

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/FahriNazarudin/Frog/models"
	"github.com/FahriNazarudin/Frog/postRepo"
)

var ErrCacheMiss = errors.New("cache miss")

const (
	KeyAllPosts   = "posts:all"
	postKeyPrefix = "post:"
)

func PostKey(id string) string {
	return postKeyPrefix + id
}

// Cache is the advisory key-value capability injected in front of the
// post repository. Losing it never breaks a read, only freshness.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
	InvalidatePattern(ctx context.Context, pattern string) error
}

// CachedRepo decorates a PostRepo with read-through caching on the two
// logical queries (posts:all, post:<id>) and invalidates both on every
// successful write.
type CachedRepo struct {
	repo     postRepo.PostRepo
	cache    Cache
	postsTTL time.Duration
	postTTL  time.Duration
}

func NewCachedRepo(repo postRepo.PostRepo, cache Cache, postsTTL, postTTL time.Duration) *CachedRepo {
	return &CachedRepo{
		repo:     repo,
		cache:    cache,
		postsTTL: postsTTL,
		postTTL:  postTTL,
	}
}

func (c *CachedRepo) GetPosts(ctx context.Context, content string) ([]models.Post, error) {
	// only the full listing is cached, searches go straight through
	if content != "" {
		return c.repo.GetPosts(ctx, content)
	}

	data, err := c.cache.Get(ctx, KeyAllPosts)
	if err == nil {
		var posts []models.Post
		if err := json.Unmarshal(data, &posts); err == nil {
			return posts, nil
		}
		log.Println("Corrupt cache entry for posts listing, falling through")
	} else if !errors.Is(err, ErrCacheMiss) {
		log.Println("Error reading posts listing from cache: ", err.Error())
	}

	posts, err := c.repo.GetPosts(ctx, "")
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(posts); err == nil {
		if err := c.cache.Set(ctx, KeyAllPosts, data, c.postsTTL); err != nil {
			log.Println("Error caching posts listing: ", err.Error())
		}
	}
	return posts, nil
}

func (c *CachedRepo) GetPostByID(ctx context.Context, id string) (models.Post, error) {
	key := PostKey(id)

	data, err := c.cache.Get(ctx, key)
	if err == nil {
		var post models.Post
		if err := json.Unmarshal(data, &post); err == nil {
			return post, nil
		}
		log.Printf("Corrupt cache entry for post{%v}, falling through\n", id)
	} else if !errors.Is(err, ErrCacheMiss) {
		log.Printf("Error reading post{%v} from cache: %v\n", id, err.Error())
	}

	post, err := c.repo.GetPostByID(ctx, id)
	if err != nil {
		return models.Post{}, err
	}

	if data, err := json.Marshal(post); err == nil {
		if err := c.cache.Set(ctx, key, data, c.postTTL); err != nil {
			log.Printf("Error caching post{%v}: %v\n", id, err.Error())
		}
	}
	return post, nil
}

func (c *CachedRepo) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	created, err := c.repo.CreatePost(ctx, post)
	if err != nil {
		return models.Post{}, err
	}
	c.invalidate(ctx, KeyAllPosts, PostKey(created.ID.Hex()))
	return created, nil
}

func (c *CachedRepo) CreateComment(ctx context.Context, postID string, comment models.Comment) error {
	if err := c.repo.CreateComment(ctx, postID, comment); err != nil {
		return err
	}
	c.invalidate(ctx, KeyAllPosts, PostKey(postID))
	return nil
}

func (c *CachedRepo) CreateLike(ctx context.Context, postID, username string) error {
	if err := c.repo.CreateLike(ctx, postID, username); err != nil {
		return err
	}
	c.invalidate(ctx, KeyAllPosts, PostKey(postID))
	return nil
}

func (c *CachedRepo) DeleteLike(ctx context.Context, postID, username string) error {
	if err := c.repo.DeleteLike(ctx, postID, username); err != nil {
		return err
	}
	c.invalidate(ctx, KeyAllPosts, PostKey(postID))
	return nil
}

// in case of cache failing here there will be a freshness window until
// the TTL runs out. a background process could retry failed
// invalidations, for now just log the error
func (c *CachedRepo) invalidate(ctx context.Context, keys ...string) {
	if err := c.cache.Invalidate(ctx, keys...); err != nil {
		log.Printf("Failed to invalidate cache keys %v: %v\n", keys, err.Error())
	}
}
