package postRepo

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FahriNazarudin/Frog/models"
)

// Raw document shapes. Tag and the timestamps are decoded untyped
// because old documents carry them in more than one shape: tag was an
// array before the schema changed to a scalar and the collection was
// never backfilled, and some timestamps were written as strings or
// epoch-zero dates by early client builds.
type postDoc struct {
	ID           primitive.ObjectID   `bson:"_id"`
	Content      string               `bson:"content"`
	Tag          interface{}          `bson:"tag"`
	ImgUrl       string               `bson:"imgUrl"`
	AuthorID     primitive.ObjectID   `bson:"authorId"`
	Comments     []commentDoc         `bson:"comments"`
	Likes        []likeDoc            `bson:"likes"`
	CreatedAt    interface{}          `bson:"createdAt"`
	UpdatedAt    interface{}          `bson:"updatedAt"`
	AuthorDetail *models.AuthorDetail `bson:"authorDetail"`
}

type commentDoc struct {
	Content   string      `bson:"content"`
	Username  string      `bson:"username"`
	CreatedAt interface{} `bson:"createdAt"`
	UpdatedAt interface{} `bson:"updatedAt"`
}

type likeDoc struct {
	Username  string      `bson:"username"`
	CreatedAt interface{} `bson:"createdAt"`
	UpdatedAt interface{} `bson:"updatedAt"`
}

// anything before this is a write bug, not a real date
var minValidDate = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

// normalizeTag collapses the historical tag shapes (absent, scalar,
// array of strings) into a single optional string: nil or the first
// non-empty element.
func normalizeTag(raw interface{}) *string {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil
		}
		return &v
	case primitive.A:
		return firstString(v)
	case []interface{}:
		return firstString(v)
	case []string:
		for _, s := range v {
			if s != "" {
				return &s
			}
		}
	}
	return nil
}

func firstString(arr []interface{}) *string {
	for _, el := range arr {
		if s, ok := el.(string); ok && s != "" {
			return &s
		}
	}
	return nil
}

// normalizeTime coerces whatever is stored into a usable timestamp.
// Missing, unparseable or pre-1990 values are treated as written now,
// the same rule the fix-dates maintenance script applies in place.
func normalizeTime(raw interface{}, now time.Time) time.Time {
	var t time.Time
	switch v := raw.(type) {
	case time.Time:
		t = v
	case primitive.DateTime:
		t = v.Time()
	case string:
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return now
		}
		t = parsed
	case int64:
		t = time.UnixMilli(v)
	default:
		return now
	}
	if t.Before(minValidDate) {
		return now
	}
	return t
}

func sanitizePost(doc postDoc, now time.Time) models.Post {
	post := models.Post{
		ID:           doc.ID,
		Content:      doc.Content,
		Tag:          normalizeTag(doc.Tag),
		ImgUrl:       doc.ImgUrl,
		AuthorID:     doc.AuthorID,
		Comments:     make([]models.Comment, 0, len(doc.Comments)),
		Likes:        make([]models.Like, 0, len(doc.Likes)),
		CreatedAt:    normalizeTime(doc.CreatedAt, now),
		UpdatedAt:    normalizeTime(doc.UpdatedAt, now),
		AuthorDetail: doc.AuthorDetail,
	}
	for _, c := range doc.Comments {
		post.Comments = append(post.Comments, models.Comment{
			Content:   c.Content,
			Username:  c.Username,
			CreatedAt: normalizeTime(c.CreatedAt, now),
			UpdatedAt: normalizeTime(c.UpdatedAt, now),
		})
	}
	for _, l := range doc.Likes {
		post.Likes = append(post.Likes, models.Like{
			Username:  l.Username,
			CreatedAt: normalizeTime(l.CreatedAt, now),
			UpdatedAt: normalizeTime(l.UpdatedAt, now),
		})
	}
	return post
}

// Newest first. Sorting happens after normalization so malformed
// timestamps cannot push a post to the bottom of the feed.
func sortPosts(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
