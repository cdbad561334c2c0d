//go:generate go run go.uber.org/mock/mockgen -source=post_repository.go -destination=../../mocks/mock_post_repository.go -package=mocks
package storage

import (
	"context"
	stderrors "errors"
	"fmt"
	"forum-lab/domain"
	"forum-lab/domain/search"
	"forum-lab/errors"
	"log/slog"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

type IPostRepository interface {
	StorePost(post domain.Post) error
	GetPost(id string) (domain.Post, error)
	GetPosts(room domain.ChannelKey, cursor *string) ([]domain.Post, *string, error)
	SearchPosts(ctx context.Context, query search.Query) ([]domain.Post, uint64, error)
	DeletePosts(room domain.ChannelKey) (int, error)
}

type PostRepository struct {
	db          *badger.DB
	blugeWriter *bluge.Writer
	log         *slog.Logger
	limitPosts  *int
}

func NewPostRepository(db *badger.DB, blugeWriter *bluge.Writer, log *slog.Logger, limitPosts *int) PostRepository {
	return PostRepository{db: db, blugeWriter: blugeWriter, log: log, limitPosts: limitPosts}
}

type diskPost struct {
	ID           string    `json:"id"`
	Room         string    `json:"room"`
	AuthorID     string    `json:"author_id"`
	ParentID     string    `json:"parent_id,omitempty"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"image_url,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Lang         string    `json:"lang,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func postPrefix(room domain.ChannelKey) string {
	return fmt.Sprintf("post:%s:", room)
}

func postIDKey(id string) []byte {
	return []byte("postid:" + id)
}

// StorePost persists a post in BadgerDB and indexes its content in Bluge.
// The key is formatted as "post:{room_id}:{timestamp_padded}:{id}" so a
// prefix scan returns the posts of a room in chronological order, the id
// breaking ties between posts created at the same nanosecond.
// A secondary "postid:{id}" entry points back to the main key.
func (p PostRepository) StorePost(post domain.Post) error {
	key := []byte(postPrefix(post.Room) + padTime(post.CreatedAt) + ":" + post.ID)
	err := p.db.Update(func(txn *badger.Txn) error {
		if err := setJSON(txn, key, fromPost(post)); err != nil {
			return err
		}
		return txn.Set(postIDKey(post.ID), key)
	})
	if err != nil {
		return fmt.Errorf("store post %s: %w", post.ID, err)
	}

	doc := bluge.NewDocument(post.ID).
		AddField(bluge.NewTextField("content", post.Content).StoreValue()).
		AddField(bluge.NewKeywordField("room", string(post.Room)).StoreValue()).
		AddField(bluge.NewDateTimeField("created_at", post.CreatedAt).StoreValue())
	if err = p.blugeWriter.Update(doc.ID(), doc); err != nil {
		// The post is stored; only search is degraded.
		p.log.Warn("Failed to index post", "post_id", post.ID, "error", err)
	}
	return nil
}

func (p PostRepository) GetPost(id string) (domain.Post, error) {
	var disk diskPost
	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(postIDKey(id))
		if err != nil {
			return err
		}
		key, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return getJSON(txn, key, &disk)
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Post{}, errors.ErrPostNotFound
	}
	if err != nil {
		return domain.Post{}, fmt.Errorf("get post %s: %w", id, err)
	}
	return toPost(disk), nil
}

// GetPosts returns the posts of a room, newest first, starting right after the cursor.
// It stops once limitPosts is reached and returns the cursor of the last post read.
func (p PostRepository) GetPosts(room domain.ChannelKey, cursor *string) ([]domain.Post, *string, error) {
	var posts []domain.Post
	var lastKey string
	err := p.db.View(func(txn *badger.Txn) error {
		prefixStr := postPrefix(room)
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			seekKey = append([]byte(prefixStr), []byte(maxTimestamp)...)
		default:
			seekKey = append([]byte(prefixStr), []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if p.limitPosts != nil && len(posts) == *p.limitPosts {
				p.log.Debug(fmt.Sprintf("Maximum of %d posts reached", *p.limitPosts))
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefix):])
			var disk diskPost
			if err := item.Value(func(val []byte) error {
				return decode(val, &disk)
			}); err != nil {
				return err
			}
			posts = append(posts, toPost(disk))
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("get posts of %s: %w", room, err)
	}
	return posts, &lastKey, nil
}

// SearchPosts runs a full-text match on the content of a room's posts and
// loads the matching posts from BadgerDB, best match first.
func (p PostRepository) SearchPosts(ctx context.Context, query search.Query) ([]domain.Post, uint64, error) {
	if query.IsEmpty() {
		return nil, 0, nil
	}
	reader, err := p.blugeWriter.Reader()
	if err != nil {
		return nil, 0, fmt.Errorf("open bluge reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	q := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(query.Terms).SetField("content")).
		AddMust(bluge.NewTermQuery(string(query.RoomID)).SetField("room"))
	request := bluge.NewTopNSearch(query.Limit, q).WithStandardAggregations()

	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, 0, fmt.Errorf("search posts: %w", err)
	}

	var ids []string
	match, err := iterator.Next()
	for err == nil && match != nil {
		if visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				ids = append(ids, string(value))
				return false
			}
			return true
		}); visitErr != nil {
			return nil, 0, visitErr
		}
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, 0, fmt.Errorf("iterate search results: %w", err)
	}

	posts := lo.FilterMap(ids, func(id string, _ int) (domain.Post, bool) {
		post, getErr := p.GetPost(id)
		if getErr != nil {
			p.log.Debug("Indexed post missing from store", "post_id", id, "error", getErr)
			return domain.Post{}, false
		}
		return post, true
	})
	return posts, iterator.Aggregations().Count(), nil
}

// DeletePosts removes every post and reply of a room from BadgerDB and from
// the search index, and returns how many were removed.
func (p PostRepository) DeletePosts(room domain.ChannelKey) (int, error) {
	var keys [][]byte
	var ids []string
	err := p.db.View(func(txn *badger.Txn) error {
		prefix := postPrefix(room)
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		options.Prefix = []byte(prefix)
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().KeyCopy(nil)
			keys = append(keys, key)
			// {timestamp_padded}:{id}
			ids = append(ids, string(key[len(prefix)+len(maxTimestamp)+1:]))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan posts of %s: %w", room, err)
	}

	wb := p.db.NewWriteBatch()
	defer wb.Cancel()
	for i, key := range keys {
		if err = wb.Delete(key); err != nil {
			return 0, fmt.Errorf("delete posts of %s: %w", room, err)
		}
		if err = wb.Delete(postIDKey(ids[i])); err != nil {
			return 0, fmt.Errorf("delete posts of %s: %w", room, err)
		}
	}
	if err = wb.Flush(); err != nil {
		return 0, fmt.Errorf("delete posts of %s: %w", room, err)
	}

	batch := bluge.NewBatch()
	for _, id := range ids {
		batch.Delete(bluge.Identifier(id))
	}
	if err = p.blugeWriter.Batch(batch); err != nil {
		// Search already skips posts missing from the store.
		p.log.Warn("Failed to unindex posts", "room_id", room, "posts", len(ids), "error", err)
	}
	return len(ids), nil
}

func fromPost(post domain.Post) diskPost {
	return diskPost{
		ID:           post.ID,
		Room:         string(post.Room),
		AuthorID:     post.AuthorID,
		ParentID:     post.ParentID,
		Content:      post.Content,
		ImageURL:     post.ImageURL,
		ThumbnailURL: post.ThumbnailURL,
		Lang:         post.Lang,
		CreatedAt:    post.CreatedAt,
	}
}

func toPost(disk diskPost) domain.Post {
	return domain.Post{
		ID:           disk.ID,
		Room:         domain.ChannelKey(disk.Room),
		AuthorID:     disk.AuthorID,
		ParentID:     disk.ParentID,
		Content:      disk.Content,
		ImageURL:     disk.ImageURL,
		ThumbnailURL: disk.ThumbnailURL,
		Lang:         disk.Lang,
		CreatedAt:    disk.CreatedAt.UTC(),
	}
}
