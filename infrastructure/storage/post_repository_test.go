package storage

import (
	"context"
	"forum-lab/domain"
	"forum-lab/domain/search"
	"forum-lab/errors"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func newPost(room domain.ChannelKey, author, content string, at time.Time) domain.Post {
	return domain.Post{
		ID:        uuid.NewString(),
		Room:      room,
		AuthorID:  author,
		Content:   content,
		CreatedAt: at,
	}
}

func Test_Store_And_Get_Sorted_Posts(t *testing.T) {
	req := require.New(t)
	repository := NewPostRepository(openTestDB(t), openTestIndex(t), slog.Default(), nil)
	room := domain.ChannelKey("room-1")
	at := time.Now().UTC()
	posts := []domain.Post{
		newPost(room, "alice", "first", at),
		newPost(room, "bob", "second", at.Add(time.Minute)),
		newPost(room, "clara", "third", at.Add(2*time.Minute)),
	}
	for _, p := range posts {
		req.NoError(repository.StorePost(p))
	}
	// Another room must stay invisible
	req.NoError(repository.StorePost(newPost("room-2", "dan", "elsewhere", at)))

	// When fetching posts
	fetched, _, err := repository.GetPosts(room, nil)
	req.NoError(err)

	// Then they come newest first
	expected := make([]domain.Post, len(posts))
	copy(expected, posts)
	sort.Slice(expected, func(i, j int) bool {
		return expected[i].CreatedAt.After(expected[j].CreatedAt)
	})
	req.Equal(expected, fetched)
}

func Test_Get_Posts_With_Limit_And_Cursor(t *testing.T) {
	req := require.New(t)
	repository := NewPostRepository(openTestDB(t), openTestIndex(t), slog.Default(), lo.ToPtr(2))
	room := domain.ChannelKey("room-1")
	at := time.Now().UTC()
	for i := range 5 {
		req.NoError(repository.StorePost(newPost(room, "alice", "content", at.Add(time.Duration(i)*time.Second))))
	}

	firstPage, cursor, err := repository.GetPosts(room, nil)
	req.NoError(err)
	req.Len(firstPage, 2)
	req.NotNil(cursor)

	secondPage, cursor, err := repository.GetPosts(room, cursor)
	req.NoError(err)
	req.Len(secondPage, 2)
	req.True(secondPage[0].CreatedAt.Before(firstPage[1].CreatedAt))

	lastPage, _, err := repository.GetPosts(room, cursor)
	req.NoError(err)
	req.Len(lastPage, 1)
}

func Test_Get_Post_By_ID(t *testing.T) {
	req := require.New(t)
	repository := NewPostRepository(openTestDB(t), openTestIndex(t), slog.Default(), nil)
	post := newPost("room-1", "alice", "hello", time.Now().UTC())
	post.ParentID = uuid.NewString()
	req.NoError(repository.StorePost(post))

	fetched, err := repository.GetPost(post.ID)
	req.NoError(err)
	req.Equal(post, fetched)
	req.True(fetched.IsReply())

	_, err = repository.GetPost("missing")
	req.ErrorIs(err, errors.ErrPostNotFound)
}

func Test_Search_Posts_In_Room(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewPostRepository(openTestDB(t), openTestIndex(t), slog.Default(), nil)
	at := time.Now().UTC()
	match := newPost("room-1", "alice", "the release notes are out", at)
	req.NoError(repository.StorePost(match))
	req.NoError(repository.StorePost(newPost("room-1", "bob", "lunch anyone", at)))
	req.NoError(repository.StorePost(newPost("room-2", "clara", "release party tonight", at)))

	posts, total, err := repository.SearchPosts(ctx, search.NewSearchQuery("room-1", "release"))
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Len(posts, 1)
	req.Equal(match.ID, posts[0].ID)

	posts, total, err = repository.SearchPosts(ctx, search.NewSearchQuery("room-1", "--limit 3"))
	req.NoError(err)
	req.Zero(total)
	req.Empty(posts)
}

func Test_Delete_Posts_Of_Room(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewPostRepository(openTestDB(t), openTestIndex(t), slog.Default(), nil)
	at := time.Now().UTC()

	// Given a room with a post and a reply, next to another room
	post := newPost("room-1", "alice", "release checklist", at)
	reply := newPost("room-1", "bob", "release is green", at.Add(time.Second))
	reply.ParentID = post.ID
	kept := newPost("room-2", "clara", "release party", at)
	for _, p := range []domain.Post{post, reply, kept} {
		req.NoError(repository.StorePost(p))
	}

	// When
	deleted, err := repository.DeletePosts("room-1")

	// Then the room is empty everywhere
	req.NoError(err)
	req.Equal(2, deleted)
	posts, _, err := repository.GetPosts("room-1", nil)
	req.NoError(err)
	req.Empty(posts)
	_, err = repository.GetPost(post.ID)
	req.ErrorIs(err, errors.ErrPostNotFound)
	_, total, err := repository.SearchPosts(ctx, search.NewSearchQuery("room-1", "release"))
	req.NoError(err)
	req.Zero(total)

	// And the other room is untouched
	fetched, err := repository.GetPost(kept.ID)
	req.NoError(err)
	req.Equal(kept, fetched)

	deleted, err = repository.DeletePosts("room-1")
	req.NoError(err)
	req.Zero(deleted)
}
