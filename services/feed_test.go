package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/testutil"
	"github.com/cppla/yatube/utils"
)

func texts(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Text
	}
	return out
}

func TestFeedContainsOnlyFollowedAuthorsNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	graph := NewFollowGraph(db)
	feed := NewFeed(db, graph)

	reader := testutil.CreateUser(t, db, "reader")
	b := testutil.CreateUser(t, db, "bob")
	c := testutil.CreateUser(t, db, "carol")
	stranger := testutil.CreateUser(t, db, "stranger")

	testutil.CreatePost(t, db, b, "b1", nil)
	testutil.CreatePost(t, db, stranger, "s1", nil)
	testutil.CreatePost(t, db, c, "c1", nil)
	testutil.CreatePost(t, db, reader, "mine", nil)
	testutil.CreatePost(t, db, b, "b2", nil)

	posts, err := feed.For(ctx, reader.ID)
	require.NoError(t, err)
	assert.Empty(t, posts, "nobody followed yet")

	require.NoError(t, graph.Follow(ctx, reader.ID, b.ID))
	require.NoError(t, graph.Follow(ctx, reader.ID, c.ID))

	posts, err = feed.For(ctx, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b2", "c1", "b1"}, texts(posts))
	assert.Equal(t, "bob", posts[0].Author.Username)

	require.NoError(t, graph.Unfollow(ctx, reader.ID, b.ID))
	posts, err = feed.For(ctx, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, texts(posts))
}

func TestFeedTiesBrokenByID(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	graph := NewFollowGraph(db)
	feed := NewFeed(db, graph)

	reader := testutil.CreateUser(t, db, "reader")
	author := testutil.CreateUser(t, db, "author")
	first := testutil.CreatePost(t, db, author, "first", nil)
	second := testutil.CreatePost(t, db, author, "second", nil)
	require.NoError(t, db.Model(&models.Post{}).Where("id IN ?", []uint{first.ID, second.ID}).
		Update("created_at", first.CreatedAt).Error)
	require.NoError(t, graph.Follow(ctx, reader.ID, author.ID))

	posts, err := feed.For(ctx, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, texts(posts))
}

func TestFeedQueryPaginates(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	graph := NewFollowGraph(db)
	feed := NewFeed(db, graph)

	reader := testutil.CreateUser(t, db, "reader")
	author := testutil.CreateUser(t, db, "author")
	for i := 0; i < 13; i++ {
		testutil.CreatePost(t, db, author, "post", nil)
	}
	require.NoError(t, graph.Follow(ctx, reader.ID, author.ID))

	page, err := utils.Paginate[models.Post](feed.Query(ctx, reader.ID), "2", utils.PostsPerPage, PostPreloads...)
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, int64(13), page.Pagination.Total)
	assert.Equal(t, "author", page.Items[0].Author.Username)
}
