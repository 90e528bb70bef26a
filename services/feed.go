package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
)

// newestFirst is the total order of every post listing.
const newestFirst = "posts.created_at DESC, posts.id DESC"

// Feed assembles the personalized post stream of a user.
type Feed struct {
	db    *gorm.DB
	graph *FollowGraph
}

// NewFeed creates a Feed over graph.
func NewFeed(db *gorm.DB, graph *FollowGraph) *Feed {
	return &Feed{db: db, graph: graph}
}

// Query returns posts authored by anyone userID follows, newest first. The
// result is unpaginated; callers hand it to utils.Paginate.
func (f *Feed) Query(ctx context.Context, userID uint) *gorm.DB {
	return f.db.WithContext(ctx).Model(&models.Post{}).
		Where("posts.author_id IN (?)", f.graph.followedSubquery(ctx, userID)).
		Order(newestFirst)
}

// For materializes the whole feed of userID.
func (f *Feed) For(ctx context.Context, userID uint) ([]models.Post, error) {
	posts := []models.Post{}
	err := f.Query(ctx, userID).Preload("Author").Preload("Group").Find(&posts).Error
	return posts, err
}
