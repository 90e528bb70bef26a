package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
)

// FollowGraph maintains directed follow edges between users. Uniqueness and the
// no-self-follow rule are enforced by the follows table; this type only
// translates the database verdict.
type FollowGraph struct {
	db *gorm.DB
}

// NewFollowGraph creates a FollowGraph.
func NewFollowGraph(db *gorm.DB) *FollowGraph {
	return &FollowGraph{db: db}
}

// Follow creates the edge followerID -> followedID.
func (g *FollowGraph) Follow(ctx context.Context, followerID, followedID uint) error {
	edge := models.Follow{FollowerID: followerID, FollowedID: followedID}
	err := g.db.WithContext(ctx).Create(&edge).Error
	switch classifyConstraint(err) {
	case constraintNone:
		if err != nil {
			return fmt.Errorf("create follow: %w", err)
		}
		return nil
	case constraintCheck:
		return ErrInvalidOperation
	case constraintUnique:
		return ErrAlreadyExists
	case constraintForeignKey:
		return ErrNotFound
	}
	return err
}

// Unfollow removes the edge if present. Missing edges are not an error.
func (g *FollowGraph) Unfollow(ctx context.Context, followerID, followedID uint) error {
	err := g.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

// IsFollowing reports whether followerID follows followedID.
func (g *FollowGraph) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowedIDs returns every user id that userID follows, ascending.
func (g *FollowGraph) FollowedIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := g.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Order("followed_id").
		Pluck("followed_id", &ids).Error
	return ids, err
}

// FollowCounts holds both directions of a user's follow graph.
type FollowCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// Counts returns how many users follow userID and how many userID follows.
func (g *FollowGraph) Counts(ctx context.Context, userID uint) (FollowCounts, error) {
	var c FollowCounts
	db := g.db.WithContext(ctx).Model(&models.Follow{})
	if err := db.Session(&gorm.Session{}).Where("followed_id = ?", userID).Count(&c.Followers).Error; err != nil {
		return c, err
	}
	if err := db.Session(&gorm.Session{}).Where("follower_id = ?", userID).Count(&c.Following).Error; err != nil {
		return c, err
	}
	return c, nil
}

// followedSubquery selects the ids userID follows, for use inside IN (?).
func (g *FollowGraph) followedSubquery(ctx context.Context, userID uint) *gorm.DB {
	return g.db.WithContext(ctx).Model(&models.Follow{}).
		Select("followed_id").
		Where("follower_id = ?", userID)
}
