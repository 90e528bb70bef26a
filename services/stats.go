package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
)

// Stats aggregates row counts of every table.
type Stats struct {
	Users    int64 `json:"user_count"`
	Posts    int64 `json:"post_count"`
	Comments int64 `json:"comment_count"`
	Groups   int64 `json:"group_count"`
	Follows  int64 `json:"follow_count"`
}

// CountAll returns site wide counters.
func CountAll(ctx context.Context, db *gorm.DB) (Stats, error) {
	var st Stats
	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&models.User{}, &st.Users},
		{&models.Post{}, &st.Posts},
		{&models.Comment{}, &st.Comments},
		{&models.Group{}, &st.Groups},
		{&models.Follow{}, &st.Follows},
	}
	for _, c := range counts {
		if err := db.WithContext(ctx).Model(c.model).Count(c.dst).Error; err != nil {
			return st, err
		}
	}
	return st, nil
}
