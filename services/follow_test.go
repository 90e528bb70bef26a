package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/testutil"
)

type FollowGraphTestSuite struct {
	suite.Suite
	ctx   context.Context
	db    *gorm.DB
	graph *FollowGraph
	a, b  *models.User
}

func TestFollowGraphSuite(t *testing.T) {
	suite.Run(t, new(FollowGraphTestSuite))
}

func (s *FollowGraphTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewDB(s.T())
	s.graph = NewFollowGraph(s.db)
	s.a = testutil.CreateUser(s.T(), s.db, "alice")
	s.b = testutil.CreateUser(s.T(), s.db, "bob")
}

func (s *FollowGraphTestSuite) edges() int64 {
	var n int64
	require.NoError(s.T(), s.db.Model(&models.Follow{}).Count(&n).Error)
	return n
}

func (s *FollowGraphTestSuite) TestFollowThenIsFollowing() {
	s.Require().NoError(s.graph.Follow(s.ctx, s.a.ID, s.b.ID))

	ok, err := s.graph.IsFollowing(s.ctx, s.a.ID, s.b.ID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.graph.IsFollowing(s.ctx, s.b.ID, s.a.ID)
	s.Require().NoError(err)
	s.False(ok, "edges are directed")
}

func (s *FollowGraphTestSuite) TestSelfFollowRejected() {
	err := s.graph.Follow(s.ctx, s.a.ID, s.a.ID)
	s.ErrorIs(err, ErrInvalidOperation)
	s.Equal(int64(0), s.edges())
}

func (s *FollowGraphTestSuite) TestDoubleFollowKeepsOneEdge() {
	s.Require().NoError(s.graph.Follow(s.ctx, s.a.ID, s.b.ID))
	err := s.graph.Follow(s.ctx, s.a.ID, s.b.ID)
	s.ErrorIs(err, ErrAlreadyExists)
	s.Equal(int64(1), s.edges())
}

func (s *FollowGraphTestSuite) TestFollowUnknownUser() {
	err := s.graph.Follow(s.ctx, s.a.ID, 9999)
	s.ErrorIs(err, ErrNotFound)
}

func (s *FollowGraphTestSuite) TestUnfollow() {
	s.Require().NoError(s.graph.Follow(s.ctx, s.a.ID, s.b.ID))
	s.Require().NoError(s.graph.Unfollow(s.ctx, s.a.ID, s.b.ID))

	ok, err := s.graph.IsFollowing(s.ctx, s.a.ID, s.b.ID)
	s.Require().NoError(err)
	s.False(ok)

	// absent edge is a no-op
	s.NoError(s.graph.Unfollow(s.ctx, s.a.ID, s.b.ID))
	s.Equal(int64(0), s.edges())
}

func (s *FollowGraphTestSuite) TestFollowedIDsAndCounts() {
	c := testutil.CreateUser(s.T(), s.db, "carol")
	s.Require().NoError(s.graph.Follow(s.ctx, s.a.ID, c.ID))
	s.Require().NoError(s.graph.Follow(s.ctx, s.a.ID, s.b.ID))
	s.Require().NoError(s.graph.Follow(s.ctx, c.ID, s.b.ID))

	ids, err := s.graph.FollowedIDs(s.ctx, s.a.ID)
	s.Require().NoError(err)
	s.Equal([]uint{s.b.ID, c.ID}, ids)

	ids, err = s.graph.FollowedIDs(s.ctx, s.b.ID)
	s.Require().NoError(err)
	s.Empty(ids)

	counts, err := s.graph.Counts(s.ctx, s.b.ID)
	s.Require().NoError(err)
	s.Equal(FollowCounts{Followers: 2, Following: 0}, counts)

	counts, err = s.graph.Counts(s.ctx, s.a.ID)
	s.Require().NoError(err)
	s.Equal(FollowCounts{Followers: 0, Following: 2}, counts)
}

func (s *FollowGraphTestSuite) TestEdgesCascadeWithUser() {
	s.Require().NoError(s.graph.Follow(s.ctx, s.a.ID, s.b.ID))
	s.Require().NoError(s.db.Delete(&models.User{}, s.b.ID).Error)
	s.Equal(int64(0), s.edges())
}
