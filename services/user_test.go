package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/yatube/testutil"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := NewUserService(db)

	u, err := svc.Register(ctx, RegisterForm{Username: "leo", Email: "leo@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	_, err = svc.Register(ctx, RegisterForm{Username: "leo", Password: "secret2"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "username")

	_, err = svc.Register(ctx, RegisterForm{Username: "x", Email: "nope", Password: "1"})
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 3)

	got, err := svc.Authenticate(ctx, "leo", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "leo", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = svc.Authenticate(ctx, "ghost", "secret1")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.ByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountAll(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	a := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateUser(t, db, "bob")
	testutil.CreateGroup(t, db, "g")
	testutil.CreatePost(t, db, a, "p", nil)
	require.NoError(t, NewFollowGraph(db).Follow(ctx, a.ID, b.ID))

	st, err := CountAll(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, Stats{Users: 2, Posts: 1, Comments: 0, Groups: 1, Follows: 1}, st)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"text": "required", "group": "bad"}}
	assert.Equal(t, "validation failed: group: bad; text: required", err.Error())
}
