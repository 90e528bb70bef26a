package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassifyConstraint(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want constraintKind
	}{
		{"nil", nil, constraintNone},
		{"mysql trigger", errors.New("Error 1644 (45000): check constraint follows_no_self violated"), constraintCheck},
		{"sqlite trigger", errors.New("CHECK constraint failed: follows_no_self"), constraintCheck},
		{"postgres check", errors.New(`ERROR: new row for relation "follows" violates check constraint "follows_no_self" (SQLSTATE 23514)`), constraintCheck},
		{"sqlite unique", errors.New("UNIQUE constraint failed: follows.follower_id, follows.followed_id"), constraintUnique},
		{"mysql duplicate", errors.New("Error 1062 (23000): Duplicate entry '1-2' for key 'follows.idx_follows_pair'"), constraintUnique},
		{"postgres duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "idx_follows_pair"`), constraintUnique},
		{"sqlite fk", errors.New("FOREIGN KEY constraint failed"), constraintForeignKey},
		{"gorm duplicated", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), constraintUnique},
		{"gorm fk", fmt.Errorf("create: %w", gorm.ErrForeignKeyViolated), constraintForeignKey},
		{"other", errors.New("connection refused"), constraintNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyConstraint(tc.err))
		})
	}
}
