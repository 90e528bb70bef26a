package services

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
)

var (
	// ErrNotFound means a referenced post, group or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied means the caller lacks the relationship the write requires.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidOperation is returned for a self-follow.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrAlreadyExists is returned when a follow edge is already present.
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError carries per-field messages for a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type constraintKind int

const (
	constraintNone constraintKind = iota
	constraintUnique
	constraintCheck
	constraintForeignKey
)

// classifyConstraint recognizes constraint violations reported by mysql,
// postgres and sqlite.
func classifyConstraint(err error) constraintKind {
	if err == nil {
		return constraintNone
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return constraintUnique
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return constraintForeignKey
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, models.NoSelfFollow), strings.Contains(msg, "check constraint"):
		// sqlite trigger: "CHECK constraint failed", mysql trigger: SQLSTATE 45000 "check constraint ... violated",
		// postgres: "violates check constraint"
		return constraintCheck
	case strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "duplicate entry"),
		strings.Contains(msg, "duplicate key"):
		return constraintUnique
	case strings.Contains(msg, "foreign key"):
		return constraintForeignKey
	}
	return constraintNone
}
