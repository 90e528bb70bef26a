package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringPreviews(t *testing.T) {
	assert.Equal(t, "Cats", Group{Title: "Cats", Slug: "cats"}.String())
	assert.Equal(t, "short", Post{Text: "short"}.String())
	assert.Equal(t, "exactly fifteen", Post{Text: "exactly fifteen"}.String())
	assert.Equal(t, "a longer text t", Post{Text: "a longer text that is cut"}.String())
	assert.Equal(t, "Привет, как дел", Comment{Text: "Привет, как дела?"}.String())
}

func TestAllListsEveryModel(t *testing.T) {
	assert.Len(t, All(), 5)
}
