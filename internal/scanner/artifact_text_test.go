package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddedLineNumbers(t *testing.T) {
	oldText := "alpha\nbeta\ngamma\n"
	newText := "alpha\ninserted\nbeta\ngamma\ntrailing\n"

	added := addedLineNumbers(oldText, newText)
	assert.Equal(t, map[int]struct{}{2: {}, 5: {}}, added)
}

func TestAddedLineNumbers_NoChange(t *testing.T) {
	text := "alpha\nbeta\n"
	assert.Empty(t, addedLineNumbers(text, text))
}

func TestAddedLineNumbers_RemovalOnly(t *testing.T) {
	oldText := "alpha\nbeta\ngamma\n"
	newText := "alpha\ngamma\n"
	assert.Empty(t, addedLineNumbers(oldText, newText))
}

func TestAddedLineNumbers_EmptyOldSide(t *testing.T) {
	added := addedLineNumbers("", "one\ntwo\n")
	assert.Equal(t, map[int]struct{}{1: {}, 2: {}}, added)
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, countLines(""))
	assert.Equal(t, 1, countLines("no newline"))
	assert.Equal(t, 2, countLines("a\nb\n"))
	assert.Equal(t, 2, countLines("a\nb"))
}
