package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTags(t *testing.T) {
	assert.Equal(t, "plain", StripTags("plain"))
	assert.Equal(t, "bold text", StripTags("<b>bold</b> text"))
	assert.Equal(t, "a b", StripTags("a&nbsp;b"))
	assert.Equal(t, "nested", StripTags("<div><span>nested</span></div>"))
	assert.Equal(t, "", StripTags("  <p>&nbsp;</p>  "))
	assert.Equal(t, "trimmed", StripTags("\n  trimmed \t"))
}
