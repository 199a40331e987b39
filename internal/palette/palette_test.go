package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JonMunkholm/KosherDir/internal/core"
)

func TestHex(t *testing.T) {
	assert.Equal(t, "#2563eb", Hex("blue-600"))
	assert.Equal(t, Fallback, Hex("teal-900"))
	assert.Equal(t, Fallback, Hex(""))
}

func TestEveryClassifierColorIsKnown(t *testing.T) {
	tokens := map[string]bool{}
	for _, tok := range Tokens() {
		tokens[tok] = true
	}

	for _, c := range append(core.Categories(), core.CategoryUnknown) {
		assert.True(t, tokens[c.BadgeColor()], "category %s color %s", c, c.BadgeColor())
	}

	tags := []string{
		"קייטרינג בשרי", "קייטרינג חלבי", "מסעדות ומזנונים", "מסעדה חלבית", "אולמות",
		"ישיבות ומוסדות", "מעדניות", "בתי מלון", "בתי אבות", "עיצובי פירות וקינוחים", "אחר",
	}
	for _, tag := range tags {
		color := core.ActivityColor(tag)
		assert.True(t, tokens[color], "tag %s color %s", tag, color)
	}
}

func TestTokensSorted(t *testing.T) {
	toks := Tokens()
	assert.IsIncreasing(t, toks)
}
