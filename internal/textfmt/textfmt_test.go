package textfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		term string
		want []Segment
	}{
		{
			name: "case insensitive",
			text: "The Goblin king and a goblin",
			term: "GOBLIN",
			want: []Segment{
				{Text: "The "},
				{Text: "Goblin", Match: true},
				{Text: " king and a "},
				{Text: "goblin", Match: true},
			},
		},
		{
			name: "metacharacters are literal",
			text: "costs 5 (gp) or 5 gp",
			term: "(gp)",
			want: []Segment{
				{Text: "costs 5 "},
				{Text: "(gp)", Match: true},
				{Text: " or 5 gp"},
			},
		},
		{
			name: "no match",
			text: "quiet night",
			term: "dragon",
			want: []Segment{{Text: "quiet night"}},
		},
		{
			name: "blank term",
			text: "quiet night",
			term: "  ",
			want: []Segment{{Text: "quiet night"}},
		},
		{
			name: "empty text",
			text: "",
			term: "x",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Highlight(tt.text, tt.term))
		})
	}
}

func TestHashtags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"loot", "npc", "town-guard"}, Hashtags("#Loot from the #npc and the #town-guard, more #loot"))
	assert.Empty(t, Hashtags("no tags # here"))
}

func TestSplitHashtags(t *testing.T) {
	t.Parallel()

	got := SplitHashtags("met #Ilsa at dawn")
	assert.Equal(t, []Segment{
		{Text: "met "},
		{Text: "#Ilsa", Match: true},
		{Text: " at dawn"},
	}, got)

	assert.Equal(t, "met [#Ilsa] at dawn", Render(got, func(s string) string { return "[" + s + "]" }))
	assert.Equal(t, "met #ILSA at dawn", Render(got, strings.ToUpper))
	assert.Equal(t, "met #Ilsa at dawn", Render(got, nil))
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, Clamp(-3, 1, 20))
	assert.Equal(t, 20, Clamp(25, 1, 20))
	assert.Equal(t, 7, Clamp(7, 1, 20))
	assert.Equal(t, 5, Clamp(9, 5, 0))
	assert.InDelta(t, 0.5, Clamp(0.5, 0.0, 1.0), 1e-9)
}
