// Package textfmt splits free text into display segments for search
// highlighting and hashtag rendering.
package textfmt

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
)

type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text around case-insensitive occurrences of term. The term is
// matched literally.
func Highlight(text, term string) []Segment {
	term = strings.TrimSpace(term)
	if term == "" || text == "" {
		return plain(text)
	}

	pattern := regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
	return split(text, pattern.FindAllStringIndex(text, -1))
}

var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_-]+`)

// Hashtags returns the distinct tags in text, lower-cased and without the leading '#',
// in order of first appearance.
func Hashtags(text string) []string {
	var tags []string
	for _, match := range hashtagPattern.FindAllString(text, -1) {
		tag := strings.ToLower(strings.TrimPrefix(match, "#"))
		if !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

// SplitHashtags segments text so that every #tag is its own matching segment.
func SplitHashtags(text string) []Segment {
	return split(text, hashtagPattern.FindAllStringIndex(text, -1))
}

// Render joins segments, passing matches through mark.
func Render(segments []Segment, mark func(string) string) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Match && mark != nil {
			b.WriteString(mark(s.Text))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// Clamp bounds v to [lo, hi]. Swapped bounds are put back in order.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if lo > hi {
		lo, hi = hi, lo
	}
	return min(max(v, lo), hi)
}

func split(text string, matches [][]int) []Segment {
	if len(matches) == 0 {
		return plain(text)
	}

	segments := make([]Segment, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, Segment{Text: text[last:m[0]]})
		}
		segments = append(segments, Segment{Text: text[m[0]:m[1]], Match: true})
		last = m[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

func plain(text string) []Segment {
	if text == "" {
		return nil
	}
	return []Segment{{Text: text}}
}
