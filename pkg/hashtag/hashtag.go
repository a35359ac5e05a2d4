// Package hashtag finds #tags in feed text.
package hashtag

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const marker = '#'

// Segment is a run of feed text, Text of a hashtag segment includes the
// leading '#'
type Segment struct {
	Text    string
	Hashtag bool
}

// Tag returns the tag name without '#', empty for plain text
func (s Segment) Tag() string {
	if !s.Hashtag {
		return ""
	}
	return strings.TrimPrefix(s.Text, string(marker))
}

func tagRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// Split cuts content into plain and hashtag segments. Joining the Text of
// every segment gives back the NFC form of content. A hashtag starts with
// '#' at the beginning or after white space and runs over letters, digits,
// marks and '_'; a lone '#' is plain text.
func Split(content string) []Segment {
	content = norm.NFC.String(content)

	var segments []Segment
	start := 0 // start of the pending plain run
	prev := ' '
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRuneInString(content[i:])
		if r != marker || !unicode.IsSpace(prev) {
			prev = r
			i += size
			continue
		}

		end := i + size
		for end < len(content) {
			tr, ts := utf8.DecodeRuneInString(content[end:])
			if !tagRune(tr) {
				break
			}
			end += ts
		}
		if end == i+size {
			prev = r
			i += size
			continue
		}

		if start < i {
			segments = append(segments, Segment{Text: content[start:i]})
		}
		segments = append(segments, Segment{Text: content[i:end], Hashtag: true})
		start = end
		i = end
		prev, _ = utf8.DecodeLastRuneInString(content[:end])
	}
	if start < len(content) {
		segments = append(segments, Segment{Text: content[start:]})
	}
	return segments
}

// Tags lists the distinct tag names of content in order of appearance
func Tags(content string) []string {
	var (
		tags []string
		seen = map[string]bool{}
	)
	for _, s := range Split(content) {
		if !s.Hashtag || seen[s.Tag()] {
			continue
		}
		seen[s.Tag()] = true
		tags = append(tags, s.Tag())
	}
	return tags
}
