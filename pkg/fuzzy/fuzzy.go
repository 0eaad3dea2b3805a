package fuzzy

import (
	"strings"
	"unicode"
)

// Field is one searchable piece of text and how much a hit on it counts.
type Field struct {
	Text   string
	Weight float64
}

// LevenshteinDistance is the number of single-rune edits between a and b,
// compared case-insensitively.
func LevenshteinDistance(a, b string) int {
	ra := []rune(normalize(a))
	rb := []rune(normalize(b))
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Threshold is the edit distance tolerated for a query of the given length.
func Threshold(query string) int {
	n := len([]rune(normalize(query)))
	switch {
	case n <= 3:
		return 0
	case n <= 6:
		return 1
	default:
		return 2
	}
}

// Match reports whether query appears in text, allowing typos per word.
func Match(query, text string) bool {
	return wordScore(normalize(query), normalize(text)) > 0
}

// Score ranks fields against query; zero means no field matched.
// Exact substring hits score above prefix hits, which score above typo matches.
func Score(query string, fields ...Field) float64 {
	q := normalize(query)
	if q == "" {
		return 0
	}

	var total float64
	for _, f := range fields {
		total += wordScore(q, normalize(f.Text)) * f.Weight
	}
	return total
}

func wordScore(q, text string) float64 {
	if q == "" || text == "" {
		return 0
	}
	if strings.Contains(text, q) {
		return 1
	}

	best := 0.0
	limit := Threshold(q)
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, q) && best < 0.8 {
			best = 0.8
			continue
		}
		if limit == 0 {
			continue
		}
		if d := LevenshteinDistance(q, word); d <= limit {
			s := 0.6 - 0.1*float64(d)
			if s > best {
				best = s
			}
		}
	}
	return best
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return ' '
		}
		return r
	}, s)
}
