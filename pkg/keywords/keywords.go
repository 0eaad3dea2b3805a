// Package keywords tallies the most frequent words across headline titles.
package keywords

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// MinWordLength excludes short filler words; only words longer than 3 runes count.
	MinWordLength = 4
	DefaultLimit  = 6
)

type Count struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Top returns the limit most frequent words in texts. Words are lowercased and
// split on whitespace; ties keep the order in which words first appeared.
func Top(texts []string, limit int) []Count {
	if limit <= 0 {
		limit = DefaultLimit
	}

	index := make(map[string]int)
	var counts []Count
	for _, text := range texts {
		for _, word := range strings.Fields(strings.ToLower(text)) {
			if utf8.RuneCountInString(word) < MinWordLength {
				continue
			}
			if i, ok := index[word]; ok {
				counts[i].Count++
				continue
			}
			index[word] = len(counts)
			counts = append(counts, Count{Word: word, Count: 1})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if len(counts) > limit {
		counts = counts[:limit]
	}
	if counts == nil {
		return []Count{}
	}
	return counts
}
