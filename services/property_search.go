package services

import (
	"sort"
	"strings"
	"sync"

	"airmetr/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const similarityThreshold = 0.7

type scoredProperty struct {
	property models.Property
	score    int
}

// normalizeInput lowercases and strips accents, so "Tromsø" matches "tromso".
func normalizeInput(input string) string {
	return strings.ToLower(unidecode.Unidecode(strings.TrimSpace(input)))
}

func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len([]rune(a)))
	if l := float64(len([]rune(b))); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

// fieldScore counts how many query words appear in, or are close to a word of,
// the field.
func fieldScore(queryWords []string, field string, weight int) int {
	words := strings.Fields(normalizeInput(field))
	score := 0
	for _, q := range queryWords {
		for _, w := range words {
			if w == q || (len(q) >= 3 && strings.Contains(w, q)) || calculateSimilarity(q, w) > similarityThreshold {
				score += weight
				break
			}
		}
	}
	return score
}

func calculatePropertyScore(queryWords []string, p models.Property) int {
	score := 0
	if p.PType != nil {
		score += fieldScore(queryWords, p.PType.PTypeName, 20)
	}
	score += fieldScore(queryWords, p.Address, 13)
	score += fieldScore(queryWords, p.Title, 5)
	score += fieldScore(queryWords, p.Description, 1)
	return score
}

// rankProperties keeps the properties matching query, best match first.
func rankProperties(query string, properties []models.Property) []models.Property {
	queryWords := strings.Fields(normalizeInput(query))
	if len(queryWords) == 0 {
		return properties
	}

	scoreCh := make(chan scoredProperty, len(properties))
	var wg sync.WaitGroup
	for _, p := range properties {
		wg.Add(1)
		go func(p models.Property) {
			defer wg.Done()
			if score := calculatePropertyScore(queryWords, p); score > 0 {
				scoreCh <- scoredProperty{property: p, score: score}
			}
		}(p)
	}
	wg.Wait()
	close(scoreCh)

	scored := make([]scoredProperty, 0, len(properties))
	for sp := range scoreCh {
		scored = append(scored, sp)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].property.ID < scored[j].property.ID
	})

	out := make([]models.Property, 0, len(scored))
	for _, sp := range scored {
		out = append(out, sp.property)
	}
	return out
}

// suggestQuery returns the closest known address or type name for a query
// that matched nothing, or "" when there is nothing better to offer.
func suggestQuery(query string, properties []models.Property) string {
	seen := make(map[string]bool)
	var vocabulary []string
	add := func(s string) {
		for _, w := range strings.Fields(normalizeInput(s)) {
			if len(w) > 2 && !seen[w] {
				seen[w] = true
				vocabulary = append(vocabulary, w)
			}
		}
	}
	for _, p := range properties {
		add(p.Address)
		if p.PType != nil {
			add(p.PType.PTypeName)
		}
	}
	if len(vocabulary) == 0 {
		return ""
	}

	cm := closestmatch.New(vocabulary, []int{2, 3})
	normalized := normalizeInput(query)
	suggestion := cm.Closest(normalized)
	if suggestion == normalized {
		return ""
	}
	return suggestion
}
