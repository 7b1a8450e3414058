package localfs

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/promptdeck/promptdeck/internal/domain/prompt"
)

// Scoring constants. Name beats folder beats description beats content;
// whole-query matches beat per-word matches.
const (
	scoreNameMatch        = 100.0
	scoreFolderMatch      = 50.0
	scoreDescriptionMatch = 30.0
	scoreContentMatch     = 15.0
	multExact             = 2.0
	multPrefix            = 1.5
	multWord              = 0.5
	recencyMaxScore       = 100.0
	recencyHalfLifeHours  = 720.0
	recencyTiebreakerMax  = 10.0
	neverUsedPenalty      = -1000.0
	maxResults            = 15
)

// Search scores prompts against the query. An empty query returns all
// prompts ordered by recency with never-used prompts last; otherwise
// prompts are ranked by relevance and zero-score prompts are dropped.
func (s *Store) Search(query string) ([]prompt.SearchResult, error) {
	s.mu.Lock()
	ix, err := s.loadIndex()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	if q == "" {
		return recencyBrowse(ix.Prompts), nil
	}

	results := make([]prompt.SearchResult, 0, len(ix.Prompts))
	for _, meta := range ix.Prompts {
		score := s.score(meta, q)
		if score > 0 {
			results = append(results, prompt.SearchResult{Prompt: meta, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// recencyBrowse ranks all prompts by recency decay, tiebreaking on the raw
// lastUsed timestamp, with never-used prompts sorting last.
func recencyBrowse(metas []prompt.Metadata) []prompt.SearchResult {
	results := make([]prompt.SearchResult, 0, len(metas))
	for _, meta := range metas {
		results = append(results, prompt.SearchResult{
			Prompt: meta,
			Score:  recencyScore(meta, recencyMaxScore, neverUsedPenalty),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		a, b := results[i].Prompt.LastUsed, results[j].Prompt.LastUsed
		switch {
		case a != "" && b != "":
			return a > b // RFC 3339 UTC sorts lexicographically
		case a != "":
			return true
		default:
			return false
		}
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// score computes the relevance of one prompt. Metadata tiers are tried
// first; content is only read from disk (or cache) when nothing in the
// metadata matched.
func (s *Store) score(meta prompt.Metadata, query string) float64 {
	var score float64

	name := strings.ToLower(meta.Name)
	folder := strings.ToLower(meta.Folder)
	desc := strings.ToLower(meta.Description)

	switch {
	case name == query:
		score += scoreNameMatch * multExact
	case strings.HasPrefix(name, query):
		score += scoreNameMatch * multPrefix
	case strings.Contains(name, query):
		score += scoreNameMatch
	}

	if strings.Contains(folder, query) {
		score += scoreFolderMatch
	}
	if strings.Contains(desc, query) {
		score += scoreDescriptionMatch
	}

	if score == 0 {
		for _, word := range strings.Fields(query) {
			if strings.Contains(name, word) {
				score += scoreNameMatch * multWord
			}
			if strings.Contains(folder, word) {
				score += scoreFolderMatch * multWord
			}
			if strings.Contains(desc, word) {
				score += scoreDescriptionMatch * multWord
			}
		}
	}

	if score == 0 {
		if content, err := s.readContent(meta.Folder, meta.Filename); err == nil {
			lower := strings.ToLower(content)
			if strings.Contains(lower, query) {
				score += scoreContentMatch
			} else {
				for _, word := range strings.Fields(query) {
					if strings.Contains(lower, word) {
						score += scoreContentMatch * multWord
					}
				}
			}
		}
	}

	if score > 0 {
		score += recencyScore(meta, recencyTiebreakerMax, 0)
	}
	return score
}

// recencyScore computes amplitude * exp(-ln2 * hoursSinceLastUsed / 720),
// a half-life decay of 30 days. Prompts never used, or with an unparseable
// timestamp, get the fallback value.
func recencyScore(meta prompt.Metadata, amplitude, fallback float64) float64 {
	if meta.LastUsed == "" {
		return fallback
	}
	last, err := time.Parse(time.RFC3339, meta.LastUsed)
	if err != nil {
		return fallback
	}
	hours := time.Since(last).Hours()
	if hours < 0 {
		hours = 0
	}
	return amplitude * math.Exp(-math.Ln2*hours/recencyHalfLifeHours)
}
