// Package search finds tasks whose text or schedule contains a query and
// ranks them by relevance.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/nanotasks/types"
)

const defaultMarker = "**"

// Engine implements the Searcher interface
type Engine struct {
	provider TaskProvider
}

// NewEngine creates a new search engine with the given task provider
func NewEngine(provider TaskProvider) *Engine {
	return &Engine{
		provider: provider,
	}
}

// Search performs a search and returns ranked results.
// Results with equal scores keep collection order.
func (e *Engine) Search(options SearchOptions, filter types.Filter) ([]SearchResult, error) {
	if options.Query == "" {
		return []SearchResult{}, nil
	}

	tasks, err := e.provider.Tasks(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	results := []SearchResult{}
	for _, task := range tasks {
		if result := e.searchTask(task, options); result != nil {
			results = append(results, *result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if options.MaxResults != nil && *options.MaxResults > 0 && len(results) > *options.MaxResults {
		results = results[:*options.MaxResults]
	}
	return results, nil
}

// searchTask returns a result if any searched field of task matches
func (e *Engine) searchTask(task types.Task, options SearchOptions) *SearchResult {
	fields := options.Fields
	if len(fields) == 0 {
		fields = []string{FieldText, FieldDate, FieldTime}
	}

	var result *SearchResult
	for _, field := range fields {
		value, kind, ok := fieldValue(task, field)
		if !ok || value == "" {
			continue
		}
		matches := e.findMatches(value, options, kind)
		if len(matches) == 0 {
			continue
		}

		if result == nil {
			result = &SearchResult{Task: task}
			if options.EnableHighlight {
				result.Highlights = make(map[string]string)
			}
		}
		result.MatchedFields = append(result.MatchedFields, field)
		for _, m := range matches {
			if m.score > result.Score {
				result.Score = m.score
				result.MatchType = m.kind
			}
		}
		if options.EnableHighlight {
			result.Highlights[field] = highlight(value, matches, options)
		}
	}
	return result
}

func fieldValue(task types.Task, field string) (string, MatchType, bool) {
	switch field {
	case FieldText:
		return task.Text, MatchPartialText, true
	case FieldDate:
		return task.Date, MatchSchedule, true
	case FieldTime:
		return task.Time, MatchSchedule, true
	}
	return "", "", false
}

// calculateScore computes a relevance score for a substring match
func calculateScore(fieldValue, query string, kind MatchType) float64 {
	baseScore := 0.5

	// Boost score for text matches
	if kind == MatchPartialText {
		baseScore = 0.6
	}

	// Boost if match is at the beginning
	if strings.HasPrefix(fieldValue, query) {
		baseScore += 0.2
	}

	// Boost if query takes up a large portion of the field
	if coverage := float64(len(query)) / float64(len(fieldValue)); coverage > 0.5 {
		baseScore += 0.1
	}

	if baseScore > 1.0 {
		baseScore = 1.0
	}
	return baseScore
}

// findMatches finds all non-overlapping occurrences of the query in text
func (e *Engine) findMatches(text string, options SearchOptions, kind MatchType) []matchInfo {
	searchText := text
	searchQuery := options.Query
	if !options.CaseSensitive {
		searchText = strings.ToLower(text)
		searchQuery = strings.ToLower(searchQuery)
	}

	queryLen := len(searchQuery)
	if queryLen == 0 {
		return nil
	}

	if options.ExactMatch {
		if searchText != searchQuery {
			return nil
		}
		return []matchInfo{{start: 0, end: len(text), score: 1.0, kind: exactKind(kind)}}
	}

	if len(searchText) != len(text) {
		// Lowercasing changed byte offsets; report one match without a span
		if !strings.Contains(searchText, searchQuery) {
			return nil
		}
		return []matchInfo{{score: calculateScore(searchText, searchQuery, kind), kind: kind}}
	}

	var matches []matchInfo
	for i := 0; i <= len(searchText)-queryLen; i++ {
		if searchText[i:i+queryLen] != searchQuery {
			continue
		}
		matches = append(matches, matchInfo{
			start: i,
			end:   i + queryLen,
			score: calculateScore(searchText, searchQuery, kind),
			kind:  kind,
		})
		// Skip overlapping matches
		i += queryLen - 1
	}
	return matches
}

func exactKind(kind MatchType) MatchType {
	if kind == MatchPartialText {
		return MatchExactText
	}
	return kind
}

// highlight wraps each match in the configured markers
func highlight(text string, matches []matchInfo, options SearchOptions) string {
	startMarker := options.HighlightStartMarker
	endMarker := options.HighlightEndMarker
	if startMarker == "" {
		startMarker = defaultMarker
	}
	if endMarker == "" {
		endMarker = defaultMarker
	}

	var builder strings.Builder
	lastEnd := 0
	for _, m := range matches {
		if m.end <= m.start {
			continue
		}
		builder.WriteString(text[lastEnd:m.start])
		builder.WriteString(startMarker)
		builder.WriteString(text[m.start:m.end])
		builder.WriteString(endMarker)
		lastEnd = m.end
	}
	builder.WriteString(text[lastEnd:])
	return builder.String()
}
