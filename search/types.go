package search

import "github.com/arthur-debert/nanotasks/types"

// Searchable task fields
const (
	FieldText = "text"
	FieldDate = "date"
	FieldTime = "time"
)

// SearchOptions configures search behavior
type SearchOptions struct {
	// Query is the search term to look for
	Query string

	// Fields specifies which fields to search in ("text", "date", "time").
	// Empty slice searches all fields.
	Fields []string

	// CaseSensitive controls whether search is case-sensitive
	CaseSensitive bool

	// ExactMatch requires the entire field to match the query
	// When false, performs partial/substring matching
	ExactMatch bool

	// EnableHighlight includes highlighted match text in results
	EnableHighlight bool

	// HighlightStartMarker and HighlightEndMarker wrap each match.
	// Both default to "**".
	HighlightStartMarker string
	HighlightEndMarker   string

	// MaxResults limits the number of search results
	// nil means no limit
	MaxResults *int
}

// SearchResult represents a search match with metadata
type SearchResult struct {
	// Task is the matched task
	Task types.Task

	// Score represents match relevance (0.0 to 1.0, higher is better)
	Score float64

	// Highlights contains highlighted text for each matched field
	// Key is field name, value is text with match markers
	Highlights map[string]string

	// MatchType describes where the best match was found
	MatchType MatchType

	// MatchedFields lists all fields that contained matches
	MatchedFields []string
}

// MatchType indicates the type of match found
type MatchType string

const (
	MatchExactText   MatchType = "exact_text"
	MatchPartialText MatchType = "partial_text"
	MatchSchedule    MatchType = "schedule"
)

// matchInfo is a single occurrence of the query in a field
type matchInfo struct {
	start int
	end   int
	score float64
	kind  MatchType
}

// TaskProvider supplies the tasks to search
// This allows for dependency injection and easy mocking in tests
type TaskProvider interface {
	// Tasks returns the tasks visible under the given filter, in collection order
	Tasks(filter types.Filter) ([]types.Task, error)
}

// Searcher defines the main search interface
type Searcher interface {
	// Search performs a search and returns ranked results
	Search(options SearchOptions, filter types.Filter) ([]SearchResult, error)
}
