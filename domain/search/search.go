package search

import (
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Query represents the structured parameters for a post search inside one room.
// It decouples the raw user input from the index requirements.
type Query struct {
	RawInput string
	Terms    string
	RoomID   string
	Limit    int
}

// NewSearchQuery parses a raw string and extracts command-line style arguments.
// Example: "release notes --limit 5"
func NewSearchQuery(roomID, input string) Query {
	query := Query{
		RawInput: input,
		RoomID:   roomID,
		Limit:    DefaultLimit,
	}

	parts := strings.Fields(input)
	var textTerms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]
		if part == "--limit" && i+1 < len(parts) {
			if n, err := strconv.Atoi(parts[i+1]); err == nil && n > 0 {
				query.Limit = min(n, MaxLimit)
			}
			i++
			continue
		}
		textTerms = append(textTerms, part)
	}

	query.Terms = strings.Join(textTerms, " ")
	return query
}

func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Terms) == ""
}
