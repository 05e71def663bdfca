package archive

import (
	"fmt"
	"strings"
)

// Recognized sort keys. They are passed to the search service verbatim;
// validation, if any, is the caller's concern.
const (
	SortDateAsc       = "date asc"
	SortDownloadsDesc = "downloads desc"
	SortRatingDesc    = "avg_rating desc"
)

// searchRows bounds every search result. Not user-configurable.
const searchRows = 50

// searchFields is the field list requested from the search index.
var searchFields = []string{
	"identifier", "title", "date", "downloads", "avg_rating",
	"year", "venue", "coverage", "description", "source",
}

// QuerySpec is a structured search request, ready to hand to Client.Search.
type QuerySpec struct {
	Query  string
	Fields []string
	Sort   string
	Rows   int
}

// BuildSearchQuery compiles free-text and year/month filters into a QuerySpec.
// The second return value is false when text, year and month are all empty:
// an unconstrained search is never issued.
func BuildSearchQuery(collection, text, year, month, sort string) (QuerySpec, bool) {
	if text == "" && year == "" && month == "" {
		return QuerySpec{}, false
	}

	parts := []string{basePredicate(collection)}
	if text != "" {
		parts = append(parts, fmt.Sprintf("(title:(%s) OR venue:(%s) OR coverage:(%s))", text, text, text))
	}
	if year != "" {
		parts = append(parts, fmt.Sprintf("year:(%s)", year))
	}
	if month != "" {
		// Matches any date whose month component equals the two-digit value,
		// independent of year and day.
		parts = append(parts, fmt.Sprintf("date:*-%s-*", month))
	}

	return QuerySpec{
		Query:  strings.Join(parts, " AND "),
		Fields: searchFields,
		Sort:   sort,
		Rows:   searchRows,
	}, true
}

// BuildOnThisDayQuery matches shows whose date contains the given month-day
// substring regardless of year. The date field may be embedded in a longer
// string, so the wildcard is open on both ends.
func BuildOnThisDayQuery(collection, month, day, sort string) QuerySpec {
	q := fmt.Sprintf("%s AND date:*%s-%s*", basePredicate(collection), month, day)
	return QuerySpec{
		Query:  q,
		Fields: searchFields,
		Sort:   sort,
		Rows:   searchRows,
	}
}

func basePredicate(collection string) string {
	return fmt.Sprintf("collection:(%s) AND mediaType:(etree)", collection)
}
