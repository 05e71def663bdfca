// Package shows turns raw archive search hits into a deduplicated show model:
// one primary recording per grouping key plus ranked alternate recordings.
package shows

import (
	"strings"

	"github.com/llehouerou/tapedeck/internal/archive"
)

// unknownDate is the grouping key for hits whose date field is absent.
const unknownDate = "Unknown"

// Show is the aggregation unit: one concert date with a chosen primary
// recording and zero or more alternates.
type Show struct {
	Date       string        `json:"date"`
	Primary    archive.Doc   `json:"primary"`
	Alternates []archive.Doc `json:"alternates,omitempty"`
}

// GroupByIdentifier makes each hit the sole primary of its own show, keyed by
// the recording identifier. Order is preserved; duplicate identifiers beyond
// the first are dropped. Nil or empty input yields an empty slice.
func GroupByIdentifier(docs []archive.Doc) []Show {
	result := make([]Show, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))

	for _, doc := range docs {
		if _, ok := seen[doc.Identifier]; ok {
			continue
		}
		seen[doc.Identifier] = struct{}{}
		result = append(result, Show{
			Date:    showDate(doc),
			Primary: doc,
		})
	}
	return result
}

// GroupByDate groups hits by calendar date. The first hit seen for a date
// becomes the primary; later same-date hits append to its alternates in
// encounter order. Since the upstream service delivers hits sorted by the
// active sort key, "first" is the highest-ranked recording under that sort.
// Output order is first-encounter order of the dates.
func GroupByDate(docs []archive.Doc) []Show {
	result := make([]Show, 0, len(docs))
	index := make(map[string]int, len(docs))

	for _, doc := range docs {
		date := showDate(doc)
		if i, ok := index[date]; ok {
			result[i].Alternates = append(result[i].Alternates, doc)
			continue
		}
		index[date] = len(result)
		result = append(result, Show{
			Date:    date,
			Primary: doc,
		})
	}
	return result
}

// SwapPrimary exchanges the primary with the alternate carrying the given
// identifier. The displaced primary takes the alternate's slot, so no
// recording is duplicated or lost. Returns false if no alternate matches.
func (s *Show) SwapPrimary(identifier string) bool {
	for i, alt := range s.Alternates {
		if alt.Identifier == identifier {
			s.Primary, s.Alternates[i] = alt, s.Primary
			return true
		}
	}
	return false
}

// Recordings returns the primary followed by all alternates.
func (s *Show) Recordings() []archive.Doc {
	result := make([]archive.Doc, 0, 1+len(s.Alternates))
	result = append(result, s.Primary)
	return append(result, s.Alternates...)
}

// showDate truncates a hit's date at the first time separator, yielding a
// plain YYYY-MM-DD calendar date. Hits without a date share the literal
// "Unknown" key.
func showDate(doc archive.Doc) string {
	if doc.Date == "" {
		return unknownDate
	}
	if i := strings.IndexByte(doc.Date, 'T'); i >= 0 {
		return doc.Date[:i]
	}
	return doc.Date
}
