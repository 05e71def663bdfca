package archive

import (
	"strings"
	"testing"
)

func TestBuildSearchQuery_EmptyFiltersReturnsNoQuery(t *testing.T) {
	_, ok := BuildSearchQuery("GratefulDead", "", "", "", SortDateAsc)
	if ok {
		t.Fatal("expected no query for empty text/year/month")
	}
}

func TestBuildSearchQuery_BasePredicate(t *testing.T) {
	spec, ok := BuildSearchQuery("GratefulDead", "Barton Hall", "", "", SortDateAsc)
	if !ok {
		t.Fatal("expected a query")
	}
	if !strings.Contains(spec.Query, "collection:(GratefulDead)") {
		t.Errorf("missing collection predicate: %q", spec.Query)
	}
	if !strings.Contains(spec.Query, "mediaType:(etree)") {
		t.Errorf("missing media type predicate: %q", spec.Query)
	}
}

func TestBuildSearchQuery_TextMatchesTitleVenueCoverage(t *testing.T) {
	spec, _ := BuildSearchQuery("GratefulDead", "Ithaca", "", "", SortDateAsc)

	for _, field := range []string{"title:(Ithaca)", "venue:(Ithaca)", "coverage:(Ithaca)"} {
		if !strings.Contains(spec.Query, field) {
			t.Errorf("query %q missing %s", spec.Query, field)
		}
	}
	if !strings.Contains(spec.Query, " OR ") {
		t.Errorf("text predicate should OR its fields: %q", spec.Query)
	}
}

func TestBuildSearchQuery_YearAndMonth(t *testing.T) {
	spec, _ := BuildSearchQuery("GratefulDead", "", "1977", "05", SortDownloadsDesc)

	if !strings.Contains(spec.Query, "year:(1977)") {
		t.Errorf("missing year predicate: %q", spec.Query)
	}
	if !strings.Contains(spec.Query, "date:*-05-*") {
		t.Errorf("missing month predicate: %q", spec.Query)
	}
	if spec.Sort != SortDownloadsDesc {
		t.Errorf("Sort = %q, want %q", spec.Sort, SortDownloadsDesc)
	}
}

func TestBuildSearchQuery_FixedRowsAndFields(t *testing.T) {
	spec, _ := BuildSearchQuery("GratefulDead", "x", "", "", SortDateAsc)

	if spec.Rows != searchRows {
		t.Errorf("Rows = %d, want %d", spec.Rows, searchRows)
	}
	if len(spec.Fields) == 0 {
		t.Error("Fields should be requested")
	}
}

func TestBuildOnThisDayQuery(t *testing.T) {
	spec := BuildOnThisDayQuery("GratefulDead", "05", "08", SortDownloadsDesc)

	if !strings.Contains(spec.Query, "date:*05-08*") {
		t.Errorf("missing month-day predicate: %q", spec.Query)
	}
	if !strings.Contains(spec.Query, "collection:(GratefulDead)") {
		t.Errorf("missing collection predicate: %q", spec.Query)
	}
}

func TestDownloadURL(t *testing.T) {
	got := DownloadURL("gd1977-05-08.sbd", "d1t01.mp3")
	want := "https://archive.org/download/gd1977-05-08.sbd/d1t01.mp3"
	if got != want {
		t.Errorf("DownloadURL = %q, want %q", got, want)
	}
}
