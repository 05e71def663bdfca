package archive

import (
	"encoding/json"
	"testing"
)

func TestDoc_DecodesLooseShapes(t *testing.T) {
	raw := `{
		"identifier": "gd1977-05-08",
		"title": "Grateful Dead Live at Barton Hall",
		"date": "1977-05-08T00:00:00Z",
		"downloads": "123456",
		"avg_rating": 4.75,
		"year": 1977,
		"venue": ["Barton Hall", "Cornell University"],
		"coverage": "Ithaca, NY"
	}`

	var doc Doc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if doc.Downloads != 123456 {
		t.Errorf("Downloads = %d, want 123456", doc.Downloads)
	}
	if doc.AvgRating != 4.75 {
		t.Errorf("AvgRating = %v, want 4.75", doc.AvgRating)
	}
	if doc.Venue != "Barton Hall" {
		t.Errorf("Venue = %q, want first array entry", doc.Venue)
	}
}

func TestDoc_AbsentFieldsDefaultToZero(t *testing.T) {
	var doc Doc
	if err := json.Unmarshal([]byte(`{"identifier":"x"}`), &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if doc.Downloads != 0 || doc.AvgRating != 0 || doc.Date != "" {
		t.Errorf("absent fields should be zero, got %+v", doc)
	}
}

func TestFile_DecodesStringOrNumberTrack(t *testing.T) {
	var f File
	if err := json.Unmarshal([]byte(`{"format":"VBR MP3","track":7,"length":"4:05"}`), &f); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if f.Track != "7" {
		t.Errorf("Track = %q, want 7", f.Track)
	}
	if f.Length != "4:05" {
		t.Errorf("Length = %q, want 4:05", f.Length)
	}
}

func TestFlexFloat_GarbageIsZero(t *testing.T) {
	var f flexFloat
	if err := f.UnmarshalJSON([]byte(`"not a number"`)); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if f != 0 {
		t.Errorf("garbage input should decode to 0, got %v", f)
	}
}
