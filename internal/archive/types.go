package archive

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Doc is one document from the archive.org search index.
type Doc struct {
	Identifier  string  `json:"identifier"`
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	Downloads   int     `json:"downloads"`
	AvgRating   float64 `json:"avg_rating"`
	Year        int     `json:"year"`
	Venue       string  `json:"venue"`
	Coverage    string  `json:"coverage"`
	Description string  `json:"description"`
	Source      string  `json:"source"`
}

// UnmarshalJSON decodes a search document leniently. The index schema is
// loose: numeric fields arrive as numbers or strings, and some text fields
// arrive as either a string or a list of strings. Absent or malformed fields
// stay at their zero value.
func (d *Doc) UnmarshalJSON(data []byte) error {
	var raw struct {
		Identifier  string     `json:"identifier"`
		Title       flexString `json:"title"`
		Date        flexString `json:"date"`
		Downloads   flexInt    `json:"downloads"`
		AvgRating   flexFloat  `json:"avg_rating"`
		Year        flexInt    `json:"year"`
		Venue       flexString `json:"venue"`
		Coverage    flexString `json:"coverage"`
		Description flexString `json:"description"`
		Source      flexString `json:"source"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Doc{
		Identifier:  raw.Identifier,
		Title:       string(raw.Title),
		Date:        string(raw.Date),
		Downloads:   int(raw.Downloads),
		AvgRating:   float64(raw.AvgRating),
		Year:        int(raw.Year),
		Venue:       string(raw.Venue),
		Coverage:    string(raw.Coverage),
		Description: string(raw.Description),
		Source:      string(raw.Source),
	}
	return nil
}

// File is one entry of a recording's file manifest.
type File struct {
	Format string `json:"format"`
	Title  string `json:"title"`
	Name   string `json:"name"`
	Track  string `json:"track"`
	Length string `json:"length"`
}

// UnmarshalJSON normalizes manifest entries: track and length may arrive as
// numbers or strings depending on the uploader.
func (f *File) UnmarshalJSON(data []byte) error {
	var raw struct {
		Format string     `json:"format"`
		Title  flexString `json:"title"`
		Name   string     `json:"name"`
		Track  flexString `json:"track"`
		Length flexString `json:"length"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = File{
		Format: raw.Format,
		Title:  string(raw.Title),
		Name:   raw.Name,
		Track:  string(raw.Track),
		Length: string(raw.Length),
	}
	return nil
}

type searchResponse struct {
	Response struct {
		Docs []Doc `json:"docs"`
	} `json:"response"`
}

type metadataResponse struct {
	Files []File `json:"files"`
}

// flexString decodes a JSON string, number, or array of strings (first entry
// wins) into a plain string.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
	case '[':
		var v []string
		if err := json.Unmarshal(data, &v); err != nil {
			*s = ""
			return nil
		}
		if len(v) > 0 {
			*s = flexString(v[0])
		}
	default:
		*s = flexString(data)
	}
	return nil
}

func (s flexString) String() string { return string(s) }

// flexInt decodes a JSON number or numeric string into an int.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	v, ok := parseFlexFloat(data)
	if !ok {
		*n = 0
		return nil
	}
	*n = flexInt(v)
	return nil
}

// flexFloat decodes a JSON number or numeric string into a float64.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	v, ok := parseFlexFloat(data)
	if !ok {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

func parseFlexFloat(data []byte) (float64, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return 0, false
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
