// internal/domain/models/advocate.go
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Advocate is one directory record as served by the advocates API.
//
// The upstream payload is loosely typed: ids, phone numbers and years of
// experience arrive as either strings or numbers, and any field may be
// missing. Every field therefore decodes leniently and a record never fails
// to decode because of a single field's type.
type Advocate struct {
	ID                Text        `json:"id"`
	FirstName         Text        `json:"firstName"`
	LastName          Text        `json:"lastName"`
	City              Text        `json:"city"`
	Degree            Text        `json:"degree"`
	Specialties       Specialties `json:"specialties"`
	YearsOfExperience Text        `json:"yearsOfExperience"`
	PhoneNumber       Text        `json:"phoneNumber"`
}

// RowKey returns a stable identity for the record at position pos in a list:
// its id when present, otherwise a key built from the name fields and position.
func (a Advocate) RowKey(pos int) string {
	if a.ID.Valid {
		return a.ID.String
	}
	return a.FirstName.String + "-" + a.LastName.String + "-" + strconv.Itoa(pos)
}

// Text is a scalar JSON value kept in its textual form.
//
// Strings are kept as-is, numbers use their shortest decimal form, and
// booleans become "true"/"false". null, objects and arrays leave the value
// absent (Valid=false, String="").
type Text struct {
	String string
	Valid  bool
}

// NewText returns a present Text holding s.
func NewText(s string) Text {
	return Text{String: s, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler. It never returns an error for
// well-formed JSON.
func (t *Text) UnmarshalJSON(data []byte) error {
	s, ok := scalarText(data)
	*t = Text{String: s, Valid: ok}
	return nil
}

// Specialties is the ordered list of an advocate's specialties. Anything
// other than a JSON array decodes as an empty list.
type Specialties []string

// UnmarshalJSON implements json.Unmarshaler. Array entries that are not
// scalars (null, objects, nested arrays) are dropped.
func (s *Specialties) UnmarshalJSON(data []byte) error {
	*s = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	out := make(Specialties, 0, len(raw))
	for _, r := range raw {
		if v, ok := scalarText(r); ok {
			out = append(out, v)
		}
	}
	*s = out
	return nil
}

// Joined renders the list inline, separated by ", ".
func (s Specialties) Joined() string {
	return strings.Join(s, ", ")
}

// scalarText converts a raw JSON scalar to text.
func scalarText(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", false
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false
		}
		return s, true
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return "", false
		}
		return strconv.FormatBool(b), true
	case 'n', '{', '[':
		return "", false
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
}
