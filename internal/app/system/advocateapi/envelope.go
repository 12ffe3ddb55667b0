package advocateapi

import (
	"bytes"
	"encoding/json"

	"github.com/dalemusser/advocates/internal/domain/models"
)

// DecodeEnvelope extracts the advocates from a {"data": [...]} response body.
//
// The body must be valid JSON; otherwise the syntax error is returned. Any
// other shape (a non-object body, a missing or non-array data field)
// degrades to an empty list. Entries of data that are not JSON objects are
// skipped.
func DecodeEnvelope(body []byte) ([]models.Advocate, error) {
	var top json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, err
	}

	rows := []models.Advocate{}

	top = bytes.TrimSpace(top)
	if len(top) == 0 || top[0] != '{' {
		return rows, nil
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(top, &env); err != nil {
		return rows, nil
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || data[0] != '[' {
		return rows, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return rows, nil
	}

	for _, e := range entries {
		e = bytes.TrimSpace(e)
		if len(e) == 0 || e[0] != '{' {
			continue
		}
		var a models.Advocate
		if err := json.Unmarshal(e, &a); err != nil {
			continue
		}
		rows = append(rows, a)
	}
	return rows, nil
}
