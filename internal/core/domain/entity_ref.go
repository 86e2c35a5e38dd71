package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EntityRef is an identifier for an account or category reference.
//
// Upstream clients sometimes send `{"id": "acc-1"}` where a bare "acc-1" is
// expected. Normalization happens once, here at the decode boundary, instead
// of defensive checks scattered through the ledger code.
type EntityRef string

func (r EntityRef) String() string {
	return string(r)
}

// UnmarshalJSON accepts a plain string, a number, or an object carrying an
// "id" member (itself a string or number).
func (r *EntityRef) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	id, err := refValue(raw)
	if err != nil {
		return err
	}
	*r = EntityRef(id)
	return nil
}

func refValue(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case map[string]any:
		inner, ok := v["id"]
		if !ok {
			return "", fmt.Errorf("reference object has no id field")
		}
		switch id := inner.(type) {
		case string:
			return id, nil
		case json.Number:
			return id.String(), nil
		default:
			return "", fmt.Errorf("reference id has unsupported type %T", inner)
		}
	default:
		return "", fmt.Errorf("reference has unsupported type %T", raw)
	}
}
