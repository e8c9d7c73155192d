package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Decode reads one JSON document, unknown fields are rejected
func Decode[T any](body io.Reader) (T, error) {
	var payload T

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return payload, errors.New("empty request body")
		}
		return payload, fmt.Errorf("decode request: %w", err)
	}
	return payload, nil
}
