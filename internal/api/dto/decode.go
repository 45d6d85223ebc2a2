package dto

import (
	"bytes"
	"encoding/json"
	"errors"
)

// DecodeStrict parses a JSON body into dest, rejecting unknown fields and
// trailing content. Bodies fail closed instead of silently propagating.
func DecodeStrict(body []byte, dest any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}
