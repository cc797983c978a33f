package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/justify/pkg/errors"
)

// ReadDocument decodes a JSON layout document from r.
//
// The input may be a full document object or a bare JSON array of items.
// Unknown fields are rejected so that typos in settings do not go unnoticed.
// ReadDocument checks the JSON shape only; item sizes are validated by the
// caller with [errors.ValidateLayout]. It does not close r.
func ReadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return decodeDocument(data)
}

// ImportDocument reads a JSON document file at path.
func ImportDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func decodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := strictUnmarshal(data, &doc); err != nil {
		var items []ItemSpec
		if errArr := strictUnmarshal(data, &items); errArr != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode document")
		}
		doc.Items = items
	}
	return &doc, nil
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}

// ItemLabel returns id, or the item index when id is empty.
func ItemLabel(id string, index int) string {
	if id != "" {
		return id
	}
	return strconv.Itoa(index)
}
