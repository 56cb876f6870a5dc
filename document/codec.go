package document

import (
	"encoding/json"
	"fmt"
)

// Encode renders a typed record as a document tree. Identifiers and other
// text-marshaling scalars become plain strings, matching the output
// contract of the mapping layer.
func Encode(v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("document: cannot encode %T: %w", v, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("document: cannot encode %T: %w", v, err)
	}
	return doc, nil
}

// Decode populates a typed record from a validated document tree.
func Decode(doc Document, v any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("document: cannot decode into %T: %w", v, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("document: cannot decode into %T: %w", v, err)
	}
	return nil
}
