// Package dashboards defines the persisted dashboard state: layout,
// component metadata, button state, and the permission set that
// controls who may see or edit it.
package dashboards

import (
	"time"

	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/oid"
	"github.com/depictio/depictio-models/schema"
	"github.com/depictio/depictio-models/users"
	"github.com/depictio/depictio-models/validate"
)

// Dashboard is one saved dashboard.
type Dashboard struct {
	ID               oid.ObjectID     `json:"id"`
	DashboardID      string           `json:"dashboard_id"`
	Version          int              `json:"version"`
	Title            string           `json:"title"`
	ProjectID        *oid.ObjectID    `json:"project_id,omitempty"`
	StoredLayoutData map[string]any   `json:"stored_layout_data,omitempty"`
	StoredMetadata   []any            `json:"stored_metadata,omitempty"`
	ButtonsData      map[string]any   `json:"buttons_data,omitempty"`
	Permissions      users.Permission `json:"permissions"`
	IsPublic         bool             `json:"is_public"`
	LastSaved        string           `json:"last_saved_ts,omitempty"`
	Description      string           `json:"description,omitempty"`
	FlexibleMetadata map[string]any   `json:"flexible_metadata,omitempty"`
	Hash             string           `json:"hash,omitempty"`
}

// Schema validates dashboard records. Layout and component payloads are
// opaque to the model layer; only their container shapes are enforced.
var Schema = schema.BaseRecord("dashboard",
	schema.Field{Name: "dashboard_id", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "version", Default: 1, Rules: []validate.Rule{validate.Int, validate.Positive}},
	schema.Field{Name: "title", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "project_id", Rules: []validate.Rule{schema.Identifier}},
	schema.Field{Name: "stored_layout_data", Default: map[string]any{}, Rules: []validate.Rule{schema.OpenMap}},
	schema.Field{Name: "stored_metadata", Default: []any{}},
	schema.Field{Name: "buttons_data", Default: map[string]any{}, Rules: []validate.Rule{schema.OpenMap}},
	schema.Field{Name: "permissions", Required: true, Nested: users.PermissionSchema},
	schema.Field{Name: "is_public", Default: false, Rules: []validate.Rule{validate.Bool}},
	schema.Field{Name: "last_saved_ts",
		DefaultFunc: func() any { return time.Now().Format(validate.TimeLayout) },
		Rules:       []validate.Rule{validate.Datetime}},
)

// New validates raw input and constructs an immutable Dashboard.
func New(raw document.Document) (*Dashboard, error) {
	doc, err := Schema.Validate(raw)
	if err != nil {
		return nil, err
	}
	var d Dashboard
	if err := document.Decode(doc, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// FromStore constructs a Dashboard from a stored document.
func FromStore(doc document.Document) (*Dashboard, error) {
	return New(document.FromStore(doc))
}

// Document renders the dashboard back into mapping-layer shape.
func (d *Dashboard) Document() (document.Document, error) {
	return document.Encode(d)
}
