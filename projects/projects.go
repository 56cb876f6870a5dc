// Package projects defines the top-level project record that groups
// workflows under a shared permission set.
//
// A project's hash is computed over its canonical content with volatile
// timestamps and record identifiers removed, so re-registering an
// unchanged project yields the same digest. Stored hashes are never
// recomputed on load.
package projects

import (
	"time"

	depictio "github.com/depictio/depictio-models"
	"github.com/depictio/depictio-models/canonical"
	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/oid"
	"github.com/depictio/depictio-models/schema"
	"github.com/depictio/depictio-models/users"
	"github.com/depictio/depictio-models/validate"
	"github.com/depictio/depictio-models/workflows"
)

// Project groups workflows under one permission set.
type Project struct {
	ID                            oid.ObjectID         `json:"id"`
	Name                          string               `json:"name"`
	DataManagementPlatformProject string               `json:"data_management_platform_project_url,omitempty"`
	Workflows                     []workflows.Workflow `json:"workflows"`
	YAMLConfigPath                string               `json:"yaml_config_path"`
	Permissions                   users.Permission     `json:"permissions"`
	IsPublic                      bool                 `json:"is_public"`
	RegistrationTime              string               `json:"registration_time,omitempty"`
	Description                   string               `json:"description,omitempty"`
	FlexibleMetadata              map[string]any       `json:"flexible_metadata,omitempty"`
	Hash                          string               `json:"hash,omitempty"`
}

// Schema builds the project schema for one validation pass.
func Schema(ctx depictio.Context) *schema.Schema {
	return schema.BaseRecord("project",
		schema.Field{Name: "name", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
		schema.Field{Name: "data_management_platform_project_url",
			Rules: []validate.Rule{validate.URL("http", "https")}},
		schema.Field{Name: "workflows", Required: true, NestedList: workflows.Schema(ctx)},
		schema.Field{Name: "yaml_config_path", Required: true,
			Rules: []validate.Rule{validate.ExpandEnv, validate.AbsolutePath(ctx)}},
		schema.Field{Name: "permissions", Required: true, Nested: users.PermissionSchema},
		schema.Field{Name: "is_public", Default: false, Rules: []validate.Rule{validate.Bool}},
		schema.Field{Name: "registration_time",
			DefaultFunc: func() any { return time.Now().Format(validate.TimeLayout) },
			Rules:       []validate.Rule{validate.Datetime}},
	)
}

// New validates raw input, computes the project content hash, and
// constructs an immutable Project. Any caller-supplied hash is replaced.
func New(raw document.Document, ctx depictio.Context) (*Project, error) {
	doc, err := Schema(ctx).Validate(raw)
	if err != nil {
		return nil, err
	}
	fields := document.Clone(doc)
	delete(fields, "hash")
	h, err := canonical.MD5(map[string]any(fields))
	if err != nil {
		return nil, err
	}
	doc["hash"] = h
	var p Project
	if err := document.Decode(doc, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FromStore constructs a Project from a stored document, keeping the
// stored hash verbatim.
func FromStore(doc document.Document) (*Project, error) {
	renamed := document.FromStore(doc)
	stored := document.GetString(renamed, "hash", "")
	validated, err := Schema(depictio.ContextServer).Validate(renamed)
	if err != nil {
		return nil, err
	}
	if stored != "" {
		validated["hash"] = stored
	}
	var p Project
	if err := document.Decode(validated, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Document renders the project back into mapping-layer shape.
func (p *Project) Document() (document.Document, error) {
	return document.Encode(p)
}

// Changed reports whether the project content differs from a previously
// stored hash.
func (p *Project) Changed(storedHash string) bool {
	return p.Hash != storedHash
}
