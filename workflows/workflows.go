// Package workflows defines the workflow entities: the engine and catalog
// descriptors, shared run configuration, individual runs, and the workflow
// record that owns data collections and runs.
//
// The workflow_tag is derived, never trusted from input. It is
// "<engine>/<name>" unless the workflow is registered under a recognized
// community catalog, in which case the catalog prefix wins.
package workflows

import (
	"strings"
	"time"

	depictio "github.com/depictio/depictio-models"
	"github.com/depictio/depictio-models/canonical"
	"github.com/depictio/depictio-models/datacollections"
	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/files"
	"github.com/depictio/depictio-models/oid"
	"github.com/depictio/depictio-models/schema"
	"github.com/depictio/depictio-models/validate"
)

// Engines the platform knows how to drive or at least attribute runs to.
var EngineNames = []string{
	"snakemake", "nextflow", "toil", "cwltool", "arvados", "streamflow",
	"galaxy", "airflow", "dagster",
	"python", "shell", "r", "julia", "matlab", "perl",
	"java", "c", "c++", "go", "rust",
}

// Community catalogs.
const (
	CatalogWorkflowHub  = "workflowhub"
	CatalogNFCore       = "nf-core"
	CatalogSmkWfCatalog = "smk-wf-catalog"
)

// Engine identifies the system that executed a workflow.
type Engine struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// EngineSchema validates engine descriptors.
var EngineSchema = schema.New("workflow_engine",
	schema.Field{Name: "name", Required: true, Rules: []validate.Rule{validate.Enum(EngineNames...)}},
	schema.Field{Name: "version", Rules: []validate.Rule{validate.String}},
)

// Catalog records a workflow's registration in a community catalog.
type Catalog struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// CatalogSchema validates catalog references. Catalog URLs may use git
// transport in addition to http(s).
var CatalogSchema = schema.New("workflow_catalog",
	schema.Field{Name: "name", Required: true,
		Rules: []validate.Rule{validate.Enum(CatalogWorkflowHub, CatalogNFCore, CatalogSmkWfCatalog)}},
	schema.Field{Name: "url", Rules: []validate.Rule{validate.URL("http", "https", "git")}},
)

// Config is the scan configuration shared by a workflow's runs.
type Config struct {
	ID                 oid.ObjectID   `json:"id"`
	ParentRunsLocation []string       `json:"parent_runs_location"`
	WorkflowVersion    string         `json:"workflow_version,omitempty"`
	RunsRegex          string         `json:"runs_regex"`
	Description        string         `json:"description,omitempty"`
	FlexibleMetadata   map[string]any `json:"flexible_metadata,omitempty"`
	Hash               string         `json:"hash,omitempty"`
}

// ConfigSchema builds the run-configuration schema for one validation pass.
// Parent locations expand {VAR} placeholders before the directory check; an
// unset variable fails the whole record.
func ConfigSchema(ctx depictio.Context) *schema.Schema {
	return schema.BaseRecord("workflow_config",
		schema.Field{Name: "parent_runs_location", Required: true,
			Each: []validate.Rule{validate.ExpandEnv, validate.DirectoryPath(ctx)}},
		schema.Field{Name: "workflow_version", Rules: []validate.Rule{validate.String}},
		schema.Field{Name: "runs_regex", Required: true, Rules: []validate.Rule{validate.Pattern}},
	)
}

// Run is one recorded execution of a workflow.
type Run struct {
	ID               oid.ObjectID       `json:"id"`
	WorkflowID       oid.ObjectID       `json:"workflow_id"`
	RunTag           string             `json:"run_tag"`
	Files            []files.File       `json:"files,omitempty"`
	WorkflowConfig   *Config            `json:"workflow_config,omitempty"`
	RunLocation      string             `json:"run_location"`
	ExecutionTime    string             `json:"execution_time"`
	ExecutionProfile map[string]any     `json:"execution_profile,omitempty"`
	RegistrationTime string             `json:"registration_time,omitempty"`
	ScanResults      []files.ScanResult `json:"scan_results,omitempty"`
	Description      string             `json:"description,omitempty"`
	FlexibleMetadata map[string]any     `json:"flexible_metadata,omitempty"`
	Hash             string             `json:"hash,omitempty"`
}

// RunSchema builds the run schema for one validation pass.
func RunSchema(ctx depictio.Context) *schema.Schema {
	return schema.BaseRecord("workflow_run",
		schema.Field{Name: "workflow_id", Required: true, Rules: []validate.Rule{schema.Identifier}},
		schema.Field{Name: "run_tag", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
		schema.Field{Name: "files", NestedList: files.Schema(ctx)},
		schema.Field{Name: "workflow_config", Nested: ConfigSchema(ctx)},
		schema.Field{Name: "run_location", Required: true,
			Rules: []validate.Rule{validate.ExpandEnv, validate.DirectoryPath(ctx)}},
		schema.Field{Name: "execution_time", Required: true, Rules: []validate.Rule{validate.Datetime}},
		schema.Field{Name: "execution_profile", Rules: []validate.Rule{schema.OpenMap}},
		schema.Field{Name: "registration_time",
			DefaultFunc: func() any { return time.Now().Format(validate.TimeLayout) },
			Rules:       []validate.Rule{validate.Datetime}},
		schema.Field{Name: "scan_results", NestedList: files.ScanResultSchema(ctx)},
	)
}

// NewRun validates raw input and constructs an immutable Run.
func NewRun(raw document.Document, ctx depictio.Context) (*Run, error) {
	doc, err := RunSchema(ctx).Validate(raw)
	if err != nil {
		return nil, err
	}
	var r Run
	if err := document.Decode(doc, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// RunFromStore constructs a Run from a stored document.
func RunFromStore(doc document.Document) (*Run, error) {
	return NewRun(document.FromStore(doc), depictio.ContextServer)
}

// Workflow is the top-level workflow record.
type Workflow struct {
	ID               oid.ObjectID                     `json:"id"`
	Name             string                           `json:"name"`
	Engine           Engine                           `json:"engine"`
	Version          string                           `json:"version,omitempty"`
	Catalog          *Catalog                         `json:"catalog,omitempty"`
	WorkflowTag      string                           `json:"workflow_tag"`
	RepositoryURL    string                           `json:"repository_url,omitempty"`
	DataCollections  []datacollections.DataCollection `json:"data_collections"`
	Runs             map[string]Run                   `json:"runs,omitempty"`
	Config           Config                           `json:"config"`
	RegistrationTime string                           `json:"registration_time,omitempty"`
	Description      string                           `json:"description,omitempty"`
	FlexibleMetadata map[string]any                   `json:"flexible_metadata,omitempty"`
	Hash             string                           `json:"hash,omitempty"`
}

// deriveTag overwrites workflow_tag from engine and name. A recognized
// community catalog name takes precedence over the engine prefix. The
// prefix is lowercased here because it is read before enum validation
// normalizes the engine and catalog names.
func deriveTag(doc document.Document) (document.Document, error) {
	name := document.GetString(doc, "name", "")
	engine := document.GetDoc(doc, "engine")
	if name == "" || engine == nil {
		return doc, nil
	}
	prefix := strings.ToLower(document.GetString(engine, "name", ""))
	if catalog := document.GetDoc(doc, "catalog"); catalog != nil {
		if strings.ToLower(document.GetString(catalog, "name", "")) == CatalogNFCore {
			prefix = CatalogNFCore
		}
	}
	if prefix != "" {
		doc["workflow_tag"] = prefix + "/" + name
	}
	return doc, nil
}

// Schema builds the workflow schema for one validation pass.
func Schema(ctx depictio.Context) *schema.Schema {
	return schema.BaseRecord("workflow",
		schema.Field{Name: "name", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
		schema.Field{Name: "engine", Required: true, Nested: EngineSchema},
		schema.Field{Name: "version", Rules: []validate.Rule{validate.String}},
		schema.Field{Name: "catalog", Nested: CatalogSchema},
		schema.Field{Name: "workflow_tag", Rules: []validate.Rule{validate.String}},
		schema.Field{Name: "repository_url", Rules: []validate.Rule{validate.URL("http", "https", "git")}},
		schema.Field{Name: "data_collections", Required: true,
			NestedList: datacollections.DataCollectionSchema},
		schema.Field{Name: "runs", Default: map[string]any{}, NestedMap: RunSchema(ctx)},
		schema.Field{Name: "config", Required: true, Nested: ConfigSchema(ctx)},
		schema.Field{Name: "registration_time",
			DefaultFunc: func() any { return time.Now().Format(validate.TimeLayout) },
			Rules:       []validate.Rule{validate.Datetime}},
	).PreValidate(deriveTag)
}

// New validates raw input, derives the workflow tag, computes the content
// hash, and constructs an immutable Workflow.
func New(raw document.Document, ctx depictio.Context) (*Workflow, error) {
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
	var wf Workflow
	if err := document.Decode(doc, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// FromStore constructs a Workflow from a stored document. The stored hash,
// if any, is kept verbatim so change detection compares like with like.
func FromStore(doc document.Document) (*Workflow, error) {
	renamed := document.FromStore(doc)
	stored := document.GetString(renamed, "hash", "")
	validated, err := Schema(depictio.ContextServer).Validate(renamed)
	if err != nil {
		return nil, err
	}
	if stored != "" {
		validated["hash"] = stored
	}
	var wf Workflow
	if err := document.Decode(validated, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// Document renders the workflow back into mapping-layer shape.
func (w *Workflow) Document() (document.Document, error) {
	return document.Encode(w)
}
