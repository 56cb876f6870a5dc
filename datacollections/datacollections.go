// Package datacollections defines the data-collection entities: typed data
// sources attached to a workflow, their scan strategies, and the
// kind-specific configuration selected by a discriminated union on the
// collection type.
package datacollections

import (
	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/oid"
	"github.com/depictio/depictio-models/schema"
	"github.com/depictio/depictio-models/validate"
)

// Collection kinds.
const (
	TypeTable    = "table"
	TypeJBrowse2 = "jbrowse2"
)

// Scan strategies.
const (
	ScanFileBased = "file-based"
	ScanPathBased = "path-based"
)

// WildcardRegex names one wildcard captured by a scan pattern.
type WildcardRegex struct {
	Name          string `json:"name"`
	WildcardRegex string `json:"wildcard_regex"`
	Value         string `json:"value,omitempty"`
}

// WildcardRegexSchema validates wildcard definitions.
var WildcardRegexSchema = schema.New("wildcard_regex",
	schema.Field{Name: "name", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "wildcard_regex", Required: true, Rules: []validate.Rule{validate.Pattern}},
	schema.Field{Name: "value", Rules: []validate.Rule{validate.String}},
)

// Regex is the scan strategy: a compiled pattern applied either recursively
// (path-based) or against a single named file (file-based).
type Regex struct {
	Pattern   string          `json:"pattern"`
	Type      string          `json:"type"`
	Wildcards []WildcardRegex `json:"wildcards,omitempty"`
}

// RegexSchema validates scan strategies.
var RegexSchema = schema.New("regex",
	schema.Field{Name: "pattern", Required: true, Rules: []validate.Rule{validate.Pattern}},
	schema.Field{Name: "type", Required: true, Rules: []validate.Rule{validate.Enum(ScanFileBased, ScanPathBased)}},
	schema.Field{Name: "wildcards", NestedList: WildcardRegexSchema},
)

// Join modes.
const (
	JoinInner = "inner"
	JoinOuter = "outer"
	JoinLeft  = "left"
	JoinRight = "right"
)

// TableJoinConfig is the optional equi-join specification against other
// collections.
type TableJoinConfig struct {
	OnColumns []string `json:"on_columns"`
	How       string   `json:"how"`
	WithDC    []string `json:"with_dc"`
}

// TableJoinSchema validates join specifications.
var TableJoinSchema = schema.New("table_join",
	schema.Field{Name: "on_columns", Required: true, Each: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "how", Required: true,
		Rules: []validate.Rule{validate.Enum(JoinInner, JoinOuter, JoinLeft, JoinRight)}},
	schema.Field{Name: "with_dc", Required: true, Each: []validate.Rule{validate.NonEmpty}},
)

// DCTableConfig is the table-kind collection configuration.
type DCTableConfig struct {
	Format        string         `json:"format"`
	Separator     string         `json:"separator,omitempty"`
	HasHeader     bool           `json:"has_header"`
	KeepColumns   []string       `json:"keep_columns,omitempty"`
	IgnoreColumns []string       `json:"ignore_columns,omitempty"`
	SkipRows      int            `json:"skip_rows,omitempty"`
	PolarsKwargs  map[string]any `json:"polars_kwargs,omitempty"`
}

// DCTableSchema validates table-kind configurations.
var DCTableSchema = schema.New("dc_table_config",
	schema.Field{Name: "format", Required: true,
		Rules: []validate.Rule{validate.Enum("csv", "tsv", "parquet", "feather", "xls")}},
	schema.Field{Name: "separator", Rules: []validate.Rule{validate.String}},
	schema.Field{Name: "has_header", Default: true, Rules: []validate.Rule{validate.Bool}},
	schema.Field{Name: "keep_columns", Each: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "ignore_columns", Each: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "skip_rows", Default: 0, Rules: []validate.Rule{validate.Int}},
	schema.Field{Name: "polars_kwargs", Rules: []validate.Rule{schema.OpenMap}},
)

// DCJBrowse2Config is the jbrowse2-kind collection configuration.
type DCJBrowse2Config struct {
	TemplateLocation string         `json:"jbrowse_template_location"`
	IndexExtension   string         `json:"index_extension,omitempty"`
	Category         string         `json:"category,omitempty"`
	TrackDefaults    map[string]any `json:"track_defaults,omitempty"`
}

// DCJBrowse2Schema validates jbrowse2-kind configurations.
var DCJBrowse2Schema = schema.New("dc_jbrowse2_config",
	schema.Field{Name: "jbrowse_template_location", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "index_extension", Rules: []validate.Rule{validate.String}},
	schema.Field{Name: "category", Rules: []validate.Rule{validate.String}},
	schema.Field{Name: "track_defaults", Rules: []validate.Rule{schema.OpenMap}},
)

// Config describes one typed data source. The concrete shape of
// DCSpecificProperties is selected by Type before that payload is parsed.
type Config struct {
	ID                   oid.ObjectID     `json:"id"`
	Type                 string           `json:"type"`
	Metatype             string           `json:"metatype,omitempty"`
	Regex                Regex            `json:"regex"`
	DCSpecificProperties map[string]any   `json:"dc_specific_properties"`
	Join                 *TableJoinConfig `json:"join,omitempty"`
	Description          string           `json:"description,omitempty"`
	FlexibleMetadata     map[string]any   `json:"flexible_metadata,omitempty"`
	Hash                 string           `json:"hash,omitempty"`
}

// ConfigSchema validates collection configurations. An unrecognized type
// tag fails before the nested kind-specific payload is even attempted.
var ConfigSchema = schema.BaseRecord("data_collection_config",
	schema.Field{Name: "type", Required: true, Rules: []validate.Rule{validate.Enum(TypeTable, TypeJBrowse2)}},
	schema.Field{Name: "metatype", Rules: []validate.Rule{validate.String}},
	schema.Field{Name: "regex", Required: true, Nested: RegexSchema},
	schema.Field{Name: "dc_specific_properties", Required: true,
		Discriminator: "type",
		Variants: map[string]*schema.Schema{
			TypeTable:    DCTableSchema,
			TypeJBrowse2: DCJBrowse2Schema,
		}},
	schema.Field{Name: "join", Nested: TableJoinSchema},
)

// TableConfig decodes the kind-specific payload as a table configuration.
// Returns false when the collection is not table-kind.
func (c *Config) TableConfig() (DCTableConfig, bool) {
	if c.Type != TypeTable {
		return DCTableConfig{}, false
	}
	var out DCTableConfig
	if err := document.Decode(document.Document(c.DCSpecificProperties), &out); err != nil {
		return DCTableConfig{}, false
	}
	return out, true
}

// JBrowse2Config decodes the kind-specific payload as a jbrowse2
// configuration. Returns false when the collection is not jbrowse2-kind.
func (c *Config) JBrowse2Config() (DCJBrowse2Config, bool) {
	if c.Type != TypeJBrowse2 {
		return DCJBrowse2Config{}, false
	}
	var out DCJBrowse2Config
	if err := document.Decode(document.Document(c.DCSpecificProperties), &out); err != nil {
		return DCJBrowse2Config{}, false
	}
	return out, true
}

// DataCollection describes one typed data source owned by a workflow.
type DataCollection struct {
	ID                oid.ObjectID   `json:"id"`
	DataCollectionTag string         `json:"data_collection_tag"`
	Config            Config         `json:"config"`
	Description       string         `json:"description,omitempty"`
	FlexibleMetadata  map[string]any `json:"flexible_metadata,omitempty"`
	Hash              string         `json:"hash,omitempty"`
}

// DataCollectionSchema validates data-collection records.
var DataCollectionSchema = schema.BaseRecord("data_collection",
	schema.Field{Name: "data_collection_tag", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "config", Required: true, Nested: ConfigSchema},
)

// New validates raw input and constructs an immutable DataCollection.
func New(raw document.Document) (*DataCollection, error) {
	doc, err := DataCollectionSchema.Validate(raw)
	if err != nil {
		return nil, err
	}
	var dc DataCollection
	if err := document.Decode(doc, &dc); err != nil {
		return nil, err
	}
	return &dc, nil
}

// FromStore constructs a DataCollection from a stored document.
func FromStore(doc document.Document) (*DataCollection, error) {
	return New(document.FromStore(doc))
}

// Document renders the collection back into mapping-layer shape.
func (dc *DataCollection) Document() (document.Document, error) {
	return document.Encode(dc)
}
