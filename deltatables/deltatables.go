// Package deltatables defines the aggregated delta-table records built from
// table-kind data collections, plus the query and upsert shapes the API
// exchanges with clients.
package deltatables

import (
	"time"

	depictio "github.com/depictio/depictio-models"
	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/oid"
	"github.com/depictio/depictio-models/schema"
	"github.com/depictio/depictio-models/users"
	"github.com/depictio/depictio-models/validate"
)

// Column types the aggregation pipeline emits.
var ColumnTypes = []string{
	"int64", "float64", "bool", "datetime", "time", "object", "utf8",
}

// Column describes one column of an aggregated table.
type Column struct {
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	Specs       map[string]any `json:"specs,omitempty"`
}

// ColumnSchema validates column descriptors.
var ColumnSchema = schema.New("delta_table_column",
	schema.Field{Name: "name", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "type", Required: true, Rules: []validate.Rule{validate.Enum(ColumnTypes...)}},
	schema.Field{Name: "description", Rules: []validate.Rule{validate.Description}},
	schema.Field{Name: "specs", Rules: []validate.Rule{schema.OpenMap}},
)

// Aggregation records one materialization of a delta table.
type Aggregation struct {
	ID                 oid.ObjectID   `json:"id"`
	AggregationTime    string         `json:"aggregation_time"`
	AggregationBy      users.UserBase `json:"aggregation_by"`
	AggregationVersion int            `json:"aggregation_version"`
	AggregationHash    string         `json:"aggregation_hash"`
	AggregationColumns []Column       `json:"aggregation_columns,omitempty"`
	Description        string         `json:"description,omitempty"`
	FlexibleMetadata   map[string]any `json:"flexible_metadata,omitempty"`
	Hash               string         `json:"hash,omitempty"`
}

// AggregationSchema validates aggregation records.
var AggregationSchema = schema.BaseRecord("aggregation",
	schema.Field{Name: "aggregation_time",
		DefaultFunc: func() any { return time.Now().Format(validate.TimeLayout) },
		Rules:       []validate.Rule{validate.Datetime}},
	schema.Field{Name: "aggregation_by", Required: true, Nested: users.UserBaseSchema},
	schema.Field{Name: "aggregation_version", Default: 1, Rules: []validate.Rule{validate.Int, validate.Positive}},
	schema.Field{Name: "aggregation_hash", Required: true, Rules: []validate.Rule{validate.SHA256Hex}},
	schema.Field{Name: "aggregation_columns", NestedList: ColumnSchema},
)

// FilterCondition is a per-column predicate in a delta-table query. At
// least one bound must be present.
type FilterCondition struct {
	Above any `json:"above,omitempty"`
	Equal any `json:"equal,omitempty"`
	Under any `json:"under,omitempty"`
}

// FilterConditionSchema validates filter predicates.
var FilterConditionSchema = schema.New("filter_condition",
	schema.Field{Name: "above", Rules: []validate.Rule{scalar}},
	schema.Field{Name: "equal", Rules: []validate.Rule{scalar}},
	schema.Field{Name: "under", Rules: []validate.Rule{scalar}},
)

// scalar rejects composite filter bounds.
func scalar(value any) (any, error) {
	switch value.(type) {
	case map[string]any, document.Document, []any:
		return nil, depictio.NewFieldError(depictio.KindInvalidValue, "filter bound must be a scalar, got %T", value)
	}
	return value, nil
}

// Query selects columns and rows from an aggregated delta table.
type Query struct {
	ID               oid.ObjectID               `json:"id"`
	Columns          []string                   `json:"columns"`
	Filters          map[string]FilterCondition `json:"filters,omitempty"`
	Sort             []string                   `json:"sort,omitempty"`
	Limit            int                        `json:"limit,omitempty"`
	Offset           int                        `json:"offset,omitempty"`
	Description      string                     `json:"description,omitempty"`
	FlexibleMetadata map[string]any             `json:"flexible_metadata,omitempty"`
	Hash             string                     `json:"hash,omitempty"`
}

// QuerySchema validates delta-table queries.
var QuerySchema = schema.BaseRecord("delta_table_query",
	schema.Field{Name: "columns", Required: true, Each: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "filters", Default: map[string]any{}, NestedMap: FilterConditionSchema},
	schema.Field{Name: "sort", Each: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "limit", Rules: []validate.Rule{validate.Int, validate.Positive}},
	schema.Field{Name: "offset", Rules: []validate.Rule{validate.Int}},
)

// DeltaTable is the aggregated table record attached to a data collection.
type DeltaTable struct {
	ID                 oid.ObjectID   `json:"id"`
	DataCollectionID   oid.ObjectID   `json:"data_collection_id"`
	DeltaTableLocation string         `json:"delta_table_location"`
	Aggregation        []Aggregation  `json:"aggregation"`
	Description        string         `json:"description,omitempty"`
	FlexibleMetadata   map[string]any `json:"flexible_metadata,omitempty"`
	Hash               string         `json:"hash,omitempty"`
}

// DeltaTableSchema validates aggregated delta-table records.
var DeltaTableSchema = schema.BaseRecord("delta_table",
	schema.Field{Name: "data_collection_id", Required: true, Rules: []validate.Rule{schema.Identifier}},
	schema.Field{Name: "delta_table_location", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "aggregation", Default: []any{}, NestedList: AggregationSchema},
)

// Upsert is the write request for a delta-table location.
type Upsert struct {
	DataCollectionID   oid.ObjectID `json:"data_collection_id"`
	DeltaTableLocation string       `json:"delta_table_location"`
	Update             bool         `json:"update"`
}

// UpsertSchema validates delta-table upsert requests.
var UpsertSchema = schema.New("upsert_delta_table",
	schema.Field{Name: "data_collection_id", Required: true, Rules: []validate.Rule{schema.Identifier}},
	schema.Field{Name: "delta_table_location", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "update", Default: false, Rules: []validate.Rule{validate.Bool}},
)

// New validates raw input and constructs an immutable DeltaTable.
func New(raw document.Document) (*DeltaTable, error) {
	doc, err := DeltaTableSchema.Validate(raw)
	if err != nil {
		return nil, err
	}
	var dt DeltaTable
	if err := document.Decode(doc, &dt); err != nil {
		return nil, err
	}
	return &dt, nil
}

// FromStore constructs a DeltaTable from a stored document.
func FromStore(doc document.Document) (*DeltaTable, error) {
	return New(document.FromStore(doc))
}

// Document renders the delta table back into mapping-layer shape.
func (dt *DeltaTable) Document() (document.Document, error) {
	return document.Encode(dt)
}
