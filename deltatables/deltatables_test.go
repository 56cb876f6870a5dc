package deltatables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	depictio "github.com/depictio/depictio-models"
	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/oid"
)

const aggregationHash = "a3f5b8c2d1e4f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a1"

func aggregationDoc() map[string]any {
	return map[string]any{
		"aggregation_by":   map[string]any{"id": oid.New().Hex(), "email": "pipeline@example.com"},
		"aggregation_hash": aggregationHash,
		"aggregation_columns": []any{
			map[string]any{"name": "sample_id", "type": "utf8"},
			map[string]any{"name": "counts", "type": "int64"},
		},
	}
}

func TestNewDeltaTable(t *testing.T) {
	dt, err := New(document.Document{
		"data_collection_id":   oid.New().Hex(),
		"delta_table_location": "s3://depictio/tables/gene_counts",
		"aggregation":          []any{aggregationDoc()},
	})
	require.NoError(t, err)

	assert.False(t, dt.ID.IsZero())
	require.Len(t, dt.Aggregation, 1)
	agg := dt.Aggregation[0]
	assert.Equal(t, 1, agg.AggregationVersion, "default applied")
	assert.NotEmpty(t, agg.AggregationTime)
	assert.Equal(t, "pipeline@example.com", agg.AggregationBy.Email)
	require.Len(t, agg.AggregationColumns, 2)
	assert.Equal(t, "utf8", agg.AggregationColumns[0].Type)
}

func TestDeltaTableDefaultsToNoAggregations(t *testing.T) {
	dt, err := New(document.Document{
		"data_collection_id":   oid.New().Hex(),
		"delta_table_location": "s3://depictio/tables/gene_counts",
	})
	require.NoError(t, err)
	assert.Empty(t, dt.Aggregation)
}

func TestColumnTypeEnum(t *testing.T) {
	_, err := ColumnSchema.Validate(document.Document{"name": "c", "type": "varchar"})
	require.Error(t, err)
	assert.Equal(t, depictio.KindInvalidEnum, depictio.KindOf(err))
}

func TestAggregationHashIsSHA256Variant(t *testing.T) {
	doc := aggregationDoc()
	doc["aggregation_hash"] = "9e107d9d372bb6826bd81d3542a419d6" // md5-sized

	_, err := AggregationSchema.Validate(doc)
	require.Error(t, err)
	assert.Equal(t, depictio.KindInvalidHashLength, depictio.KindOf(err))
}

func TestQueryValidation(t *testing.T) {
	doc, err := QuerySchema.Validate(document.Document{
		"columns": []any{"sample_id", "counts"},
		"filters": map[string]any{
			"counts": map[string]any{"above": 10},
		},
		"sort":  []any{"counts"},
		"limit": 100,
	})
	require.NoError(t, err)

	filters := doc["filters"].(document.Document)
	require.Contains(t, filters, "counts")
}

func TestQueryRejectsCompositeFilterBound(t *testing.T) {
	_, err := QuerySchema.Validate(document.Document{
		"columns": []any{"counts"},
		"filters": map[string]any{
			"counts": map[string]any{"equal": map[string]any{"$ne": 0}},
		},
	})
	require.Error(t, err)
	assert.Equal(t, depictio.KindInvalidValue, depictio.KindOf(err))
}

func TestQueryRequiresColumns(t *testing.T) {
	_, err := QuerySchema.Validate(document.Document{})
	require.Error(t, err)
	assert.Equal(t, "columns", depictio.PathOf(err))
}

func TestUpsertValidation(t *testing.T) {
	doc, err := UpsertSchema.Validate(document.Document{
		"data_collection_id":   oid.New().Hex(),
		"delta_table_location": "s3://depictio/tables/gene_counts",
	})
	require.NoError(t, err)
	assert.Equal(t, false, doc["update"], "default applied")
}

func TestDeltaTableFromStore(t *testing.T) {
	id := oid.New()
	dt, err := FromStore(document.Document{
		"_id":                  id.Hex(),
		"data_collection_id":   oid.New().Hex(),
		"delta_table_location": "s3://depictio/tables/gene_counts",
	})
	require.NoError(t, err)
	assert.Equal(t, id, dt.ID)
}
