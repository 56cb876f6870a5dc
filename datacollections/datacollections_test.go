package datacollections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	depictio "github.com/depictio/depictio-models"
	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/oid"
)

func tableConfigDoc() document.Document {
	return document.Document{
		"type": "table",
		"regex": map[string]any{
			"pattern": `.*\.counts\.tsv`,
			"type":    "file-based",
		},
		"dc_specific_properties": map[string]any{
			"format":    "tsv",
			"separator": "\t",
		},
	}
}

func TestNewDataCollection(t *testing.T) {
	dc, err := New(document.Document{
		"data_collection_tag": "gene_counts",
		"config":              tableConfigDoc(),
	})
	require.NoError(t, err)

	assert.Equal(t, "gene_counts", dc.DataCollectionTag)
	assert.Equal(t, TypeTable, dc.Config.Type)
	assert.False(t, dc.ID.IsZero())

	table, ok := dc.Config.TableConfig()
	require.True(t, ok)
	assert.Equal(t, "tsv", table.Format)
	assert.True(t, table.HasHeader, "default applied")

	_, ok = dc.Config.JBrowse2Config()
	assert.False(t, ok)
}

func TestNewDataCollectionJBrowse2(t *testing.T) {
	dc, err := New(document.Document{
		"data_collection_tag": "genome_tracks",
		"config": map[string]any{
			"type": "jbrowse2",
			"regex": map[string]any{
				"pattern": `.*\.bw`,
				"type":    "path-based",
			},
			"dc_specific_properties": map[string]any{
				"jbrowse_template_location": "/templates/bigwig.json",
				"index_extension":           "bai",
			},
		},
	})
	require.NoError(t, err)

	jb, ok := dc.Config.JBrowse2Config()
	require.True(t, ok)
	assert.Equal(t, "/templates/bigwig.json", jb.TemplateLocation)
}

func TestUnknownTypeTagFailsBeforePayload(t *testing.T) {
	cfg := tableConfigDoc()
	cfg["type"] = "graph"

	_, err := ConfigSchema.Validate(cfg)
	require.Error(t, err)
	assert.Equal(t, depictio.KindInvalidEnum, depictio.KindOf(err))
	assert.Equal(t, "type", depictio.PathOf(err))
}

func TestMismatchedPayloadIsDiscriminatorError(t *testing.T) {
	cfg := tableConfigDoc()
	cfg["dc_specific_properties"] = map[string]any{
		"jbrowse_template_location": "/templates/bigwig.json",
	}

	_, err := ConfigSchema.Validate(cfg)
	require.Error(t, err)
	assert.Equal(t, depictio.KindDiscriminatorMismatch, depictio.KindOf(err))
}

func TestRegexMustCompile(t *testing.T) {
	cfg := tableConfigDoc()
	cfg["regex"] = map[string]any{"pattern": "([unclosed", "type": "file-based"}

	_, err := ConfigSchema.Validate(cfg)
	require.Error(t, err)
	assert.Equal(t, depictio.KindInvalidPattern, depictio.KindOf(err))
	assert.Equal(t, "regex.pattern", depictio.PathOf(err))
}

func TestRegexScanTypeEnum(t *testing.T) {
	cfg := tableConfigDoc()
	cfg["regex"] = map[string]any{"pattern": ".*", "type": "glob-based"}

	_, err := ConfigSchema.Validate(cfg)
	require.Error(t, err)
	assert.Equal(t, depictio.KindInvalidEnum, depictio.KindOf(err))
}

func TestTableJoinValidation(t *testing.T) {
	doc, err := TableJoinSchema.Validate(document.Document{
		"on_columns": []any{"sample_id"},
		"how":        "Inner",
		"with_dc":    []any{"metadata"},
	})
	require.NoError(t, err)
	assert.Equal(t, JoinInner, doc["how"], "join mode normalized")

	_, err = TableJoinSchema.Validate(document.Document{
		"on_columns": []any{"sample_id"},
		"how":        "cross",
		"with_dc":    []any{"metadata"},
	})
	require.Error(t, err)
}

func TestWildcardsValidated(t *testing.T) {
	cfg := tableConfigDoc()
	cfg["regex"] = map[string]any{
		"pattern": `(?P<sample>\w+)\.tsv`,
		"type":    "file-based",
		"wildcards": []any{
			map[string]any{"name": "sample", "wildcard_regex": `\w+`},
		},
	}

	_, err := ConfigSchema.Validate(cfg)
	require.NoError(t, err)
}

func TestFromStoreRenamesIDs(t *testing.T) {
	id := oid.New()
	dc, err := FromStore(document.Document{
		"_id":                 id.Hex(),
		"data_collection_tag": "gene_counts",
		"config":              tableConfigDoc(),
	})
	require.NoError(t, err)
	assert.Equal(t, id, dc.ID)
}

func TestDocumentRoundTrip(t *testing.T) {
	dc, err := New(document.Document{
		"data_collection_tag": "gene_counts",
		"config":              tableConfigDoc(),
	})
	require.NoError(t, err)

	doc, err := dc.Document()
	require.NoError(t, err)

	back, err := New(doc)
	require.NoError(t, err)
	assert.Equal(t, dc.ID, back.ID)
	assert.Equal(t, dc.DataCollectionTag, back.DataCollectionTag)
}
