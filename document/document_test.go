package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depictio/depictio-models/oid"
)

func TestFromStoreRenamesAtEveryLevel(t *testing.T) {
	id := oid.New().Hex()
	nestedID := oid.New().Hex()
	stored := Document{
		"_id":  id,
		"name": "proj",
		"workflows": []any{
			map[string]any{"_id": nestedID, "name": "wf"},
		},
	}

	doc := FromStore(stored)

	assert.Equal(t, id, doc["id"])
	_, hasAlias := doc["_id"]
	assert.False(t, hasAlias)

	wf := doc["workflows"].([]any)[0].(Document)
	assert.Equal(t, nestedID, wf["id"])
	_, hasAlias = wf["_id"]
	assert.False(t, hasAlias)

	// input untouched
	assert.Equal(t, id, stored["_id"])
}

func TestFromStoreKeepsHashVerbatim(t *testing.T) {
	stored := Document{"_id": oid.New().Hex(), "hash": "stored-hash-value"}
	doc := FromStore(stored)
	assert.Equal(t, "stored-hash-value", doc["hash"])
}

func TestToStoreRenamesIDByDefault(t *testing.T) {
	id := oid.New()
	out := ToStore(Document{"id": id, "name": "proj"})

	assert.Equal(t, id.Hex(), out["_id"])
	_, hasID := out["id"]
	assert.False(t, hasID)
	assert.Equal(t, "proj", out["name"])
}

func TestToStoreByAliasDisabled(t *testing.T) {
	id := oid.New()
	out := ToStore(Document{"id": id}, ByAlias(false))

	assert.Equal(t, id.Hex(), out["id"])
	_, hasAlias := out["_id"]
	assert.False(t, hasAlias)
}

func TestToStoreExcludeUnset(t *testing.T) {
	raw := Document{"name": "proj"}
	validated := Document{
		"id":        oid.New(),
		"name":      "proj",
		"is_public": false, // default, never supplied
	}

	out := ToStore(validated, ExcludeUnset(raw))

	assert.Contains(t, out, "_id", "identity always survives")
	assert.Contains(t, out, "name")
	assert.NotContains(t, out, "is_public")
}

func TestRoundTripIsStable(t *testing.T) {
	id := oid.New()
	original := Document{
		"id":   id,
		"name": "proj",
		"workflows": []any{
			map[string]any{"id": oid.New().Hex(), "name": "wf"},
		},
	}

	once := FromStore(ToStore(original))
	twice := FromStore(ToStore(once))
	assert.Equal(t, once, twice)
}

func TestSparseDropsNulls(t *testing.T) {
	out := Sparse(Document{
		"id":          oid.New(),
		"name":        "proj",
		"description": nil,
		"nested":      map[string]any{"keep": 1, "drop": nil},
	})

	assert.NotContains(t, out, "description")
	nested := out["nested"].(Document)
	assert.NotContains(t, nested, "drop")
	assert.Contains(t, nested, "keep")
}

func TestCloneIsDeep(t *testing.T) {
	doc := Document{"nested": map[string]any{"k": "v"}}
	clone := Clone(doc)
	clone["nested"].(map[string]any)["k"] = "changed"
	assert.Equal(t, "v", doc["nested"].(map[string]any)["k"])
}

func TestGetters(t *testing.T) {
	id := oid.New()
	doc := Document{
		"name":  "proj",
		"count": 3,
		"flag":  true,
		"sub":   map[string]any{"k": "v"},
		"tags":  []any{"a", "b"},
		"oid":   id.Hex(),
	}

	assert.Equal(t, "proj", GetString(doc, "name", ""))
	assert.Equal(t, "fallback", GetString(doc, "missing", "fallback"))
	assert.Equal(t, 3, GetInt(doc, "count", 0))
	assert.True(t, GetBool(doc, "flag", false))
	require.NotNil(t, GetDoc(doc, "sub"))
	assert.Equal(t, []string{"a", "b"}, GetStringList(doc, "tags"))
	assert.Equal(t, id, GetOID(doc, "oid"))
}

func TestEncodeDecode(t *testing.T) {
	type record struct {
		ID   oid.ObjectID `json:"id"`
		Name string       `json:"name"`
	}
	in := record{ID: oid.New(), Name: "proj"}

	doc, err := Encode(in)
	require.NoError(t, err)
	assert.Equal(t, in.ID.Hex(), doc["id"])

	var out record
	require.NoError(t, Decode(doc, &out))
	assert.Equal(t, in, out)
}
