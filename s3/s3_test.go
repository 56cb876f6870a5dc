package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	depictio "github.com/depictio/depictio-models"
	"github.com/depictio/depictio-models/document"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := New(document.Document{
		"bucket":        "depictio-data",
		"root_user":     "minio",
		"root_password": "minio123",
	})
	require.NoError(t, err)

	assert.Equal(t, "minio", cfg.Provider)
	assert.Equal(t, "http://localhost", cfg.Endpoint)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "http://localhost:9000", cfg.Address())
}

func TestNewConfigRequiresCredentials(t *testing.T) {
	_, err := New(document.Document{"bucket": "depictio-data"})
	require.Error(t, err)
	assert.Equal(t, depictio.KindMissingRequiredField, depictio.KindOf(err))
}

func TestNewConfigPortRange(t *testing.T) {
	_, err := New(document.Document{
		"bucket":        "depictio-data",
		"root_user":     "minio",
		"root_password": "minio123",
		"port":          70000,
	})
	require.Error(t, err)
	assert.Equal(t, "port", depictio.PathOf(err))
}

func TestNewConfigEndpointScheme(t *testing.T) {
	_, err := New(document.Document{
		"bucket":        "depictio-data",
		"root_user":     "minio",
		"root_password": "minio123",
		"endpoint_url":  "s3://bucket",
	})
	require.Error(t, err)
	assert.Equal(t, depictio.KindInvalidURL, depictio.KindOf(err))
}
