package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depictio/depictio-models/oid"
	"github.com/depictio/depictio-models/users"
)

func cliConfigYAML(t *testing.T) string {
	t.Helper()
	content := fmt.Sprintf(`
user:
  email: agent@example.com
  token:
    user_id: %s
    access_token: %s
    expire_datetime: "%s"
base_url: https://api.depictio.example.com
s3:
  bucket: depictio-data
  root_user: minio
  root_password: minio123
`,
		oid.New().Hex(),
		users.GenerateAccessToken(),
		time.Now().Add(24*time.Hour).Format("2006-01-02 15:04:05"),
	)
	path := filepath.Join(t.TempDir(), "cli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCLI(t *testing.T) {
	cfg, err := LoadCLI(cliConfigYAML(t))
	require.NoError(t, err)

	assert.Equal(t, "agent@example.com", cfg.User.Email)
	assert.False(t, cfg.User.IsAdmin)
	assert.Equal(t, "bearer", cfg.User.Token.TokenType)
	assert.Equal(t, "https://api.depictio.example.com", cfg.BaseURL)
	require.NotNil(t, cfg.S3)
	assert.Equal(t, "depictio-data", cfg.S3.Bucket)
	assert.Equal(t, 9000, cfg.S3.Port)
}

func TestLoadCLIRejectsMissingToken(t *testing.T) {
	content := `
user:
  email: agent@example.com
base_url: https://api.depictio.example.com
`
	path := filepath.Join(t.TempDir(), "cli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadCLI(path)
	require.Error(t, err)
}
