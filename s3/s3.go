// Package s3 defines the object-storage connection settings carried by the
// CLI configuration. Only configuration shape is validated here; no client
// is constructed.
package s3

import (
	"fmt"

	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/schema"
	"github.com/depictio/depictio-models/validate"
)

// Config holds MinIO-compatible object storage settings.
type Config struct {
	Provider     string `json:"provider"`
	Bucket       string `json:"bucket"`
	Endpoint     string `json:"endpoint_url"`
	Port         int    `json:"port"`
	RootUser     string `json:"root_user"`
	RootPassword string `json:"root_password"`
}

// Schema validates object-storage settings.
var Schema = schema.New("s3_config",
	schema.Field{Name: "provider", Default: "minio", Rules: []validate.Rule{validate.Enum("minio")}},
	schema.Field{Name: "bucket", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "endpoint_url", Default: "http://localhost",
		Rules: []validate.Rule{validate.URL("http", "https")}},
	schema.Field{Name: "port", Default: 9000, Rules: []validate.Rule{validate.Int, validate.Range(1, 65535)}},
	schema.Field{Name: "root_user", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "root_password", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
)

// New validates raw input and constructs a Config.
func New(raw document.Document) (*Config, error) {
	doc, err := Schema.Validate(raw)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := document.Decode(doc, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Address joins the endpoint and port into a connection address.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Endpoint, c.Port)
}
