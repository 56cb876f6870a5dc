package config

import (
	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/s3"
	"github.com/depictio/depictio-models/schema"
	"github.com/depictio/depictio-models/users"
	"github.com/depictio/depictio-models/validate"
)

// CLIUser is the identity block of a CLI configuration file: the account
// plus the token the CLI authenticates with.
type CLIUser struct {
	Email   string      `json:"email"`
	IsAdmin bool        `json:"is_admin"`
	Token   users.Token `json:"token"`
}

// CLIConfig is the agent-side configuration: who is calling, where the API
// lives, and which object store run artifacts land in.
type CLIConfig struct {
	User    CLIUser    `json:"user"`
	BaseURL string     `json:"base_url"`
	S3      *s3.Config `json:"s3,omitempty"`
}

var cliUserSchema = schema.New("cli_user",
	schema.Field{Name: "email", Required: true, Rules: []validate.Rule{validate.Email}},
	schema.Field{Name: "is_admin", Default: false, Rules: []validate.Rule{validate.Bool}},
	schema.Field{Name: "token", Required: true, Nested: users.TokenSchema},
)

// CLIConfigSchema validates CLI configuration trees.
var CLIConfigSchema = schema.New("cli_config",
	schema.Field{Name: "user", Required: true, Nested: cliUserSchema},
	schema.Field{Name: "base_url", Required: true, Rules: []validate.Rule{validate.URL("http", "https")}},
	schema.Field{Name: "s3", Nested: s3.Schema},
)

// LoadCLI reads, substitutes, validates, and decodes a CLI configuration
// file in one step.
func LoadCLI(path string) (*CLIConfig, error) {
	doc, err := Load(path, nil)
	if err != nil {
		return nil, err
	}
	validated, err := Validate(doc, CLIConfigSchema)
	if err != nil {
		return nil, err
	}
	var cfg CLIConfig
	if err := document.Decode(validated, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
