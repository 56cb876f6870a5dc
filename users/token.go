package users

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/oid"
	"github.com/depictio/depictio-models/schema"
	"github.com/depictio/depictio-models/validate"
)

// Token lifetimes and types.
const (
	LifetimeShortLived = "short-lived"
	LifetimeLongLived  = "long-lived"

	TokenTypeBearer = "bearer"
)

// Token is an access token bound to a user. Expiry is checked once at
// construction time and not continuously re-evaluated.
type Token struct {
	ID               oid.ObjectID   `json:"id"`
	UserID           oid.ObjectID   `json:"user_id"`
	AccessToken      string         `json:"access_token"`
	TokenType        string         `json:"token_type"`
	TokenLifetime    string         `json:"token_lifetime"`
	ExpireDatetime   string         `json:"expire_datetime"`
	Name             string         `json:"name,omitempty"`
	CreatedAt        string         `json:"created_at"`
	Description      string         `json:"description,omitempty"`
	FlexibleMetadata map[string]any `json:"flexible_metadata,omitempty"`
	Hash             string         `json:"hash,omitempty"`
}

// TokenSchema validates token records. The access token must satisfy the
// minimum complexity rules and the expiry must lie in the future.
var TokenSchema = schema.BaseRecord("token",
	schema.Field{Name: "user_id", Required: true, Rules: []validate.Rule{schema.Identifier}},
	schema.Field{Name: "access_token", Required: true, Rules: []validate.Rule{validate.AccessToken}},
	schema.Field{Name: "token_type", Default: TokenTypeBearer, Rules: []validate.Rule{validate.Enum(TokenTypeBearer)}},
	schema.Field{Name: "token_lifetime", Default: LifetimeShortLived,
		Rules: []validate.Rule{validate.Enum(LifetimeShortLived, LifetimeLongLived)}},
	schema.Field{Name: "expire_datetime", Required: true, Rules: []validate.Rule{validate.FutureDatetime}},
	schema.Field{Name: "name", Rules: []validate.Rule{validate.String}},
	schema.Field{Name: "created_at", DefaultFunc: func() any { return time.Now() },
		Rules: []validate.Rule{validate.Datetime}},
)

// NewToken validates raw input and constructs an immutable Token.
func NewToken(raw document.Document) (*Token, error) {
	doc, err := TokenSchema.Validate(raw)
	if err != nil {
		return nil, err
	}
	var t Token
	if err := document.Decode(doc, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// TokenFromStore constructs a Token from a stored document, renaming the
// storage primary key at every nesting level first.
func TokenFromStore(doc document.Document) (*Token, error) {
	return NewToken(document.FromStore(doc))
}

// Document renders the token back into mapping-layer shape.
func (t *Token) Document() (document.Document, error) {
	return document.Encode(t)
}

// ExpiresIn returns the remaining lifetime relative to now. Expired tokens
// loaded from the store yield a negative duration.
func (t *Token) ExpiresIn() time.Duration {
	expiry, err := validate.ParseDatetime(t.ExpireDatetime)
	if err != nil {
		return 0
	}
	return time.Until(expiry)
}

// TokenData is the claims projection of a token: who it belongs to and how
// long it lives, without the secret material.
type TokenData struct {
	Name          string       `json:"name,omitempty"`
	TokenLifetime string       `json:"token_lifetime"`
	Sub           oid.ObjectID `json:"sub"`
}

// TokenDataSchema validates token claims.
var TokenDataSchema = schema.New("token_data",
	schema.Field{Name: "name", Rules: []validate.Rule{validate.String}},
	schema.Field{Name: "token_lifetime", Default: LifetimeShortLived,
		Rules: []validate.Rule{validate.Enum(LifetimeShortLived, LifetimeLongLived)}},
	schema.Field{Name: "sub", Required: true, Rules: []validate.Rule{schema.Identifier}},
)

// Claims projects the token to its claims shape.
func (t *Token) Claims() TokenData {
	return TokenData{Name: t.Name, TokenLifetime: t.TokenLifetime, Sub: t.UserID}
}

// GenerateAccessToken produces a fresh access-token string satisfying the
// complexity rules: an uppercase-prefixed tag, the creation timestamp, and
// 32 hex characters of entropy.
func GenerateAccessToken() string {
	entropy := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("Dt%d%s", time.Now().Unix(), entropy)
}
