package users

import (
	"encoding/json"

	depictio "github.com/depictio/depictio-models"
	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/oid"
	"github.com/depictio/depictio-models/schema"
	"github.com/depictio/depictio-models/validate"
)

// ViewerWildcard is the literal accepted in the viewers role to grant read
// access to everyone.
const ViewerWildcard = "*"

// Permission assigns users to the three access roles. The roles are
// pairwise disjoint by user identity; overlap is a validation failure.
type Permission struct {
	Owners  []UserBase `json:"owners"`
	Editors []UserBase `json:"editors"`
	Viewers []UserBase `json:"viewers"`

	// Public records the wildcard entry of the viewers role.
	Public bool `json:"-"`
}

// viewerEntry accepts either a user reference or the wildcard literal.
// Only the viewers role admits the wildcard.
func viewerEntry(value any) (any, error) {
	if s, ok := value.(string); ok {
		if s == ViewerWildcard {
			return s, nil
		}
		return nil, depictio.NewFieldError(depictio.KindInvalidValue,
			"viewers accept user references or the %q wildcard, got %q", ViewerWildcard, s)
	}
	sub, ok := value.(map[string]any)
	if !ok {
		if d, isDoc := value.(document.Document); isDoc {
			sub = map[string]any(d)
		} else {
			return nil, depictio.NewFieldError(depictio.KindInvalidValue,
				"viewers accept user references or the %q wildcard, got %T", ViewerWildcard, value)
		}
	}
	return UserBaseSchema.Validate(restrictUserKeys(sub))
}

// restrictUserKeys keeps only the reference fields of a raw user entry, so
// full account payloads pasted into permission lists validate as
// references.
func restrictUserKeys(raw map[string]any) document.Document {
	out := make(document.Document, 4)
	for _, key := range []string{"id", "_id", "email", "is_admin", "groups"} {
		if v, ok := raw[key]; ok {
			out[key] = v
		}
	}
	return out
}

func roleEntry(value any) (any, error) {
	sub, ok := value.(map[string]any)
	if !ok {
		if d, isDoc := value.(document.Document); isDoc {
			sub = map[string]any(d)
		} else {
			return nil, depictio.NewFieldError(depictio.KindInvalidValue,
				"expected a user reference, got %T", value)
		}
	}
	return UserBaseSchema.Validate(restrictUserKeys(sub))
}

// PermissionSchema validates permission records: each role list is
// validated first, then the disjointness invariant across all three.
var PermissionSchema = schema.New("permission",
	schema.Field{Name: "owners", Default: []any{}, Each: []validate.Rule{roleEntry}},
	schema.Field{Name: "editors", Default: []any{}, Each: []validate.Rule{roleEntry}},
	schema.Field{Name: "viewers", Default: []any{}, Each: []validate.Rule{viewerEntry}},
).PostValidate(disjointRoles)

func disjointRoles(doc document.Document) (document.Document, error) {
	owners := roleIDs(doc, "owners")
	editors := roleIDs(doc, "editors")
	viewers := roleIDs(doc, "viewers")

	if overlap(owners, editors) {
		return nil, roleOverlapError("owners", "a user cannot be both an owner and an editor")
	}
	if overlap(owners, viewers) {
		return nil, roleOverlapError("owners", "a user cannot be both an owner and a viewer")
	}
	if overlap(editors, viewers) {
		return nil, roleOverlapError("editors", "a user cannot be both an editor and a viewer")
	}
	return doc, nil
}

func roleOverlapError(path, reason string) error {
	return &depictio.FieldError{Path: path, Kind: depictio.KindDisjointnessViolation, Reason: reason}
}

func roleIDs(doc document.Document, role string) map[oid.ObjectID]struct{} {
	ids := make(map[oid.ObjectID]struct{})
	for _, entry := range document.GetList(doc, role) {
		sub, ok := entry.(document.Document)
		if !ok {
			continue // wildcard entries carry no identity
		}
		ids[document.GetOID(sub, "id")] = struct{}{}
	}
	return ids
}

func overlap(a, b map[oid.ObjectID]struct{}) bool {
	for id := range a {
		if _, ok := b[id]; ok {
			return true
		}
	}
	return false
}

// NewPermission validates raw input and constructs an immutable Permission.
func NewPermission(raw document.Document) (*Permission, error) {
	doc, err := PermissionSchema.Validate(raw)
	if err != nil {
		return nil, err
	}
	var p Permission
	if err := document.Decode(doc, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UnmarshalJSON splits the viewers role into user references and the
// wildcard flag.
func (p *Permission) UnmarshalJSON(data []byte) error {
	var raw struct {
		Owners  []UserBase        `json:"owners"`
		Editors []UserBase        `json:"editors"`
		Viewers []json.RawMessage `json:"viewers"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Owners = raw.Owners
	p.Editors = raw.Editors
	p.Viewers = nil
	p.Public = false
	for _, entry := range raw.Viewers {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			if s == ViewerWildcard {
				p.Public = true
			}
			continue
		}
		var u UserBase
		if err := json.Unmarshal(entry, &u); err != nil {
			return err
		}
		p.Viewers = append(p.Viewers, u)
	}
	return nil
}

// MarshalJSON renders the wildcard back into the viewers list so
// round-trips through the mapping layer are exact.
func (p Permission) MarshalJSON() ([]byte, error) {
	viewers := make([]any, 0, len(p.Viewers)+1)
	for _, v := range p.Viewers {
		viewers = append(viewers, v)
	}
	if p.Public {
		viewers = append(viewers, ViewerWildcard)
	}
	return json.Marshal(map[string]any{
		"owners":  p.Owners,
		"editors": p.Editors,
		"viewers": viewers,
	})
}
