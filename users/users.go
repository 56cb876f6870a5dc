package users

import (
	depictio "github.com/depictio/depictio-models"
	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/oid"
	"github.com/depictio/depictio-models/schema"
	"github.com/depictio/depictio-models/validate"
)

// Group is a named collection of users.
type Group struct {
	ID               oid.ObjectID   `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	FlexibleMetadata map[string]any `json:"flexible_metadata,omitempty"`
	Hash             string         `json:"hash,omitempty"`
}

// GroupSchema validates group records.
var GroupSchema = schema.BaseRecord("group",
	schema.Field{Name: "name", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
)

// NewGroup validates raw input and constructs an immutable Group.
func NewGroup(raw document.Document) (*Group, error) {
	doc, err := GroupSchema.Validate(raw)
	if err != nil {
		return nil, err
	}
	var g Group
	if err := document.Decode(doc, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Groupless is the smallest user projection: identity, email, admin flag.
type Groupless struct {
	ID               oid.ObjectID   `json:"id"`
	Email            string         `json:"email"`
	IsAdmin          bool           `json:"is_admin"`
	Description      string         `json:"description,omitempty"`
	FlexibleMetadata map[string]any `json:"flexible_metadata,omitempty"`
	Hash             string         `json:"hash,omitempty"`
}

// UserBase is the user reference shape carried by permission lists and
// group membership.
type UserBase struct {
	Groupless
	Groups []Group `json:"groups"`
}

// UserBaseSchema validates user references.
var UserBaseSchema = schema.BaseRecord("user_base",
	schema.Field{Name: "email", Required: true, Rules: []validate.Rule{validate.Email}},
	schema.Field{Name: "is_admin", Default: false, Rules: []validate.Rule{validate.Bool}},
	schema.Field{Name: "groups", Default: []any{}, NestedList: GroupSchema},
)

// NewUserBase validates raw input and constructs an immutable UserBase.
func NewUserBase(raw document.Document) (*UserBase, error) {
	doc, err := UserBaseSchema.Validate(raw)
	if err != nil {
		return nil, err
	}
	var u UserBase
	if err := document.Decode(doc, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GroupWithUsers is a group expanded with its member references.
// Membership is unique by user identity.
type GroupWithUsers struct {
	Group
	Users []UserBase `json:"users"`
}

// GroupWithUsersSchema validates expanded groups and rejects duplicated
// members.
var GroupWithUsersSchema = schema.BaseRecord("group_with_users",
	schema.Field{Name: "name", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
	schema.Field{Name: "users", Default: []any{}, NestedList: UserBaseSchema},
).PostValidate(uniqueMembers)

func uniqueMembers(doc document.Document) (document.Document, error) {
	seen := make(map[oid.ObjectID]struct{})
	for _, member := range document.GetDocList(doc, "users") {
		id := document.GetOID(member, "id")
		if _, dup := seen[id]; dup {
			return nil, &depictio.FieldError{
				Path:   "users",
				Kind:   depictio.KindDuplicateMember,
				Reason: "user " + id.Hex() + " appears more than once in the group",
			}
		}
		seen[id] = struct{}{}
	}
	return doc, nil
}

// NewGroupWithUsers validates raw input and constructs an immutable
// GroupWithUsers.
func NewGroupWithUsers(raw document.Document) (*GroupWithUsers, error) {
	doc, err := GroupWithUsersSchema.Validate(raw)
	if err != nil {
		return nil, err
	}
	var g GroupWithUsers
	if err := document.Decode(doc, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// User is the full account record. The password field accepts only
// pre-hashed bcrypt values; plaintext never validates.
type User struct {
	UserBase
	Tokens             []Token `json:"tokens"`
	CurrentAccessToken string  `json:"current_access_token,omitempty"`
	IsActive           bool    `json:"is_active"`
	IsVerified         bool    `json:"is_verified"`
	LastLogin          string  `json:"last_login,omitempty"`
	RegistrationDate   string  `json:"registration_date,omitempty"`
	Password           string  `json:"password"`
}

// UserSchema validates full account records.
var UserSchema = schema.BaseRecord("user",
	schema.Field{Name: "email", Required: true, Rules: []validate.Rule{validate.Email}},
	schema.Field{Name: "is_admin", Default: false, Rules: []validate.Rule{validate.Bool}},
	schema.Field{Name: "groups", Default: []any{}, NestedList: GroupSchema},
	schema.Field{Name: "tokens", Default: []any{}, NestedList: TokenSchema},
	schema.Field{Name: "current_access_token", Rules: []validate.Rule{validate.String}},
	schema.Field{Name: "is_active", Default: true, Rules: []validate.Rule{validate.Bool}},
	schema.Field{Name: "is_verified", Default: false, Rules: []validate.Rule{validate.Bool}},
	schema.Field{Name: "last_login", Rules: []validate.Rule{validate.Datetime}},
	schema.Field{Name: "registration_date", Rules: []validate.Rule{validate.Datetime}},
	schema.Field{Name: "password", Required: true, Rules: []validate.Rule{validate.HashedPassword}},
)

// NewUser validates raw input and constructs an immutable User.
func NewUser(raw document.Document) (*User, error) {
	doc, err := UserSchema.Validate(raw)
	if err != nil {
		return nil, err
	}
	var u User
	if err := document.Decode(doc, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UserFromStore constructs a User from a stored document.
func UserFromStore(doc document.Document) (*User, error) {
	return NewUser(document.FromStore(doc))
}

// Document renders the user back into mapping-layer shape.
func (u *User) Document() (document.Document, error) {
	return document.Encode(u)
}

// AsUserBase projects the user to its reference shape.
func (u *User) AsUserBase() UserBase {
	return u.UserBase
}

// AsGroupless projects the user to its smallest shape.
func (u *User) AsGroupless() Groupless {
	return u.Groupless
}
