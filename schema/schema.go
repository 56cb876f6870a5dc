package schema

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	depictio "github.com/depictio/depictio-models"
	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/oid"
	"github.com/depictio/depictio-models/validate"
)

// ModelRule is a cross-field validation step operating on the whole field
// map, after per-field validation. Rules returning an error must set the
// failing path themselves.
type ModelRule func(doc document.Document) (document.Document, error)

// Field declares one schema field: its name, whether it is required, an
// optional default, an ordered rule pipeline, and optional nested shapes.
type Field struct {
	// Name is the document key.
	Name string

	// Required marks the field as mandatory; an absent or null value fails
	// with a missing-required-field error.
	Required bool

	// Default is used when the field is absent or null. DefaultFunc takes
	// precedence and is evaluated per record (for generated values).
	Default     any
	DefaultFunc func() any

	// Rules is the ordered pipeline applied to the field value.
	Rules []validate.Rule

	// Each applies a rule pipeline to every element of a list value, with
	// the element index appended to the error path.
	Each []validate.Rule

	// Nested validates the value as a single embedded record.
	Nested *Schema

	// NestedList validates the value as a list of embedded records.
	NestedList *Schema

	// NestedMap validates the value as a string-keyed map of embedded
	// records (e.g. workflow runs keyed by run tag).
	NestedMap *Schema

	// Discriminator and Variants make this field a discriminated union: the
	// sibling field named Discriminator selects the concrete schema from
	// Variants before the payload's own fields are parsed. The
	// discriminator field must be declared before this one.
	Discriminator string
	Variants      map[string]*Schema
}

// Schema is a declarative record definition: an ordered field list, the
// closed-world policy, and the pre/post model rules.
type Schema struct {
	name      string
	fields    []Field
	known     map[string]struct{}
	hasID     bool
	allowRaw  bool
	preRules  []ModelRule
	postRules []ModelRule
	logger    *slog.Logger
}

// New creates a closed-world schema without identity reconciliation, for
// plain embedded records. Fields are validated in the given order.
func New(name string, fields ...Field) *Schema {
	s := &Schema{
		name:   name,
		fields: fields,
		known:  make(map[string]struct{}, len(fields)+2),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, f := range fields {
		s.known[f.Name] = struct{}{}
	}
	return s
}

// BaseRecord creates a schema for a persisted entity: identity
// reconciliation is enabled and the shared base fields every persisted
// record carries (sanitized description, open flexible metadata, optional
// hash) are appended after the entity's own fields.
func BaseRecord(name string, fields ...Field) *Schema {
	base := append(fields,
		Field{Name: "description", Rules: []validate.Rule{validate.Description}},
		Field{Name: "flexible_metadata", Rules: []validate.Rule{OpenMap}},
		Field{Name: "hash", Rules: []validate.Rule{validate.String}},
	)
	s := New(name, base...)
	s.hasID = true
	s.known[document.IDKey] = struct{}{}
	s.known[document.StoreIDKey] = struct{}{}
	return s
}

// Name returns the schema's entity name.
func (s *Schema) Name() string { return s.name }

// WithIdentity enables identity reconciliation on a schema built with New.
func (s *Schema) WithIdentity() *Schema {
	s.hasID = true
	s.known[document.IDKey] = struct{}{}
	s.known[document.StoreIDKey] = struct{}{}
	return s
}

// AllowExtra opens the schema: unknown fields pass through unvalidated
// instead of being rejected.
func (s *Schema) AllowExtra() *Schema {
	s.allowRaw = true
	return s
}

// PreValidate appends raw-shape normalization rules, run after identity
// reconciliation and before per-field validation.
func (s *Schema) PreValidate(rules ...ModelRule) *Schema {
	s.preRules = append(s.preRules, rules...)
	return s
}

// PostValidate appends cross-field rules, run after per-field validation.
func (s *Schema) PostValidate(rules ...ModelRule) *Schema {
	s.postRules = append(s.postRules, rules...)
	return s
}

// WithLogger injects a diagnostics sink. Validation results never depend on
// it; the default discards everything.
func (s *Schema) WithLogger(logger *slog.Logger) *Schema {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Validate runs the full ordered validation over a raw document and returns
// the normalized field map. The input is never modified, and no partially
// validated document is ever returned: the first failing phase aborts the
// record.
func (s *Schema) Validate(raw document.Document) (document.Document, error) {
	if raw == nil {
		return nil, depictio.NewFieldError(depictio.KindMissingRequiredField,
			"%s: document is nil", s.name)
	}
	doc := document.Clone(raw)
	s.logger.Debug("validating record", "schema", s.name)

	if s.hasID {
		if err := reconcileID(doc); err != nil {
			return nil, err
		}
	}

	for _, rule := range s.preRules {
		var err error
		if doc, err = rule(doc); err != nil {
			return nil, err
		}
	}

	if !s.allowRaw {
		if err := s.rejectUnknown(doc); err != nil {
			return nil, err
		}
	}

	for _, f := range s.fields {
		if err := s.validateField(doc, f); err != nil {
			return nil, err
		}
	}

	for _, rule := range s.postRules {
		var err error
		if doc, err = rule(doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// ValidateBatch validates every document, never stopping at the first bad
// record. It returns one result slot per input: errs[i] is nil exactly when
// docs[i] validated, in which case out[i] holds the normalized field map.
func (s *Schema) ValidateBatch(docs []document.Document) (out []document.Document, errs []error) {
	out = make([]document.Document, len(docs))
	errs = make([]error, len(docs))
	for i, doc := range docs {
		out[i], errs[i] = s.Validate(doc)
	}
	return out, errs
}

// reconcileID assigns exactly one validated identifier per record, before
// any other field validator runs: a non-null "_id" alias wins, then a
// non-null "id", then a freshly generated identifier.
func reconcileID(doc document.Document) error {
	if v, ok := doc[document.StoreIDKey]; ok && v != nil {
		id, err := oid.FromAny(v)
		if err != nil {
			return depictio.Prefix(err, document.StoreIDKey)
		}
		delete(doc, document.StoreIDKey)
		doc[document.IDKey] = id
		return nil
	}
	delete(doc, document.StoreIDKey)
	if v, ok := doc[document.IDKey]; ok && v != nil {
		id, err := oid.FromAny(v)
		if err != nil {
			return depictio.Prefix(err, document.IDKey)
		}
		doc[document.IDKey] = id
		return nil
	}
	doc[document.IDKey] = oid.New()
	return nil
}

func (s *Schema) rejectUnknown(doc document.Document) error {
	var unknown []string
	for key := range doc {
		if _, ok := s.known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &depictio.FieldError{
		Path:   unknown[0],
		Kind:   depictio.KindUnexpectedField,
		Reason: fmt.Sprintf("unexpected field for %s", s.name),
	}
}

func (s *Schema) validateField(doc document.Document, f Field) error {
	value, present := doc[f.Name]
	if !present || value == nil {
		switch {
		case f.DefaultFunc != nil:
			value = f.DefaultFunc()
		case f.Default != nil:
			value = f.Default
		case f.Required:
			return &depictio.FieldError{
				Path:   f.Name,
				Kind:   depictio.KindMissingRequiredField,
				Reason: fmt.Sprintf("%s is required", f.Name),
			}
		default:
			return nil
		}
	}

	var err error
	for _, rule := range f.Rules {
		if value, err = rule(value); err != nil {
			return depictio.Prefix(err, f.Name)
		}
	}

	switch {
	case len(f.Each) > 0:
		if value, err = s.validateEach(f, value); err != nil {
			return err
		}
	case f.Variants != nil:
		if value, err = s.validateVariant(doc, f, value); err != nil {
			return err
		}
	case f.Nested != nil:
		sub, ok := asDocument(value)
		if !ok {
			return &depictio.FieldError{Path: f.Name, Kind: depictio.KindInvalidValue,
				Reason: fmt.Sprintf("expected a nested %s record, got %T", f.Nested.name, value)}
		}
		if value, err = f.Nested.Validate(sub); err != nil {
			return depictio.Prefix(err, f.Name)
		}
	case f.NestedList != nil:
		if value, err = s.validateNestedList(f, value); err != nil {
			return err
		}
	case f.NestedMap != nil:
		if value, err = s.validateNestedMap(f, value); err != nil {
			return err
		}
	}

	doc[f.Name] = value
	return nil
}

func (s *Schema) validateEach(f Field, value any) (any, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, &depictio.FieldError{Path: f.Name, Kind: depictio.KindInvalidValue,
			Reason: fmt.Sprintf("expected a list, got %T", value)}
	}
	out := make([]any, len(list))
	for i, item := range list {
		var err error
		for _, rule := range f.Each {
			if item, err = rule(item); err != nil {
				return nil, depictio.Prefix(err, fmt.Sprintf("%s.%d", f.Name, i))
			}
		}
		out[i] = item
	}
	return out, nil
}

func (s *Schema) validateNestedList(f Field, value any) (any, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, &depictio.FieldError{Path: f.Name, Kind: depictio.KindInvalidValue,
			Reason: fmt.Sprintf("expected a list of %s records, got %T", f.NestedList.name, value)}
	}
	out := make([]any, len(list))
	for i, item := range list {
		sub, ok := asDocument(item)
		if !ok {
			return nil, &depictio.FieldError{Path: fmt.Sprintf("%s.%d", f.Name, i),
				Kind:   depictio.KindInvalidValue,
				Reason: fmt.Sprintf("expected a %s record, got %T", f.NestedList.name, item)}
		}
		validated, err := f.NestedList.Validate(sub)
		if err != nil {
			return nil, depictio.Prefix(err, fmt.Sprintf("%s.%d", f.Name, i))
		}
		out[i] = validated
	}
	return out, nil
}

func (s *Schema) validateNestedMap(f Field, value any) (any, error) {
	entries, ok := asDocument(value)
	if !ok {
		return nil, &depictio.FieldError{Path: f.Name, Kind: depictio.KindInvalidValue,
			Reason: fmt.Sprintf("expected a map of %s records, got %T", f.NestedMap.name, value)}
	}
	out := make(document.Document, len(entries))
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		sub, ok := asDocument(entries[key])
		if !ok {
			return nil, &depictio.FieldError{Path: f.Name + "." + key,
				Kind:   depictio.KindInvalidValue,
				Reason: fmt.Sprintf("expected a %s record, got %T", f.NestedMap.name, entries[key])}
		}
		validated, err := f.NestedMap.Validate(sub)
		if err != nil {
			return nil, depictio.Prefix(err, f.Name+"."+key)
		}
		out[key] = validated
	}
	return out, nil
}

// validateVariant resolves a discriminated union: the sibling discriminator
// field (already validated, hence normalized) selects the concrete schema,
// and the payload's keys must belong to that schema before any of its field
// rules run. A payload shaped like a different variant therefore fails as a
// discriminator mismatch, not as a deep field error.
func (s *Schema) validateVariant(doc document.Document, f Field, value any) (any, error) {
	tag := document.GetString(doc, f.Discriminator, "")
	variant, ok := f.Variants[strings.ToLower(tag)]
	if !ok {
		return nil, &depictio.FieldError{Path: f.Name, Kind: depictio.KindDiscriminatorMismatch,
			Reason: fmt.Sprintf("unrecognized %s %q for %s", f.Discriminator, tag, f.Name)}
	}
	sub, ok := asDocument(value)
	if !ok {
		return nil, &depictio.FieldError{Path: f.Name, Kind: depictio.KindInvalidValue,
			Reason: fmt.Sprintf("expected a nested %s record, got %T", variant.name, value)}
	}
	for key := range sub {
		if _, ok := variant.known[key]; !ok {
			return nil, &depictio.FieldError{Path: f.Name, Kind: depictio.KindDiscriminatorMismatch,
				Reason: fmt.Sprintf("field %q does not belong to %s (selected by %s=%q)",
					key, variant.name, f.Discriminator, tag)}
		}
	}
	validated, err := variant.Validate(sub)
	if err != nil {
		return nil, depictio.Prefix(err, f.Name)
	}
	return validated, nil
}

func asDocument(value any) (document.Document, bool) {
	switch v := value.(type) {
	case document.Document:
		return v, true
	case map[string]any:
		return document.Document(v), true
	default:
		return nil, false
	}
}

// OpenMap accepts any string-keyed map value unchanged; used for the
// flexible metadata base field.
func OpenMap(value any) (any, error) {
	if _, ok := asDocument(value); !ok {
		return nil, depictio.NewFieldError(depictio.KindInvalidValue,
			"expected a map, got %T", value)
	}
	return value, nil
}
