// Package schema implements declarative record schemas: per-entity field
// definitions composing the validation rules from package validate, with
// cross-field invariants evaluated after the field-level ones.
//
// A Schema is a declarative, ordered list of fields, each carrying its own
// ordered rule pipeline. Validation runs in fixed, linear phases:
//
//  1. identity reconciliation ("_id" alias, then "id", then a generated
//     identifier; exactly one branch per record)
//  2. raw-shape normalization (pre rules such as derived-field computation)
//  3. per-field rules, in declaration order, recursing into nested schemas
//  4. model-level rules (cross-field invariants)
//
// The first failing phase aborts the remaining phases for that record; no
// partially valid record is observable. ValidateBatch, in contrast,
// continues past failing records and aggregates one error per record.
//
// Nested shapes recurse through single records, lists, and keyed maps, and
// a field may be a discriminated union whose concrete schema is selected by
// a sibling field's validated value before the nested payload is parsed.
//
// Every failure is a *depictio.FieldError carrying the dotted path of the
// offending field, including list indices.
package schema
