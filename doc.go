// Package depictio defines the shared foundations of the depictio data-model
// library: the validation error taxonomy and the execution context that
// controls filesystem-dependent validation.
//
// The library defines the shape and validity of every record exchanged with
// the depictio services (workflows, data collections, users, projects,
// files, tokens). Records are constructed once from raw input, fully
// validated at construction, and treated as immutable afterwards; "updates"
// are modeled as constructing a new validated record.
//
// # Packages
//
// The model layer is organized leaf to root:
//
//   - oid: the 12-byte object identifier used as every record's identity
//   - validate: reusable, composable field validation rules
//   - schema: declarative record schemas with ordered validation phases
//   - document: bidirectional mapping between records and store documents
//   - canonical: deterministic serialization and content hashing
//   - config: YAML configuration trees feeding the document layer
//   - users, workflows, datacollections, files, projects, deltatables,
//     dashboards, s3: the entity schemas themselves
//
// # Error Handling
//
// Every validation failure is reported as a *FieldError carrying the dotted
// path of the offending field (including list indices) and one of the Kind*
// constants. Validation fails fast within a single record; batch entry
// points aggregate one error per record and never stop at the first bad
// record.
package depictio
