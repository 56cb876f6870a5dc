// Package validate provides the reusable field validation rules the entity
// schemas are composed from.
//
// Every rule is a pure function from a value to a (possibly normalized)
// value or a structured error, independently testable and composable via
// Chain. Rules never know the field they are applied to; the schema engine
// attaches the dotted field path as validation unwinds.
//
// The only impure rules are the path checks, which touch the local
// filesystem when the execution context is depictio.ContextCLI, and
// environment-variable expansion, which reads the process environment.
package validate
