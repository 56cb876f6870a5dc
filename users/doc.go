// Package users defines the account-side entities of the model layer:
// users and their projections, groups, access tokens, and the three-role
// permission record shared by files and projects.
//
// All records are validated at construction through the package-level
// schemas and are immutable afterwards. The permission invariant — owners,
// editors, and viewers are pairwise disjoint by user identity — is enforced
// as a validation failure, never a warning.
package users
