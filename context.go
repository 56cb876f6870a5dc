package depictio

import (
	"os"
	"strings"
)

// ContextEnvVar is the environment variable selecting the execution context.
const ContextEnvVar = "DEPICTIO_CONTEXT"

// Context is the execution mode the library validates under. In the CLI
// context the process runs next to the data, so path validators perform real
// filesystem checks; in the server context those checks are skipped and only
// non-emptiness is enforced.
//
// A Context is read once per validation pass and applied consistently; field
// rules never consult the environment themselves.
type Context string

const (
	// ContextCLI is the local-filesystem context.
	ContextCLI Context = "cli"

	// ContextServer is the remote/service context.
	ContextServer Context = "server"
)

// ContextFromEnv reads DEPICTIO_CONTEXT and returns the matching context.
// Any value other than "cli" (case-insensitive), including an unset
// variable, selects the server context.
func ContextFromEnv() Context {
	if strings.EqualFold(os.Getenv(ContextEnvVar), string(ContextCLI)) {
		return ContextCLI
	}
	return ContextServer
}

// LocalFS reports whether the local filesystem is reachable in this context.
func (c Context) LocalFS() bool {
	return c == ContextCLI
}
