package validate

import (
	"os"
	"path/filepath"
	"regexp"

	depictio "github.com/depictio/depictio-models"
)

var envPlaceholderRe = regexp.MustCompile(`\{([A-Z0-9_]+)\}`)

// ExpandEnvVars substitutes {NAME} placeholders in a path-like string from
// the process environment. Referencing an unset variable is a hard failure,
// never a silent pass-through.
func ExpandEnvVars(value string) (string, error) {
	var missing error
	expanded := envPlaceholderRe.ReplaceAllStringFunc(value, func(match string) string {
		name := envPlaceholderRe.FindStringSubmatch(match)[1]
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			if missing == nil {
				missing = depictio.NewFieldError(depictio.KindMissingEnvVar,
					"environment variable %q is not set for path %q", name, value)
			}
			return match
		}
		return v
	})
	if missing != nil {
		return "", missing
	}
	return expanded, nil
}

// ExpandEnv is the Rule form of ExpandEnvVars.
func ExpandEnv(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, depictio.NewFieldError(depictio.KindInvalidValue, "expected a string, got %T", value)
	}
	return ExpandEnvVars(s)
}

// DirectoryPath checks that the value names an existing, readable directory.
// The filesystem is only consulted in the local-filesystem context; in any
// other context only non-emptiness is enforced.
func DirectoryPath(ctx depictio.Context) Rule {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, depictio.NewFieldError(depictio.KindInvalidValue, "expected a path string, got %T", value)
		}
		if s == "" {
			return nil, depictio.NewFieldError(depictio.KindMissingRequiredField, "path cannot be empty")
		}
		if !ctx.LocalFS() {
			return s, nil
		}
		info, err := os.Stat(s)
		if err != nil {
			return nil, depictio.NewFieldError(depictio.KindPathNotFound,
				"the directory %q does not exist", s)
		}
		if !info.IsDir() {
			return nil, depictio.NewFieldError(depictio.KindNotADirectory,
				"%q is not a directory", s)
		}
		if err := checkReadable(s); err != nil {
			return nil, err
		}
		return s, nil
	}
}

// FilePath checks that the value names an existing, readable regular file.
// Like DirectoryPath, the check runs only in the local-filesystem context.
func FilePath(ctx depictio.Context) Rule {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, depictio.NewFieldError(depictio.KindInvalidValue, "expected a path string, got %T", value)
		}
		if s == "" {
			return nil, depictio.NewFieldError(depictio.KindMissingRequiredField, "path cannot be empty")
		}
		if !ctx.LocalFS() {
			return s, nil
		}
		info, err := os.Stat(s)
		if err != nil {
			return nil, depictio.NewFieldError(depictio.KindPathNotFound,
				"the file %q does not exist", s)
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil, depictio.NewFieldError(depictio.KindNotAFile,
				"%q is not a regular file", s)
		}
		if err := checkReadable(s); err != nil {
			return nil, err
		}
		return s, nil
	}
}

// AbsolutePath checks the value looks like an absolute path in the
// local-filesystem context without requiring it to exist; in other contexts
// only non-emptiness is enforced.
func AbsolutePath(ctx depictio.Context) Rule {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, depictio.NewFieldError(depictio.KindInvalidValue, "expected a path string, got %T", value)
		}
		if s == "" {
			return nil, depictio.NewFieldError(depictio.KindMissingRequiredField, "path cannot be empty")
		}
		if ctx.LocalFS() && !filepath.IsAbs(s) {
			return nil, depictio.NewFieldError(depictio.KindInvalidValue,
				"path %q must be absolute", s)
		}
		return s, nil
	}
}

func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return depictio.NewFieldError(depictio.KindNotReadable, "%q is not readable", path)
	}
	return f.Close()
}
