// Package files defines file records produced by workflow-run scans and the
// per-file scan outcomes. Path existence and readability are only enforced
// when the execution context has local filesystem access.
package files

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"time"

	depictio "github.com/depictio/depictio-models"
	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/oid"
	"github.com/depictio/depictio-models/schema"
	"github.com/depictio/depictio-models/users"
	"github.com/depictio/depictio-models/validate"
)

// Scan outcomes.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	ReasonAdded   = "added"
	ReasonSkipped = "skipped"
	ReasonUpdated = "updated"
	ReasonFailed  = "failed"
)

// File is one scanned artifact bound to a data collection.
type File struct {
	ID               oid.ObjectID     `json:"id"`
	FileLocation     string           `json:"file_location"`
	Filename         string           `json:"filename"`
	CreationTime     string           `json:"creation_time"`
	ModificationTime string           `json:"modification_time"`
	RunID            *oid.ObjectID    `json:"run_id,omitempty"`
	DataCollectionID oid.ObjectID     `json:"data_collection_id"`
	RegistrationTime string           `json:"registration_time,omitempty"`
	FileHash         string           `json:"file_hash"`
	Filesize         int64            `json:"filesize"`
	Permissions      users.Permission `json:"permissions"`
	Description      string           `json:"description,omitempty"`
	FlexibleMetadata map[string]any   `json:"flexible_metadata,omitempty"`
	Hash             string           `json:"hash,omitempty"`
}

// Schema builds the file schema for one validation pass. The context is
// captured once so every path rule in the pass agrees on whether the local
// filesystem is reachable.
func Schema(ctx depictio.Context) *schema.Schema {
	return schema.BaseRecord("file",
		schema.Field{Name: "file_location", Required: true,
			Rules: []validate.Rule{validate.ExpandEnv, validate.FilePath(ctx)}},
		schema.Field{Name: "filename", Required: true, Rules: []validate.Rule{validate.NonEmpty}},
		schema.Field{Name: "creation_time", Required: true, Rules: []validate.Rule{validate.Datetime}},
		schema.Field{Name: "modification_time", Required: true, Rules: []validate.Rule{validate.Datetime}},
		schema.Field{Name: "run_id", Rules: []validate.Rule{schema.Identifier}},
		schema.Field{Name: "data_collection_id", Required: true, Rules: []validate.Rule{schema.Identifier}},
		schema.Field{Name: "registration_time",
			DefaultFunc: func() any { return time.Now().Format(validate.TimeLayout) },
			Rules:       []validate.Rule{validate.Datetime}},
		schema.Field{Name: "file_hash", Required: true, Rules: []validate.Rule{validate.SHA256Hex}},
		schema.Field{Name: "filesize", Required: true, Rules: []validate.Rule{validate.Positive}},
		schema.Field{Name: "permissions", Required: true, Nested: users.PermissionSchema},
	)
}

// New validates raw input and constructs an immutable File.
func New(raw document.Document, ctx depictio.Context) (*File, error) {
	doc, err := Schema(ctx).Validate(raw)
	if err != nil {
		return nil, err
	}
	var f File
	if err := document.Decode(doc, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FromStore constructs a File from a stored document. Stored records never
// re-run filesystem checks regardless of the ambient context.
func FromStore(doc document.Document) (*File, error) {
	return New(document.FromStore(doc), depictio.ContextServer)
}

// Document renders the file back into mapping-layer shape.
func (f *File) Document() (document.Document, error) {
	return document.Encode(f)
}

// ScanOutcome records how a single file fared during a scan.
type ScanOutcome struct {
	Result string `json:"result"`
	Reason string `json:"reason"`
}

// ScanOutcomeSchema validates scan outcomes.
var ScanOutcomeSchema = schema.New("scan_outcome",
	schema.Field{Name: "result", Required: true,
		Rules: []validate.Rule{validate.Enum(ResultSuccess, ResultFailure)}},
	schema.Field{Name: "reason", Required: true,
		Rules: []validate.Rule{validate.Enum(ReasonAdded, ReasonSkipped, ReasonUpdated, ReasonFailed)}},
)

// ScanResult pairs a scanned file with its outcome.
type ScanResult struct {
	File       File        `json:"file"`
	ScanResult ScanOutcome `json:"scan_result"`
	ScanTime   string      `json:"scan_time"`
}

// ScanResultSchema builds the scan-result schema for one validation pass.
func ScanResultSchema(ctx depictio.Context) *schema.Schema {
	return schema.New("file_scan_result",
		schema.Field{Name: "file", Required: true, Nested: Schema(ctx)},
		schema.Field{Name: "scan_result", Required: true, Nested: ScanOutcomeSchema},
		schema.Field{Name: "scan_time",
			DefaultFunc: func() any { return time.Now().Format(validate.TimeLayout) },
			Rules:       []validate.Rule{validate.Datetime}},
	)
}

// NewScanResult validates raw input and constructs a ScanResult.
func NewScanResult(raw document.Document, ctx depictio.Context) (*ScanResult, error) {
	doc, err := ScanResultSchema(ctx).Validate(raw)
	if err != nil {
		return nil, err
	}
	var sr ScanResult
	if err := document.Decode(doc, &sr); err != nil {
		return nil, err
	}
	return &sr, nil
}

// HashFile computes the hex SHA-256 digest of a file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", depictio.NewFieldError(depictio.KindNotReadable, "cannot open %q: %v", path, err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", depictio.NewFieldError(depictio.KindNotReadable, "cannot read %q: %v", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
