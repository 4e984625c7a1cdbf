// Package records loads responsibility records from files.
//
// The decoder is chosen by file extension:
//
//	.yaml .yml        YAML sequence, or a mapping with a responsibilities key
//	.json             JSON array, or an object with a responsibilities key
//	.cue              CUE checked against the built-in #Responsibility schema
//	.db .sqlite .sqlite3  a store written by "workday import"
//
// Decode only parses. Load also normalises text and validates every record.
package records

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/workday/internal/responsibility"
)

// Kind classifies a LoadError.
type Kind int

const (
	KindNotFound Kind = iota
	KindUnsupported
	KindParse
	KindSchema
	KindEmpty
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindUnsupported:
		return "unsupported source"
	case KindParse:
		return "parse failed"
	case KindSchema:
		return "schema violation"
	case KindEmpty:
		return "no records"
	case KindInvalid:
		return "invalid records"
	default:
		return "unknown"
	}
}

// LoadError reports why a record file could not be loaded.
type LoadError struct {
	Kind Kind
	Path string
	Line int // 0 when unknown
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %v", e.Path, e.Line, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// decoder parses one source format.
type decoder func(path string) ([]responsibility.Responsibility, error)

var decoders = map[string]decoder{
	".yaml":    decodeYAMLFile,
	".yml":     decodeYAMLFile,
	".json":    decodeJSONFile,
	".cue":     decodeCUEFile,
	".db":      decodeSQLiteFile,
	".sqlite":  decodeSQLiteFile,
	".sqlite3": decodeSQLiteFile,
}

// Supported reports whether path has an extension Decode understands.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Decode parses the records in path without validating them.
func Decode(path string) ([]responsibility.Responsibility, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Kind: KindNotFound, Path: path, Err: errors.New("file does not exist")}
		}
		return nil, &LoadError{Kind: KindNotFound, Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Kind: KindNotFound, Path: path, Err: errors.New("is a directory")}
	}

	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, &LoadError{
			Kind: KindUnsupported,
			Path: path,
			Err:  fmt.Errorf("extension %q is not one of .yaml, .yml, .json, .cue, .db, .sqlite, .sqlite3", filepath.Ext(path)),
		}
	}

	rs, err := decode(path)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return nil, loadErr
		}
		return nil, &LoadError{Kind: KindParse, Path: path, Err: err}
	}
	if len(rs) == 0 {
		return nil, &LoadError{Kind: KindEmpty, Path: path, Err: errors.New("no responsibilities found")}
	}

	for i := range rs {
		rs[i] = rs[i].Normalized()
	}
	return rs, nil
}

// Load parses and validates the records in path.
// All validation errors are joined into one KindInvalid LoadError.
func Load(path string) ([]responsibility.Responsibility, error) {
	rs, err := Decode(path)
	if err != nil {
		return nil, err
	}

	if verrs := responsibility.ValidateAll(rs); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, v := range verrs {
			errs[i] = v
		}
		return nil, &LoadError{Kind: KindInvalid, Path: path, Err: errors.Join(errs...)}
	}
	return rs, nil
}
