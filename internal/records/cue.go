package records

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/workday/internal/responsibility"
)

//go:embed schema.cue
var schemaCUE string

func decodeCUEFile(path string) ([]responsibility.Responsibility, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	rs, err := DecodeCUE(path, data)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}
	return rs, nil
}

// DecodeCUE evaluates a CUE document, checks its responsibilities list
// against the #Responsibility schema and decodes it. filename is only used
// in positions.
func DecodeCUE(filename string, data []byte) ([]responsibility.Responsibility, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile built-in schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, cueLoadError(KindParse, filename, err)
	}
	if !value.LookupPath(cue.ParsePath("responsibilities")).Exists() {
		return nil, nil
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError(KindSchema, filename, err)
	}

	// Decoding goes through JSON so the tagged unions share one decoder.
	raw, err := unified.LookupPath(cue.ParsePath("responsibilities")).MarshalJSON()
	if err != nil {
		return nil, cueLoadError(KindSchema, filename, err)
	}
	return DecodeJSON(raw)
}

// cueLoadError converts the first CUE error to a LoadError with its line.
func cueLoadError(kind Kind, filename string, err error) error {
	loadErr := &LoadError{Kind: kind, Path: filename, Err: err}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return loadErr
	}
	first := errs[0]
	loadErr.Err = first
	for _, pos := range cueerrors.Positions(first) {
		if pos.Filename() == filename {
			loadErr.Line = pos.Line()
			break
		}
	}
	return loadErr
}
