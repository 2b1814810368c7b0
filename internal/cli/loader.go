package cli

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue/token"

	"github.com/roach88/trajopt/internal/config"
	"github.com/roach88/trajopt/internal/nlp"
)

// Error code constants - unified across all CLI commands. Problem
// validation codes (E201-E209) come from the config package.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeNotFound     = "E002" // Path not found
	ErrCodeLoadFailed   = "E003" // CUE load or build failed
	ErrCodeCompile      = "E004" // Problem declaration malformed
	ErrCodeGenerate     = "E005" // Generation aborted
	ErrCodeStore        = "E006" // History database error
	ErrCodeWriteFailed  = "E007" // File write error
	ErrCodeInvalidInput = "E008" // Invalid flag or argument
	ErrCodeTestFailed   = "E_TEST_FAILED"
)

// LoadError represents an error that occurred while loading a problem.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadProblem loads and compiles the problem file at path.
func LoadProblem(path string) (*config.Problem, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("problem file not found: %s", path)}
	}
	p, err := config.LoadFile(path)
	if err != nil {
		return nil, convertCompileError(err)
	}
	return p, nil
}

// convertCompileError converts a config error to a LoadError with position info.
func convertCompileError(err error) *LoadError {
	var ce *config.CompileError
	if errors.As(err, &ce) {
		code := ErrCodeCompile
		switch ce.Field {
		case "cue":
			code = ErrCodeLoadFailed
		case "file":
			code = ErrCodeNotFound
		}
		return &LoadError{Code: code, Message: ce.Message, Pos: ce.Pos}
	}
	return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
}

// generateErrorCode returns the code reported for a generation failure.
func generateErrorCode(err error) string {
	var ge *nlp.GenerateError
	if errors.As(err, &ge) {
		return string(ge.Code)
	}
	return ErrCodeGenerate
}

// loadAndValidate loads path and runs semantic validation against the
// registered apps. It reports failures through f.
func loadAndValidate(opts *RootOptions, f *OutputFormatter, path string) (*config.Problem, error) {
	p, err := LoadProblem(path)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			exit := ExitFailure
			if le.Code == ErrCodeNotFound {
				exit = ExitCommandError
			}
			return nil, f.Fail(exit, le.Code, le.Error(), nil)
		}
		return nil, f.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	f.VerboseLog("Loaded problem %s (app %s, %d steps)", p.Name, p.App, p.Steps)

	if verrs := config.Validate(p, opts.registry().Names()); len(verrs) > 0 {
		return nil, outputValidationErrors(f, verrs)
	}
	return p, nil
}

// generateProblem builds and generates p with the registered apps.
func generateProblem(opts *RootOptions, p *config.Problem) (*nlp.Program, error) {
	cfg, app, err := opts.registry().Build(p)
	if err != nil {
		return nil, err
	}
	return nlp.Generate(cfg, app, nlp.WithLogger(opts.Logger()))
}
