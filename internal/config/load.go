package config

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// LoadFile loads and compiles the problem declared in a .cue file.
func LoadFile(path string) (*Problem, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &CompileError{Field: "file", Message: fmt.Sprintf("problem file not found: %s", path)}
	}
	if info.IsDir() {
		return nil, &CompileError{Field: "file", Message: fmt.Sprintf("not a file: %s", path)}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	instances := load.Instances([]string{filepath.Base(abs)}, &load.Config{Dir: filepath.Dir(abs)})
	if len(instances) == 0 {
		return nil, &CompileError{Field: "file", Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, formatCUEError(inst.Err)
	}

	ctx := cuecontext.New()
	value := ctx.BuildInstance(inst)
	if err := value.Validate(); err != nil {
		return nil, formatCUEError(err)
	}
	return CompileProblem(value.LookupPath(cue.ParsePath("problem")))
}

// LoadString compiles a problem from CUE source. filename is used in
// error positions.
func LoadString(src, filename string) (*Problem, error) {
	ctx := cuecontext.New()
	value := ctx.CompileString(src, cue.Filename(filename))
	if err := value.Validate(); err != nil {
		return nil, formatCUEError(err)
	}
	return CompileProblem(value.LookupPath(cue.ParsePath("problem")))
}
