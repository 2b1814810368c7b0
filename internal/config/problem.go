package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/token"

	"github.com/roach88/trajopt/internal/expr"
	"github.com/roach88/trajopt/internal/nlp"
)

// DefaultHorizon is used when a problem omits horizon.
const DefaultHorizon = 10.0

// Problem is a compiled problem declaration.
type Problem struct {
	Name    string
	App     string
	Horizon float64
	Steps   int
	Outputs []string
	Options []Option

	// Settings is the raw settings struct; it does not exist when omitted.
	Settings cue.Value

	// Pos is the position of the problem struct.
	Pos token.Pos
}

// OptionKind is the CUE kind of an option value.
type OptionKind int

const (
	StringOption OptionKind = iota
	NumberOption
	BoolOption
)

// Option is one solver option.
type Option struct {
	Key    string
	Kind   OptionKind
	Text   string
	Number float64
	Bool   bool
	Pos    token.Pos
}

// Expr renders the option value: strings are quoted, booleans become
// 'on' or 'off'.
func (o Option) Expr() expr.Expr {
	switch o.Kind {
	case NumberOption:
		return expr.Num(o.Number)
	case BoolOption:
		if o.Bool {
			return expr.Quote("on")
		}
		return expr.Quote("off")
	default:
		return expr.Quote(o.Text)
	}
}

// NLPConfig converts the problem to a generator configuration.
func (p *Problem) NLPConfig() nlp.Config {
	cfg := nlp.Config{
		Name:    p.Name,
		Horizon: p.Horizon,
		Steps:   p.Steps,
		Outputs: append([]string(nil), p.Outputs...),
	}
	for _, o := range p.Options {
		cfg.AddOption(o.Key, o.Expr())
	}
	return cfg
}

// DecodeSettings decodes the settings struct into dst. dst keeps its
// current values for fields the file does not set.
func (p *Problem) DecodeSettings(dst any) error {
	if !p.Settings.Exists() {
		return nil
	}
	if err := p.Settings.Decode(dst); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// CompileProblem parses the problem struct v.
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(src)
//	p, err := CompileProblem(v.LookupPath(cue.ParsePath("problem")))
func CompileProblem(v cue.Value) (*Problem, error) {
	if !v.Exists() {
		return nil, &CompileError{Field: "problem", Message: "problem is required"}
	}
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	p := &Problem{Horizon: DefaultHorizon, Pos: v.Pos()}
	var err error

	if p.Name, err = requiredString(v, "name"); err != nil {
		return nil, err
	}
	if p.App, err = requiredString(v, "app"); err != nil {
		return nil, err
	}

	stepsVal := v.LookupPath(cue.ParsePath("steps"))
	if !stepsVal.Exists() {
		return nil, &CompileError{Field: "steps", Message: "steps is required", Pos: v.Pos()}
	}
	steps, err := stepsVal.Int64()
	if err != nil {
		return nil, formatCUEError(err)
	}
	p.Steps = int(steps)

	if hv := v.LookupPath(cue.ParsePath("horizon")); hv.Exists() {
		if p.Horizon, err = hv.Float64(); err != nil {
			return nil, formatCUEError(err)
		}
	}

	if ov := v.LookupPath(cue.ParsePath("outputs")); ov.Exists() {
		if err := ov.Decode(&p.Outputs); err != nil {
			return nil, formatCUEError(err)
		}
	}

	if p.Options, err = parseOptions(v); err != nil {
		return nil, err
	}

	p.Settings = v.LookupPath(cue.ParsePath("settings"))
	if p.Settings.Exists() && p.Settings.IncompleteKind() != cue.StructKind {
		return nil, &CompileError{Field: "settings", Message: "settings must be a struct", Pos: p.Settings.Pos()}
	}
	return p, nil
}

func requiredString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", &CompileError{Field: field, Message: field + " is required", Pos: v.Pos()}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func parseOptions(v cue.Value) ([]Option, error) {
	ov := v.LookupPath(cue.ParsePath("options"))
	if !ov.Exists() {
		return nil, nil
	}
	iter, err := ov.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var opts []Option
	for iter.Next() {
		item := iter.Value()
		o := Option{Pos: item.Pos()}
		if o.Key, err = requiredString(item, "key"); err != nil {
			return nil, err
		}

		val := item.LookupPath(cue.ParsePath("value"))
		if !val.Exists() {
			return nil, &CompileError{Field: "options.value", Message: fmt.Sprintf("option %q has no value", o.Key), Pos: item.Pos()}
		}
		switch val.IncompleteKind() {
		case cue.StringKind:
			o.Kind = StringOption
			o.Text, err = val.String()
		case cue.IntKind, cue.FloatKind, cue.NumberKind:
			o.Kind = NumberOption
			o.Number, err = val.Float64()
		case cue.BoolKind:
			o.Kind = BoolOption
			o.Bool, err = val.Bool()
		default:
			return nil, &CompileError{
				Field:   "options.value",
				Message: fmt.Sprintf("option %q must be a string, number or bool", o.Key),
				Pos:     val.Pos(),
			}
		}
		if err != nil {
			return nil, formatCUEError(err)
		}
		opts = append(opts, o)
	}
	return opts, nil
}
