package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/trajopt/internal/config"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	Errors []config.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <problem.cue>",
		Short: "Validate a problem without writing output",
		Long: `Validate a CUE problem file.

Compiles the problem, checks its fields, and runs the full generation
pass in memory so application callbacks are exercised. Nothing is
written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	p, err := loadAndValidate(opts, f, path)
	if err != nil {
		return err
	}

	prog, err := generateProblem(opts, p)
	if err != nil {
		return f.Fail(ExitFailure, generateErrorCode(err), err.Error(), nil)
	}
	f.VerboseLog("Generated %d bytes in memory", len(prog.Text))

	if f.JSON() {
		return f.Success(ValidationResult{Valid: true})
	}
	fmt.Fprintf(f.Writer, "✓ %s is valid\n", p.Name)
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(f *OutputFormatter, errs []config.ValidationError) error {
	exit := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))

	if f.JSON() {
		if err := f.encode(CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error:  &CLIError{Code: errs[0].Code, Message: errs[0].Message},
		}); err != nil {
			return err
		}
		return exit
	}

	fmt.Fprintln(f.Writer, "✗ Validation failed")
	fmt.Fprintln(f.Writer)
	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(f.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(f.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}
	return exit
}
