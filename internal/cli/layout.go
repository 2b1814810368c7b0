package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/trajopt/internal/nlp"
)

// NewLayoutCommand creates the layout command.
func NewLayoutCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout <problem.cue>",
		Short: "Print the decision vector layout of a problem",
		Long: `Print the quantity table of a problem: name, type, length, index,
offset and the global offset of every step. Offsets at or below zero
address the start state qs; offsets past the trajectory size address
the goal state qg.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runLayout(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	p, err := loadAndValidate(opts, f, path)
	if err != nil {
		return err
	}
	prog, err := generateProblem(opts, p)
	if err != nil {
		return f.Fail(ExitFailure, generateErrorCode(err), err.Error(), nil)
	}

	if f.JSON() {
		return f.Success(prog.Layout)
	}
	writeLayout(f, prog.Layout)
	return nil
}

func writeLayout(f *OutputFormatter, l nlp.Layout) {
	fmt.Fprintf(f.Writer, "steps %d, step size %d, state size %d, trajectory size %d\n",
		l.Steps, l.StepSize, l.StateSize, l.TrajectorySize)
	fmt.Fprintf(f.Writer, "equalities %d, inequalities %d, cost terms %d\n\n",
		l.Equalities, l.Inequalities, l.CostTerms)

	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tLEN\tINDEX\tOFFSET\tOFFSETS")
	for _, q := range l.Quantities {
		offs := make([]string, len(q.Offsets))
		for i, o := range q.Offsets {
			offs[i] = strconv.Itoa(o)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n", q.Name, q.Type, q.Len, q.Index, q.Offset, strings.Join(offs, " "))
	}
	tw.Flush()
}
