package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/trajopt/internal/store"
	"github.com/roach88/trajopt/internal/writer"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Output string // output file (default <name>.m)
	DB     string // optional history database
}

// GenerateResult is reported after a successful generate.
type GenerateResult struct {
	Problem     string `json:"problem"`
	App         string `json:"app"`
	Path        string `json:"path"`
	Bytes       int    `json:"bytes"`
	ContentHash string `json:"content_hash"`
	Changed     bool   `json:"changed"`
	RunID       string `json:"run_id,omitempty"`
	Seq         int64  `json:"seq,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <problem.cue>",
		Short: "Generate the fmincon program for a problem",
		Long: `Generate the Matlab program for a CUE problem file.

The program is written to <name>.m unless --output is given. A failed
write leaves any existing file unchanged. With --db the run is recorded
in a history database and "changed" compares against the previous run
of the same problem; otherwise it compares against the file on disk.

Examples:
  trajgen generate problems/slip.cue
  trajgen generate problems/slip.cue -o out/slip.m --db history.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default <name>.m)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record the run in this history database")

	return cmd
}

func runGenerate(ctx context.Context, opts *GenerateOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	f := newFormatter(opts.RootOptions, cmd)
	log := opts.Logger()

	p, err := loadAndValidate(opts.RootOptions, f, path)
	if err != nil {
		return err
	}

	prog, err := generateProblem(opts.RootOptions, p)
	if err != nil {
		return f.Fail(ExitFailure, generateErrorCode(err), err.Error(), nil)
	}

	out := opts.Output
	if out == "" {
		out = p.Name + ".m"
	}
	wres, err := writer.WriteText(out, prog.Text, writer.WithLogger(log))
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeWriteFailed, err.Error(), nil)
	}
	log.Info("program written", "path", out, "bytes", len(prog.Text))

	res := GenerateResult{
		Problem:     p.Name,
		App:         p.App,
		Path:        out,
		Bytes:       len(prog.Text),
		ContentHash: store.ContentHash(prog.Text),
		Changed:     wres.Changed,
	}

	if opts.DB != "" {
		st, err := store.Open(opts.DB)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
		defer st.Close()

		run, err := st.Record(ctx, store.Artifact{Problem: p.Name, App: p.App, Text: prog.Text, Layout: prog.Layout})
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
		res.RunID = run.ID
		res.Seq = run.Seq
		res.Changed = run.Changed
		log.Debug("run recorded", "id", run.ID, "seq", run.Seq, "changed", run.Changed)
	}

	if f.JSON() {
		return f.Success(res)
	}
	state := "unchanged"
	if res.Changed {
		state = "changed"
	}
	fmt.Fprintf(f.Writer, "✓ Generated %s (%d bytes, %s)\n", res.Path, res.Bytes, state)
	if res.RunID != "" {
		fmt.Fprintf(f.Writer, "  run %d: %s\n", res.Seq, res.RunID)
	}
	return nil
}
