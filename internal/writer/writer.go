// Package writer writes generated programs to disk. A failed write leaves
// the target as it was: the previous content is restored, or the new file
// is removed when there was none.
package writer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
)

// Option configures a write.
type Option func(*options)

type options struct {
	logger *slog.Logger
	perm   fs.FileMode
}

// WithLogger sets the logger used to report reverts.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPerm sets the mode of a newly created file.
func WithPerm(perm fs.FileMode) Option {
	return func(o *options) { o.perm = perm }
}

// Result describes a completed write.
type Result struct {
	Path string

	// Created is true when the file did not exist before.
	Created bool

	// Changed is false when the new content equals the backup.
	Changed bool
}

// RevertError reports a write that failed and could not be undone.
type RevertError struct {
	Path      string
	Err       error
	RevertErr error
}

func (e *RevertError) Error() string {
	return fmt.Sprintf("write %s: %v (revert failed: %v)", e.Path, e.Err, e.RevertErr)
}

func (e *RevertError) Unwrap() []error {
	return []error{e.Err, e.RevertErr}
}

// Write creates or truncates path and calls fn with a buffered writer on
// it. If fn or any file operation fails, path is reverted.
func Write(path string, fn func(w io.Writer) error, opts ...Option) (Result, error) {
	o := options{logger: slog.Default(), perm: 0o644}
	for _, opt := range opts {
		opt(&o)
	}

	res := Result{Path: path}
	backup, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		res.Created = true
	case err != nil:
		return res, fmt.Errorf("read backup of %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, o.perm)
	if err != nil {
		return res, fmt.Errorf("open %s: %w", path, err)
	}

	counter := &countingWriter{w: f}
	bw := bufio.NewWriter(counter)
	werr := fn(bw)
	if werr == nil {
		werr = bw.Flush()
	}
	if cerr := f.Close(); werr == nil && cerr != nil {
		werr = cerr
	}
	if werr != nil {
		o.logger.Debug("reverting failed write", "path", path, "created", res.Created, "error", werr)
		if rerr := revert(path, backup, res.Created, o.perm); rerr != nil {
			return res, &RevertError{Path: path, Err: werr, RevertErr: rerr}
		}
		return res, fmt.Errorf("write %s: %w", path, werr)
	}

	res.Changed = res.Created || !sameContent(path, backup)
	o.logger.Debug("wrote file", "path", path, "bytes", counter.n, "changed", res.Changed)
	return res, nil
}

// WriteText writes text to path.
func WriteText(path, text string, opts ...Option) (Result, error) {
	return Write(path, func(w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	}, opts...)
}

func revert(path string, backup []byte, created bool, perm fs.FileMode) error {
	if created {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return os.WriteFile(path, backup, perm)
}

func sameContent(path string, backup []byte) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return string(data) == string(backup)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
