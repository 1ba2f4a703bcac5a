package syntax

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// Provider turns the full text of a source file into a CompilationUnit.
// Any returned error means the file could not be parsed.
type Provider interface {
	Parse(ctx context.Context, src []byte) (*CompilationUnit, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, src []byte) (*CompilationUnit, error)

func (f ProviderFunc) Parse(ctx context.Context, src []byte) (*CompilationUnit, error) {
	return f(ctx, src)
}

// ParseError reports why a source file could not be turned into a tree.
type ParseError struct {
	Pos     Position
	Kind    string // node kind at the error, if known
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "syntax error"
	}
	if e.Pos.Line > 0 {
		msg = fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, msg)
	}
	if e.Kind != "" {
		msg += " (" + e.Kind + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// WithTimeout bounds every Parse call of p by d. A parse that does not
// finish in time fails with a ParseError wrapping context.DeadlineExceeded.
// The inner provider sees a context that is cancelled on timeout and should
// stop work when it is.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return ProviderFunc(func(ctx context.Context, src []byte) (*CompilationUnit, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		type result struct {
			cu  *CompilationUnit
			err error
		}
		done := make(chan result, 1)
		go func() {
			cu, err := p.Parse(ctx, src)
			done <- result{cu, err}
		}()

		select {
		case r := <-done:
			return r.cu, r.err
		case <-ctx.Done():
			return nil, &ParseError{
				Message: "parse aborted",
				Cause:   errors.Wrapf(ctx.Err(), "after %s", d),
			}
		}
	})
}
