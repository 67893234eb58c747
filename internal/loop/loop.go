package loop

import (
	"context"
	"io"
)

// Run creates a session on r and w and plays it until it ends.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	s, err := NewSession(r, w, opts)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}
