package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// maxChunkSize keeps single writes below a typical MTU so frames flow smoothly over SSH.
const maxChunkSize = 1400

// ChunkWriter collects one frame of terminal output and writes it in chunks.
// It implements io.Writer so Canvas.Render can write into it.
type ChunkWriter struct {
	buf    []byte
	out    *bufio.Writer
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter over w. The offset is added to every
// position passed to MoveCursor and WriteAt.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset changes the cursor offset, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol, cw.offRow = offsetCol, offsetRow
}

// MoveCursor appends a cursor move to 1-based (col, row) relative to the offset.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf = append(cw.buf, "\033["...)
	cw.buf = strconv.AppendInt(cw.buf, int64(row+cw.offRow), 10)
	cw.buf = append(cw.buf, ';')
	cw.buf = strconv.AppendInt(cw.buf, int64(col+cw.offCol), 10)
	cw.buf = append(cw.buf, 'H')
}

// Write appends p to the frame.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.buf = append(cw.buf, p...)
	return len(p), nil
}

// WriteString appends s to the frame.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf = append(cw.buf, s...)
}

// WriteAt appends s at 1-based (col, row) relative to the offset.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.WriteString(s)
}

// Len returns the number of bytes waiting to be flushed.
func (cw *ChunkWriter) Len() int {
	return len(cw.buf)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the frame in chunks and resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf
	cw.buf = cw.buf[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return cw.out.Flush()
}

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the terminal on os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Fit returns the largest canvas size that keeps the aspect ratio of a viewW x viewH
// play-field inside a cols x rows terminal, and the offset that centres it.
// Terminal cells are treated as twice as tall as they are wide.
func Fit(cols, rows int, viewW, viewH float64) (w, h, offCol, offRow int) {
	w = cols
	h = int(float64(w) * viewH / viewW / 2)
	if h > rows {
		h = rows
		w = int(float64(h) * 2 * viewW / viewH)
	}
	w, h = max(w, 1), max(h, 1)
	return w, h, max((cols-w)/2, 0), max((rows-h)/2, 0)
}
