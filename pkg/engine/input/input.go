package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Reader reads operator commands from a terminal. On an interactive terminal
// arrow keys arrive immediately as "arrow_*" codes; everything else is read
// as a line.
type Reader struct {
	in    *os.File
	out   io.Writer
	lines *bufio.Reader
}

// NewReader creates a reader over stdin, echoing to stdout
func NewReader() *Reader {
	return NewReaderFrom(os.Stdin, os.Stdout)
}

// NewReaderFrom creates a reader over an arbitrary file
func NewReaderFrom(in *os.File, out io.Writer) *Reader {
	return &Reader{in: in, out: out}
}

// Interactive reports whether the reader is attached to a terminal
func (r *Reader) Interactive() bool {
	return term.IsTerminal(int(r.in.Fd()))
}

// ReadCommand returns the next command. io.EOF means the input is closed; a
// Ctrl+C in raw mode is reported as "quit".
func (r *Reader) ReadCommand() (string, error) {
	if !r.Interactive() {
		return r.ReadLine()
	}
	return r.readRaw()
}

// ReadLine reads one line without raw mode
func (r *Reader) ReadLine() (string, error) {
	if r.lines == nil {
		r.lines = bufio.NewReader(r.in)
	}
	line, err := r.lines.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *Reader) readByte() (byte, error) {
	buf := make([]byte, 1)
	_, err := r.in.Read(buf)
	return buf[0], err
}

// tryReadArrowKey attempts to read an arrow key escape sequence after ESC.
// A bare ESC (nothing else buffered) is not distinguishable here and reads on.
func (r *Reader) tryReadArrowKey() string {
	b2, err := r.readByte()
	if err != nil {
		return ""
	}
	// CSI (ESC [) and SS3 (ESC O)
	if b2 != '[' && b2 != 'O' {
		return ""
	}
	b3, err := r.readByte()
	if err != nil {
		return ""
	}
	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	}
	return ""
}

func (r *Reader) readRaw() (string, error) {
	// Raw mode and the buffered line reader must not share stdin
	r.lines = nil

	fd := int(r.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	var buf []byte
	for {
		b, err := r.readByte()
		if err != nil {
			return "", err
		}
		switch {
		case b == 0x1b:
			if arrow := r.tryReadArrowKey(); arrow != "" && len(buf) == 0 {
				fmt.Fprint(r.out, "\r\n")
				return arrow, nil
			}
		case b == 3: // Ctrl+C
			fmt.Fprint(r.out, "\r\n")
			return "quit", nil
		case b == 4 && len(buf) == 0: // Ctrl+D
			return "", io.EOF
		case b == '\r' || b == '\n':
			fmt.Fprint(r.out, "\r\n")
			return string(buf), nil
		case b == 127 || b == 8:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				fmt.Fprint(r.out, "\b \b")
			}
		case b >= 32 && b < 127:
			buf = append(buf, b)
			fmt.Fprint(r.out, string(b))
		}
	}
}
