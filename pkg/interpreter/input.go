package interpreter

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LineReader supplies lines to INPUT statements. It returns io.EOF once no
// more input is available.
type LineReader interface {
	ReadLine() (string, error)
}

type bufferedLines struct {
	r *bufio.Reader
}

// NewLineReader reads newline separated input from r.
func NewLineReader(r io.Reader) LineReader {
	return &bufferedLines{r: bufio.NewReader(r)}
}

func (b *bufferedLines) ReadLine() (string, error) {
	line, err := b.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type emptyInput struct{}

func (emptyInput) ReadLine() (string, error) { return "", io.EOF }

// LineReaderFunc adapts a function to LineReader.
type LineReaderFunc func() (string, error)

func (f LineReaderFunc) ReadLine() (string, error) { return f() }
