// serialcomm/receiver.go
package serialcomm

import (
	"bytes"
	"errors"
	"io"
)

// lineReader assembles lines from a port opened with a read timeout. A read
// that returns no bytes means the timeout expired.
type lineReader struct {
	r      io.Reader
	buffer bytes.Buffer
	data   []byte
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: r, data: make([]byte, 256)}
}

func (l *lineReader) readLine() (string, error) {
	for {
		if i := bytes.IndexByte(l.buffer.Bytes(), '\n'); i >= 0 {
			return trimLine(l.buffer.Next(i + 1)), nil
		}

		n, err := l.r.Read(l.data)
		if n > 0 {
			l.buffer.Write(l.data[:n])
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}

		// timed out: hand back whatever partial line arrived
		if line := trimLine(l.buffer.Bytes()); line != "" {
			l.buffer.Reset()
			return line, nil
		}
		l.buffer.Reset()
		return "", ErrReadTimeout
	}
}

func trimLine(b []byte) string {
	return string(bytes.TrimRight(b, "\r\n"))
}

func (l *lineReader) reset() {
	l.buffer.Reset()
}
