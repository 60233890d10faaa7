// serialcomm/sender.go
package serialcomm

import (
	"io"
	"strings"
)

const lineTerminator = "\n"

func writeLine(w io.Writer, line string) error {
	line = strings.TrimRight(line, "\r\n")
	_, err := io.WriteString(w, line+lineTerminator)
	return err
}
