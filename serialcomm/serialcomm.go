// serialcomm/serialcomm.go
package serialcomm

import (
	"errors"
	"time"
)

// ErrReadTimeout is returned by ReadLine when the port produced no data
// within the configured read timeout.
var ErrReadTimeout = errors.New("serial read timeout")

type SerialConfig struct {
	PortName    string
	BaudRate    int
	ReadTimeout time.Duration
}

// Channel is a line oriented duplex connection to the microcontroller.
type Channel interface {
	// WriteLine sends one command terminated by a newline.
	WriteLine(line string) error
	// ReadLine blocks until a full line arrives or the read timeout expires.
	ReadLine() (string, error)
	// Discard drops any input received but not yet read.
	Discard() error
	Close() error
}
