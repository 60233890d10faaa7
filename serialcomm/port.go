// serialcomm/port.go
package serialcomm

import (
	"io"

	"github.com/tarm/serial"
)

type serialChannelImpl struct {
	port   io.ReadWriteCloser
	reader *lineReader
}

// OpenSerialChannel opens the named port (8N1) with the given baud rate and
// read timeout. A zero ReadTimeout would block forever, so callers must set it.
func OpenSerialChannel(cfg *SerialConfig) (Channel, error) {
	portCfg := &serial.Config{
		Name:        cfg.PortName,
		Baud:        cfg.BaudRate,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
		ReadTimeout: cfg.ReadTimeout,
	}
	port, err := serial.OpenPort(portCfg)
	if err != nil {
		return nil, err
	}
	return NewChannel(port), nil
}

// NewChannel wraps an already open byte stream.
func NewChannel(rwc io.ReadWriteCloser) Channel {
	return &serialChannelImpl{
		port:   rwc,
		reader: newLineReader(rwc),
	}
}

func (s *serialChannelImpl) WriteLine(line string) error {
	return writeLine(s.port, line)
}

func (s *serialChannelImpl) ReadLine() (string, error) {
	return s.reader.readLine()
}

// flusher is implemented by *serial.Port; it drops the OS input buffer.
type flusher interface {
	Flush() error
}

func (s *serialChannelImpl) Discard() error {
	s.reader.reset()
	if f, ok := s.port.(flusher); ok {
		return f.Flush()
	}
	return nil
}

func (s *serialChannelImpl) Close() error {
	return s.port.Close()
}
