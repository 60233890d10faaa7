package serialcomm

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePort hands out one queued chunk per Read; an empty queue behaves like
// an expired read timeout on a posix tty.
type fakePort struct {
	chunks  [][]byte
	written bytes.Buffer
	readErr error
	flushed bool
	closed  bool
}

func (p *fakePort) Flush() error {
	p.flushed = true
	p.chunks = nil
	return nil
}

func (p *fakePort) Read(b []byte) (int, error) {
	if p.readErr != nil {
		return 0, p.readErr
	}
	if len(p.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(b, p.chunks[0])
	if n < len(p.chunks[0]) {
		p.chunks[0] = p.chunks[0][n:]
	} else {
		p.chunks = p.chunks[1:]
	}
	return n, nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	return p.written.Write(b)
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func chunks(parts ...string) [][]byte {
	out := make([][]byte, 0, len(parts))
	for _, p := range parts {
		out = append(out, []byte(p))
	}
	return out
}

func TestWriteLineAppendsTerminator(t *testing.T) {
	port := &fakePort{}
	ch := NewChannel(port)

	require.NoError(t, ch.WriteLine("SET,0,50,0"))
	require.NoError(t, ch.WriteLine("ACQ\n"))

	assert.Equal(t, "SET,0,50,0\nACQ\n", port.written.String())
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		name   string
		chunks [][]byte
		want   []string
	}{
		{name: "single line", chunks: chunks("1\n"), want: []string{"1"}},
		{name: "crlf", chunks: chunks("42\r\n"), want: []string{"42"}},
		{name: "split across reads", chunks: chunks("12", "3\n"), want: []string{"123"}},
		{name: "two lines in one read", chunks: chunks("1\n2\n"), want: []string{"1", "2"}},
		{name: "partial line at timeout", chunks: chunks("7"), want: []string{"7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := NewChannel(&fakePort{chunks: tt.chunks})
			for _, want := range tt.want {
				got, err := ch.ReadLine()
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
			_, err := ch.ReadLine()
			assert.ErrorIs(t, err, ErrReadTimeout)
		})
	}
}

func TestReadLineTimeoutWithoutData(t *testing.T) {
	ch := NewChannel(&fakePort{})

	line, err := ch.ReadLine()
	assert.ErrorIs(t, err, ErrReadTimeout)
	assert.Empty(t, line)
}

func TestReadLinePropagatesPortErrors(t *testing.T) {
	boom := errors.New("device disconnected")
	ch := NewChannel(&fakePort{readErr: boom})

	_, err := ch.ReadLine()
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrReadTimeout)
}

func TestDiscardDropsBufferedInput(t *testing.T) {
	port := &fakePort{chunks: chunks("1\n2\n", "3\n")}
	ch := NewChannel(port)

	line, err := ch.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "1", line)

	require.NoError(t, ch.Discard())
	assert.True(t, port.flushed)

	_, err = ch.ReadLine()
	assert.ErrorIs(t, err, ErrReadTimeout, "stale lines must not survive Discard")
}

func TestDiscardWithoutFlusher(t *testing.T) {
	ch := NewChannel(struct{ io.ReadWriteCloser }{&fakePort{}})
	assert.NoError(t, ch.Discard())
}

func TestCloseClosesPort(t *testing.T) {
	port := &fakePort{}
	require.NoError(t, NewChannel(port).Close())
	assert.True(t, port.closed)
}

func TestCalculateCRC16Modbus(t *testing.T) {
	assert.Equal(t, uint16(0x4B37), calculateCRC16([]byte("123456789")))
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]string{"SET,0,50,0", "SET,1,100,2"})
	b := Fingerprint([]string{"SET,1,100,2", "SET,0,50,0"})

	assert.Equal(t, a, Fingerprint([]string{"SET,0,50,0", "SET,1,100,2"}))
	assert.NotEqual(t, a, b, "order must change the fingerprint")
	assert.Equal(t, calculateCRC16([]byte("SET,0,50,0\n")), Fingerprint([]string{"SET,0,50,0"}))
}
