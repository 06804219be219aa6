package magic

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultOutputLimit is the number of bytes
// an Output accepts when no limit is given.
const DefaultOutputLimit = 4096

var ErrOutputExhausted = errors.New("output buffer exhausted")

// Buffer holds the content handed to a
// sniffer. Data is already truncated to
// the number of valid bytes.
type Buffer struct {
	Name string
	Data []byte
}

// NewBuffer wraps data so it can be handed to sniffers.
func NewBuffer(name string, data []byte) *Buffer {
	return &Buffer{Name: name, Data: data}
}

func (buf *Buffer) Len() int {
	if buf == nil {
		return 0
	}

	return len(buf.Data)
}

// Output is the sink sniffers write their
// result into. It holds at most limit bytes,
// a write that would overflow it fails and
// leaves the existing content untouched.
type Output struct {
	builder strings.Builder
	limit   int
}

func NewOutput(limit int) *Output {
	if limit <= 0 {
		limit = DefaultOutputLimit
	}

	return &Output{limit: limit}
}

// Printf formats according to format and
// appends the result to the output.
func (out *Output) Printf(format string, args ...any) error {
	str := fmt.Sprintf(format, args...)

	if out.builder.Len()+len(str) > out.limit {
		return fmt.Errorf("append %d bytes to %d of %d: %w", len(str), out.builder.Len(), out.limit, ErrOutputExhausted)
	}

	out.builder.WriteString(str)
	return nil
}

func (out *Output) Len() int {
	return out.builder.Len()
}

func (out *Output) Reset() {
	out.builder.Reset()
}

func (out *Output) String() string {
	return out.builder.String()
}
