package git

// maxErrorOutput bounds how much of git's stderr is kept for error messages.
const maxErrorOutput = 4096

// tailBuffer keeps the last max bytes written to it. git prints the reason
// for a failure last, so the tail is the useful part.
type tailBuffer struct {
	max int
	buf []byte
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.max; over > 0 {
		b.buf = append(b.buf[:0], b.buf[over:]...)
	}
	return len(p), nil
}

func (b *tailBuffer) Bytes() []byte {
	return b.buf
}
