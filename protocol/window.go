package protocol

// ResponseWindow holds the most recent ResponseWindowSize bytes of the reply
// stream. The zero value is an empty window filled with zero bytes.
type ResponseWindow struct {
	buf [ResponseWindowSize]byte
}

// Shift discards the oldest byte and zeroes the tail slot.
func (w *ResponseWindow) Shift() {
	copy(w.buf[:], w.buf[1:])
	w.buf[ResponseWindowSize-1] = 0
}

// Tail returns the single free slot at the end of the window, to be used as
// the destination of the next read.
func (w *ResponseWindow) Tail() []byte {
	return w.buf[ResponseWindowSize-1:]
}

// Push appends b, discarding the oldest byte.
func (w *ResponseWindow) Push(b byte) {
	w.Shift()
	w.buf[ResponseWindowSize-1] = b
}

// Bytes returns the window contents, oldest byte first.
// The slice aliases the window and is only valid until the next Shift or Push.
func (w *ResponseWindow) Bytes() []byte {
	return w.buf[:]
}
