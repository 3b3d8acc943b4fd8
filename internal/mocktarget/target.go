// Package mocktarget simulates a Spade device on the far end of a serial link.
//
// A Target accepts the host's byte stream in writes of any size, parses the
// legacy probe and UPLOAD frames out of it, and queues the replies a real
// device would send. It is used by tests and by the mock_target example.
package mocktarget

import (
	"bytes"
	"encoding/binary"

	"github.com/moffa90/go-spade/protocol"
)

// Program is a game stored on the simulated device.
type Program struct {
	Name   string
	Source []byte
}

type parseState int

const (
	stateIdle parseState = iota
	stateHeader
	stateBody
)

// Target is an in-memory Spade device implementing io.ReadWriter.
// It is not safe for concurrent use.
type Target struct {
	// Legacy makes the target answer the startup sequence with protocol.LegacyResponse
	Legacy bool

	// FreeFlash is the number of source bytes the target can still store
	FreeFlash int

	// SlotsLeft is the number of programs the target can still store
	SlotsLeft int

	// ChunkSize caps the bytes returned by a single Read (0 = no cap)
	ChunkSize int

	// Noise is sent before every upload verdict, like boot or debug output
	Noise []byte

	// Silent makes the target swallow uploads without a verdict
	Silent bool

	// ReadErr and WriteErr, when set, are returned by every Read or Write
	ReadErr  error
	WriteErr error

	// Programs holds every accepted game, in upload order
	Programs []Program

	in    []byte
	out   []byte
	state parseState
	name  string
	size  int

	reads  int
	writes int
}

// New returns a current (non-legacy) target with the given capacity.
func New(freeFlash, slots int) *Target {
	return &Target{FreeFlash: freeFlash, SlotsLeft: slots}
}

// Write feeds host bytes to the target.
func (t *Target) Write(p []byte) (int, error) {
	t.writes++
	if t.WriteErr != nil {
		return 0, t.WriteErr
	}
	t.in = append(t.in, p...)
	t.process()
	return len(p), nil
}

// Read returns queued reply bytes. With nothing queued it returns 0, nil,
// which is what a serial port does when its read timeout expires.
func (t *Target) Read(p []byte) (int, error) {
	t.reads++
	if t.ReadErr != nil {
		return 0, t.ReadErr
	}
	if t.ChunkSize > 0 && len(p) > t.ChunkSize {
		p = p[:t.ChunkSize]
	}
	n := copy(p, t.out)
	t.out = t.out[n:]
	return n, nil
}

// Pending returns the reply bytes not yet read.
func (t *Target) Pending() []byte {
	return t.out
}

// Calls returns the number of Read and Write calls made so far.
func (t *Target) Calls() (reads, writes int) {
	return t.reads, t.writes
}

func (t *Target) process() {
	for {
		switch t.state {
		case stateIdle:
			if !t.processIdle() {
				return
			}
		case stateHeader:
			if len(t.in) < protocol.MaxNameLength+protocol.LengthFieldSize {
				return
			}
			t.name = string(bytes.TrimRight(t.in[:protocol.MaxNameLength], "\x00"))
			t.size = int(binary.LittleEndian.Uint32(t.in[protocol.MaxNameLength:]))
			t.in = t.in[protocol.MaxNameLength+protocol.LengthFieldSize:]
			t.state = stateBody
		case stateBody:
			if len(t.in) < t.size {
				return
			}
			source := append([]byte(nil), t.in[:t.size]...)
			t.in = t.in[t.size:]
			t.state = stateIdle
			t.finishUpload(source)
		}
	}
}

// processIdle consumes one command or one byte of garbage. It returns false
// when more input is needed.
func (t *Target) processIdle() bool {
	probe := protocol.LegacyStartupSequence[:]
	upload := []byte(protocol.UploadCommand)

	switch {
	case len(t.in) == 0:
		return false
	case bytes.HasPrefix(t.in, probe):
		t.in = t.in[len(probe):]
		if t.Legacy {
			t.out = append(t.out, protocol.LegacyResponse...)
		}
		return true
	case bytes.HasPrefix(t.in, upload):
		t.in = t.in[len(upload):]
		t.state = stateHeader
		return true
	case bytes.HasPrefix(probe, t.in) || bytes.HasPrefix(upload, t.in):
		return false
	default:
		t.in = t.in[1:]
		return true
	}
}

func (t *Target) finishUpload(source []byte) {
	if t.Silent {
		return
	}

	t.out = append(t.out, t.Noise...)
	switch {
	case len(source) > t.FreeFlash:
		t.out = append(t.out, protocol.TokenOutOfFlash...)
	case t.SlotsLeft <= 0:
		t.out = append(t.out, protocol.TokenOutOfMetadata...)
	default:
		t.SlotsLeft--
		t.FreeFlash -= len(source)
		t.Programs = append(t.Programs, Program{Name: t.name, Source: source})
		t.out = append(t.out, protocol.TokenAllGood...)
	}
}
