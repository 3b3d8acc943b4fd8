package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// mockPort is a scripted transport. Each entry of reads is delivered by
// successive Read calls (split further if the caller's buffer is smaller).
// When reads is exhausted Read returns 0, nil like a timed-out serial port.
type mockPort struct {
	writes    [][]byte
	reads     [][]byte
	readErr   error
	writeErr  error
	failWrite int // 1-based index of the write that fails with writeErr; 0 = every write

	readCalls int
}

func (m *mockPort) Write(p []byte) (int, error) {
	m.writes = append(m.writes, append([]byte(nil), p...))
	if m.writeErr != nil && (m.failWrite == 0 || m.failWrite == len(m.writes)) {
		return 0, m.writeErr
	}
	return len(p), nil
}

func (m *mockPort) Read(p []byte) (int, error) {
	m.readCalls++
	if m.readErr != nil {
		return 0, m.readErr
	}
	if len(m.reads) == 0 {
		return 0, nil
	}

	n := copy(p, m.reads[0])
	m.reads[0] = m.reads[0][n:]
	if len(m.reads[0]) == 0 {
		m.reads = m.reads[1:]
	}
	return n, nil
}

func (m *mockPort) written() []byte {
	return bytes.Join(m.writes, nil)
}

func TestIsRunningLegacy(t *testing.T) {
	tests := []struct {
		name  string
		reply [][]byte
		want  bool
	}{
		{name: "legacy target", reply: [][]byte{[]byte("found startup seq!")}, want: true},
		{name: "current target", reply: [][]byte{[]byte("legacy startup detected")}, want: false},
		{name: "silent target", reply: nil, want: false},
		// A single read decides: a reply split across reads is not reassembled
		{name: "split legacy reply", reply: [][]byte{[]byte("found "), []byte("startup seq!")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := &mockPort{reads: tt.reply}

			got, err := IsRunningLegacy(port)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("legacy = %v, want %v", got, tt.want)
			}

			if len(port.writes) != 1 || !bytes.Equal(port.writes[0], []byte{0, 1, 2, 3, 4}) {
				t.Errorf("writes = % X, want one write of 00 01 02 03 04", port.writes)
			}
			if port.readCalls != 1 {
				t.Errorf("read calls = %d, want 1", port.readCalls)
			}
		})
	}
}

func TestIsRunningLegacyErrors(t *testing.T) {
	errPort := errors.New("port unplugged")

	t.Run("write error", func(t *testing.T) {
		port := &mockPort{writeErr: errPort}
		if _, err := IsRunningLegacy(port); !errors.Is(err, errPort) {
			t.Errorf("error = %v, want %v", err, errPort)
		}
		if port.readCalls != 0 {
			t.Errorf("read calls = %d, want 0 after failed write", port.readCalls)
		}
	})

	t.Run("read error", func(t *testing.T) {
		port := &mockPort{readErr: errPort}
		if _, err := IsRunningLegacy(port); !errors.Is(err, errPort) {
			t.Errorf("error = %v, want %v", err, errPort)
		}
	})

	t.Run("EOF is an empty reply", func(t *testing.T) {
		port := &mockPort{readErr: io.EOF}
		legacy, err := IsRunningLegacy(port)
		if err != nil || legacy {
			t.Errorf("got %v, %v; want false, nil", legacy, err)
		}
	})

	t.Run("non-text reply", func(t *testing.T) {
		port := &mockPort{reads: [][]byte{{0xC3, 0x28, 0xFF}}}
		_, err := IsRunningLegacy(port)
		if !errors.Is(err, ErrInvalidText) {
			t.Errorf("error = %v, want ErrInvalidText", err)
		}
	})
}

func TestUploadGameWireFormat(t *testing.T) {
	tests := []struct {
		name    string
		game    string
		payload []byte
	}{
		{name: "short name", game: "game1", payload: []byte("console.log(1);")},
		{name: "empty name", game: "", payload: []byte("x")},
		{name: "100-byte name", game: string(bytes.Repeat([]byte("n"), 100)), payload: []byte("y")},
		{name: "empty payload", game: "blank", payload: nil},
		{name: "binary payload", game: "bin", payload: []byte{0x00, 0xFF, 0x10, 0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := &mockPort{reads: [][]byte{[]byte("ALL_GOOD")}}

			if _, err := UploadGame(port, []byte(tt.game), tt.payload); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := []byte("UPLOAD")
			want = append(want, tt.game...)
			want = append(want, make([]byte, 100-len(tt.game))...)
			n := len(tt.payload)
			want = append(want, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
			want = append(want, tt.payload...)

			if !bytes.Equal(port.written(), want) {
				t.Errorf("written = % X\nwant      % X", port.written(), want)
			}
			if len(port.writes) != 4 {
				t.Errorf("write calls = %d, want 4", len(port.writes))
			}
			if string(port.writes[0]) != "UPLOAD" {
				t.Errorf("first write = %q, want %q", port.writes[0], "UPLOAD")
			}
		})
	}
}

func TestUploadGameInvalidNameNoIO(t *testing.T) {
	for _, size := range []int{101, 150, 1024} {
		port := &mockPort{reads: [][]byte{[]byte("ALL_GOOD")}}

		_, err := UploadGame(port, bytes.Repeat([]byte("a"), size), []byte("x"))
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("name of %d bytes: error = %v, want ErrInvalidName", size, err)
		}
		if len(port.writes) != 0 || port.readCalls != 0 {
			t.Errorf("name of %d bytes: %d writes, %d reads; want no I/O", size, len(port.writes), port.readCalls)
		}
	}
}

func TestUploadGameResponseChunking(t *testing.T) {
	tests := []struct {
		name  string
		reads [][]byte
		want  UploadResult
	}{
		{
			name:  "all at once",
			reads: [][]byte{[]byte("ALL_GOOD")},
			want:  ResultAllGood,
		},
		{
			name:  "one byte at a time",
			reads: [][]byte{[]byte("A"), []byte("L"), []byte("L"), []byte("_"), []byte("G"), []byte("O"), []byte("O"), []byte("D")},
			want:  ResultAllGood,
		},
		{
			name:  "after unrelated output",
			reads: [][]byte{[]byte("booting...\r\nrx 115 bytes\r\n"), []byte("ALL_GOOD\r\n")},
			want:  ResultAllGood,
		},
		{
			name:  "split across reads",
			reads: [][]byte{[]byte("xxOO_FL"), []byte("ASH")},
			want:  ResultOutOfFlash,
		},
		{
			name:  "metadata with leading noise",
			reads: [][]byte{[]byte("noise"), []byte("OO_METADATA")},
			want:  ResultOutOfMetadata,
		},
		{
			name:  "invalid UTF-8 shifted out before token completes",
			reads: [][]byte{{0xE2, 0x82}, []byte("..."), []byte("ALL_GOOD")},
			want:  ResultAllGood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := &mockPort{reads: tt.reads}

			got, err := UploadGame(port, []byte("game1"), []byte("console.log(1);"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("result = %v, want %v", got, tt.want)
			}
		})
	}
}

// The scan stops at the first match and reads nothing beyond it.
func TestUploadGameStopsAtToken(t *testing.T) {
	port := &mockPort{reads: [][]byte{[]byte("ALL_GOODtrailing")}}

	if _, err := UploadGame(port, []byte("g"), []byte("p")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if port.readCalls != len("ALL_GOOD") {
		t.Errorf("read calls = %d, want %d", port.readCalls, len("ALL_GOOD"))
	}
}

func TestUploadGameNoRecognizedResponse(t *testing.T) {
	tests := []struct {
		name    string
		reads   [][]byte
		readErr error
	}{
		{name: "closed immediately", reads: nil},
		{name: "unrelated output then silence", reads: [][]byte{[]byte("ALL_BAD OO_FLAS")}},
		{name: "EOF", readErr: io.EOF},
		// The whole window must decode, so a token next to an invalid byte
		// is only seen once that byte has been shifted out.
		{name: "token still behind invalid byte", reads: [][]byte{{0xFF}, []byte("ALL_GOOD")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := &mockPort{reads: tt.reads, readErr: tt.readErr}

			_, err := UploadGame(port, []byte("game1"), []byte("console.log(1);"))
			if !errors.Is(err, ErrNoRecognizedResponse) {
				t.Fatalf("error = %v, want ErrNoRecognizedResponse", err)
			}

			var ue *UploadError
			if !errors.As(err, &ue) || ue.Kind != KindNoRecognizedResponse {
				t.Errorf("error = %#v, want kind %v", err, KindNoRecognizedResponse)
			}
		})
	}
}

func TestUploadGameTransportFailure(t *testing.T) {
	errPort := errors.New("device disconnected")

	for failAt := 1; failAt <= 4; failAt++ {
		port := &mockPort{writeErr: errPort, failWrite: failAt}

		_, err := UploadGame(port, []byte("game1"), []byte("payload"))
		if !errors.Is(err, ErrTransportFailure) {
			t.Errorf("write %d: error = %v, want ErrTransportFailure", failAt, err)
		}
		if !errors.Is(err, errPort) {
			t.Errorf("write %d: error = %v, want wrapped %v", failAt, err, errPort)
		}
		if len(port.writes) != failAt {
			t.Errorf("write %d: %d writes attempted, want abort after failure", failAt, len(port.writes))
		}
		if port.readCalls != 0 {
			t.Errorf("write %d: read after failed write", failAt)
		}
	}

	port := &mockPort{readErr: errPort}
	_, err := UploadGame(port, []byte("game1"), []byte("payload"))
	if !errors.Is(err, ErrTransportFailure) || !errors.Is(err, errPort) {
		t.Errorf("read error = %v, want transport failure wrapping %v", err, errPort)
	}
}

type shortWriter struct{ mockPort }

func (s *shortWriter) Write(p []byte) (int, error) {
	s.writes = append(s.writes, p)
	return len(p) / 2, nil
}

func TestUploadGameShortWrite(t *testing.T) {
	port := &shortWriter{}

	_, err := UploadGame(port, []byte("game1"), []byte("payload"))
	if !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("error = %v, want io.ErrShortWrite", err)
	}
}

func TestUploadErrorMessage(t *testing.T) {
	err := &UploadError{Kind: KindTransportFailure, Message: "write name", Err: io.ErrUnexpectedEOF}
	want := "upload failed: transport failure: write name: unexpected EOF"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if !IsUploadError(err) {
		t.Error("IsUploadError = false, want true")
	}
	if IsUploadError(io.EOF) {
		t.Error("IsUploadError(io.EOF) = true, want false")
	}
	if errors.Is(err, ErrInvalidName) {
		t.Error("transport failure should not match ErrInvalidName")
	}
}
