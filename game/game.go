package game

import (
	"fmt"

	"github.com/moffa90/go-spade/protocol"
)

// Game is a program to be uploaded to a Spade device.
type Game struct {
	// Name is the name the game appears under on the device (at most 100 bytes)
	Name string

	// Source is the game's JavaScript source
	Source []byte
}

// Validate checks the game against the limits of the upload frame.
func (g *Game) Validate() error {
	if len(g.Name) > protocol.MaxNameLength {
		return &NameTooLongError{Name: g.Name}
	}
	if uint64(len(g.Source)) > protocol.MaxPayloadLength {
		return fmt.Errorf("source is %d bytes, maximum is %d", len(g.Source), uint64(protocol.MaxPayloadLength))
	}
	return nil
}

// Size returns the number of bytes on the wire for this game's upload frame.
func (g *Game) Size() int {
	return protocol.UploadHeaderSize + len(g.Source)
}

// NameTooLongError indicates a game name that does not fit the name field.
type NameTooLongError struct {
	Name string
}

func (e *NameTooLongError) Error() string {
	return fmt.Sprintf("game name is %d bytes, maximum is %d", len(e.Name), protocol.MaxNameLength)
}
