// Package game loads Spade game sources for upload.
//
// A game is a name and the JavaScript source sent to the device. The name is
// stored on the device in a 100-byte field, so names longer than 100 bytes
// are rejected here, before a serial port is involved.
//
// # Usage
//
// Load a game from disk:
//
//	g, err := game.Load("breakout", "breakout.js")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Load from an io.Reader, such as standard input:
//
//	g, err := game.LoadReader("breakout", os.Stdin)
//
// Derive a name from the file path when the caller has none:
//
//	name := game.NameFromPath("games/breakout.js") // "breakout"
package game
