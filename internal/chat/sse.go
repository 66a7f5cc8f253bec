// ABOUTME: Incremental decoder for the event-stream chat protocol
// ABOUTME: Explicit state machine; stream truncation is a first-class terminal state
package chat

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
)

// ErrTruncated reports a stream that closed before a done frame arrived.
// Callers can test for it with errors.Is to distinguish a cut connection
// from an explicit error frame.
var ErrTruncated = errors.New("stream closed before completion")

// dataPrefix marks payload lines in the event stream
const dataPrefix = "data: "

// decodeState tracks the frame decoder's position in the protocol
type decodeState int

const (
	// stateAwaitingLine: between frames, reading bytes until the next newline
	stateAwaitingLine decodeState = iota
	// stateDataLine: a data line is in hand and being parsed
	stateDataLine
	// stateDone: a done frame was delivered; the stream is complete
	stateDone
	// stateErrored: an error frame, read failure, or truncation ended the stream
	stateErrored
)

// frameDecoder turns a response body into a sequence of streamFrames.
// The underlying scanner buffers raw bytes until each newline, so frames —
// including multi-byte characters — split across chunk reads reassemble
// correctly; no decoder state is lost between reads.
type frameDecoder struct {
	scanner *bufio.Scanner
	state   decodeState
}

// newFrameDecoder wraps a stream body
func newFrameDecoder(r io.Reader) *frameDecoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &frameDecoder{
		scanner: scanner,
		state:   stateAwaitingLine,
	}
}

// Next returns the next frame from the stream. After a done or error frame
// it returns io.EOF. A transport read failure surfaces as that failure; a
// stream that ends with no done frame surfaces as ErrTruncated.
func (d *frameDecoder) Next() (streamFrame, error) {
	if d.state == stateDone || d.state == stateErrored {
		return streamFrame{}, io.EOF
	}

	for d.scanner.Scan() {
		line := strings.TrimSpace(d.scanner.Text())
		if !strings.HasPrefix(line, dataPrefix) {
			// Blank keep-alive lines and comments stay in stateAwaitingLine
			continue
		}
		d.state = stateDataLine

		var frame streamFrame
		payload := strings.TrimPrefix(line, dataPrefix)
		if err := json.Unmarshal([]byte(payload), &frame); err != nil {
			// Malformed frames are skipped, not fatal
			log.Printf("[Stream] Skipping malformed frame %q: %v", payload, err)
			d.state = stateAwaitingLine
			continue
		}

		switch {
		case frame.Error != "":
			d.state = stateErrored
		case frame.Done:
			d.state = stateDone
		default:
			d.state = stateAwaitingLine
		}
		return frame, nil
	}

	d.state = stateErrored
	if err := d.scanner.Err(); err != nil {
		return streamFrame{}, err
	}
	return streamFrame{}, ErrTruncated
}
