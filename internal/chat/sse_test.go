// ABOUTME: Tests for the event-stream frame decoder
// ABOUTME: Covers chunk-boundary reassembly, malformed frames, and truncation

package chat

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// drip reads one byte at a time to force every chunk-boundary path
type drip struct {
	data []byte
	pos  int
}

func (d *drip) Read(p []byte) (int, error) {
	if d.pos >= len(d.data) {
		return 0, io.EOF
	}
	p[0] = d.data[d.pos]
	d.pos++
	return 1, nil
}

func TestFrameDecoder_TokenThenDone(t *testing.T) {
	body := "data: {\"token\": \"Hel\"}\n\ndata: {\"token\": \"lo\"}\n\ndata: {\"done\": true}\n\n"
	decoder := newFrameDecoder(strings.NewReader(body))

	frame, err := decoder.Next()
	if err != nil || frame.Token != "Hel" {
		t.Fatalf("first frame = %+v, %v; want token Hel", frame, err)
	}
	frame, err = decoder.Next()
	if err != nil || frame.Token != "lo" {
		t.Fatalf("second frame = %+v, %v; want token lo", frame, err)
	}
	frame, err = decoder.Next()
	if err != nil || !frame.Done {
		t.Fatalf("third frame = %+v, %v; want done", frame, err)
	}

	// After done the decoder reports end of stream
	if _, err := decoder.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() after done = %v, want io.EOF", err)
	}
}

func TestFrameDecoder_ReassemblesAcrossChunkBoundaries(t *testing.T) {
	// One byte per read; the token contains multi-byte characters that
	// will be split mid-rune at the transport level.
	body := "data: {\"token\": \"héllo 🎉\"}\n\ndata: {\"done\": true}\n\n"
	decoder := newFrameDecoder(&drip{data: []byte(body)})

	frame, err := decoder.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if frame.Token != "héllo 🎉" {
		t.Errorf("Token = %q, want %q", frame.Token, "héllo 🎉")
	}

	frame, err = decoder.Next()
	if err != nil || !frame.Done {
		t.Errorf("terminal frame = %+v, %v; want done", frame, err)
	}
}

func TestFrameDecoder_SkipsMalformedFrames(t *testing.T) {
	body := "data: {not json}\n\ndata: {\"token\": \"ok\"}\n\ndata: {\"done\": true}\n\n"
	decoder := newFrameDecoder(strings.NewReader(body))

	frame, err := decoder.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if frame.Token != "ok" {
		t.Errorf("Token = %q, want ok (malformed frame skipped)", frame.Token)
	}
}

func TestFrameDecoder_IgnoresNonDataLines(t *testing.T) {
	body := ": keep-alive\n\nevent: message\ndata: {\"token\": \"x\"}\n\ndata: {\"done\": true}\n\n"
	decoder := newFrameDecoder(strings.NewReader(body))

	frame, err := decoder.Next()
	if err != nil || frame.Token != "x" {
		t.Errorf("frame = %+v, %v; want token x", frame, err)
	}
}

func TestFrameDecoder_TruncationIsFirstClass(t *testing.T) {
	body := "data: {\"token\": \"partial\"}\n\n"
	decoder := newFrameDecoder(strings.NewReader(body))

	if frame, err := decoder.Next(); err != nil || frame.Token != "partial" {
		t.Fatalf("frame = %+v, %v", frame, err)
	}

	_, err := decoder.Next()
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("Next() after close = %v, want ErrTruncated", err)
	}

	// Terminal: subsequent calls report end of stream
	if _, err := decoder.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() after truncation = %v, want io.EOF", err)
	}
}

func TestFrameDecoder_ErrorFrame(t *testing.T) {
	body := "data: {\"error\": \"rate limited\"}\n\n"
	decoder := newFrameDecoder(strings.NewReader(body))

	frame, err := decoder.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if frame.Error != "rate limited" {
		t.Errorf("Error = %q, want rate limited", frame.Error)
	}
	if _, err := decoder.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() after error frame = %v, want io.EOF", err)
	}
}

func TestFrameDecoder_EmptyStreamIsTruncated(t *testing.T) {
	decoder := newFrameDecoder(strings.NewReader(""))
	if _, err := decoder.Next(); !errors.Is(err, ErrTruncated) {
		t.Errorf("Next() on empty stream = %v, want ErrTruncated", err)
	}
}
