package openai_compat

import (
	"bufio"
	"io"
	"strings"
	"testing"
)

func TestSSEDecoder_SingleEvents(t *testing.T) {
	d := newSSEDecoder(strings.NewReader("data: one\n\ndata: two\n\n"))

	ev, err := d.Next()
	if err != nil || string(ev) != "one" {
		t.Fatalf("Next()=%q err=%v", ev, err)
	}
	ev, err = d.Next()
	if err != nil || string(ev) != "two" {
		t.Fatalf("Next()=%q err=%v", ev, err)
	}
	if _, err = d.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestSSEDecoder_MultiLineData(t *testing.T) {
	d := newSSEDecoder(strings.NewReader("data: line1\ndata: line2\n\n"))

	ev, err := d.Next()
	if err != nil {
		t.Fatalf("Next() err=%v", err)
	}
	if string(ev) != "line1\nline2" {
		t.Fatalf("Next()=%q", ev)
	}
}

func TestSSEDecoder_SkipsComments(t *testing.T) {
	d := newSSEDecoder(strings.NewReader(": keep-alive\ndata: payload\n\n"))

	ev, err := d.Next()
	if err != nil || string(ev) != "payload" {
		t.Fatalf("Next()=%q err=%v", ev, err)
	}
}

func TestSSEDecoder_CRLF(t *testing.T) {
	d := newSSEDecoder(strings.NewReader("data: payload\r\n\r\n"))

	ev, err := d.Next()
	if err != nil || string(ev) != "payload" {
		t.Fatalf("Next()=%q err=%v", ev, err)
	}
}

func TestSSEDecoder_EOFWithoutTrailingBlank(t *testing.T) {
	// A stream cut off before the final blank line still yields the event.
	d := newSSEDecoder(strings.NewReader("data: partial"))

	ev, err := d.Next()
	if err != nil || string(ev) != "partial" {
		t.Fatalf("Next()=%q err=%v", ev, err)
	}
	if _, err = d.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestSSEDecoder_LineTooLong(t *testing.T) {
	d := newSSEDecoder(strings.NewReader("data: " + strings.Repeat("a", sseMaxLineBytes+1) + "\n\n"))

	if _, err := d.Next(); err != bufio.ErrTooLong {
		t.Fatalf("expected bufio.ErrTooLong, got %v", err)
	}
}

func TestSSEDecoder_IgnoresNonDataFields(t *testing.T) {
	d := newSSEDecoder(strings.NewReader("event: message\nid: 7\ndata: x\n\n"))

	ev, err := d.Next()
	if err != nil || string(ev) != "x" {
		t.Fatalf("Next()=%q err=%v", ev, err)
	}
}
