package openai_compat

import (
	"bufio"
	"bytes"
	"io"
)

// sseMaxLineBytes bounds a single stream line so a misbehaving server cannot
// grow the decoder's buffer without limit.
const sseMaxLineBytes = 1 << 20

// sseDecoder extracts event payloads from a text/event-stream body.
//
// Chat streaming only uses the data field; event names, ids, and retry hints
// are parsed and discarded. Multiple data lines within one event are joined
// with a newline, per the SSE framing rules.
type sseDecoder struct {
	sc *bufio.Scanner
}

func newSSEDecoder(r io.Reader) *sseDecoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), sseMaxLineBytes)
	return &sseDecoder{sc: sc}
}

// Next returns the data payload of the next event, or io.EOF once the stream
// ends. A final event cut off before its terminating blank line is still
// delivered.
func (d *sseDecoder) Next() ([]byte, error) {
	var data []byte
	seen := false
	for d.sc.Scan() {
		line := bytes.TrimSuffix(d.sc.Bytes(), []byte("\r"))
		if len(line) == 0 {
			if !seen {
				continue
			}
			return data, nil
		}
		if line[0] == ':' {
			continue
		}
		field, value, _ := bytes.Cut(line, []byte(":"))
		if !bytes.Equal(field, []byte("data")) {
			continue
		}
		if len(value) > 0 && value[0] == ' ' {
			value = value[1:]
		}
		if seen {
			data = append(data, '\n')
		}
		data = append(data, value...)
		seen = true
	}
	if err := d.sc.Err(); err != nil {
		return nil, err
	}
	if seen {
		return data, nil
	}
	return nil, io.EOF
}
