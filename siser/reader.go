package siser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Reader reads records written with MarshalLine
type Reader struct {
	r *bufio.Reader

	// available after ReadNext(), over-written by next call
	Data      []byte
	Name      string
	Timestamp time.Time

	err error
}

// NewReader creates a new reader
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r: bufio.NewReader(r),
	}
}

// Err returns error from last ReadNext(). Reaching the end is not an error.
func (r *Reader) Err() error {
	return r.err
}

// ReadNext reads next record. Returns false at the end or on error.
func (r *Reader) ReadNext() bool {
	if r.err != nil {
		return false
	}
	hdr, err := r.r.ReadBytes('\n')
	if err == io.EOF && len(hdr) == 0 {
		return false
	}
	if err != nil {
		r.err = fmt.Errorf("reading header: %w", err)
		return false
	}
	if err = r.parseHeader(hdr[:len(hdr)-1]); err != nil {
		r.err = err
		return false
	}
	n := len(r.Data)
	if n == 0 {
		return true
	}
	if _, err = io.ReadFull(r.r, r.Data); err != nil {
		r.err = fmt.Errorf("reading %d bytes of data: %w", n, err)
		return false
	}
	if r.Data[n-1] != '\n' {
		// skip newline added for readability
		b, err := r.r.ReadByte()
		if err != nil || b != '\n' {
			r.err = fmt.Errorf("missing newline after data of record '%s'", r.Name)
			return false
		}
	}
	return true
}

// "--- <len>[ <ms>][ <name>]"
func (r *Reader) parseHeader(hdr []byte) error {
	if !bytes.HasPrefix(hdr, hdrPrefix) {
		return fmt.Errorf("invalid header '%s'", hdr)
	}
	parts := bytes.SplitN(hdr[len(hdrPrefix):], []byte{' '}, 3)
	n, err := strconv.Atoi(string(parts[0]))
	if err != nil || n < 0 {
		return fmt.Errorf("invalid data length in header '%s'", hdr)
	}
	r.Data = make([]byte, n)
	r.Name = ""
	r.Timestamp = time.Time{}
	parts = parts[1:]
	if len(parts) > 0 {
		if ms, err := strconv.ParseInt(string(parts[0]), 10, 64); err == nil {
			r.Timestamp = TimeFromUnixMillisecond(ms)
			parts = parts[1:]
		}
	}
	if len(parts) > 0 {
		r.Name = string(bytes.Join(parts, []byte{' '}))
	}
	return nil
}
