// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xswire

import (
	"errors"
	"io"
	"runtime"
	"time"

	"code.hybscloud.com/iox"
)

// These are provided as package-level aliases so callers can reference the
// non-blocking control-flow signals without importing iox directly, exactly
// as the teacher framer package re-exports them.
var (
	// ErrWouldBlock means "no further progress without waiting". An expected,
	// non-failure control-flow signal for non-blocking channels.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrMore means "this completion is usable and more completions will follow".
	ErrMore = iox.ErrMore
)

// Options configures a PacketStream's retry policy around ErrWouldBlock.
type Options struct {
	// RetryDelay controls how PacketStream handles iox.ErrWouldBlock from the
	// underlying channel:
	//   - negative: nonblock, return ErrWouldBlock immediately
	//   - zero: yield (runtime.Gosched) and retry
	//   - positive: sleep for the duration and retry
	RetryDelay time.Duration
}

var defaultOptions = Options{RetryDelay: -1}

type Option func(*Options)

// WithRetryDelay sets the retry/wait policy used when the channel returns iox.ErrWouldBlock.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) { o.RetryDelay = d }
}

// WithBlock enables cooperative blocking (yield-and-retry) on iox.ErrWouldBlock.
func WithBlock() Option { return WithRetryDelay(0) }

// WithNonblock forces non-blocking behavior (return iox.ErrWouldBlock immediately).
func WithNonblock() Option { return WithRetryDelay(-1) }

// PacketStream is a thin framing layer over an abstract full-duplex byte
// channel (§4.10). It owns a reference to the channel but not its lifetime:
// the caller closes the channel independently.
//
// A PacketStream does not lock: the caller must serialize Send calls and
// serialize Recv calls externally (§5). A cancelled Recv leaves the internal
// parser in a partially-consumed state; the PacketStream must be discarded
// along with the channel rather than reused.
type PacketStream struct {
	r io.Reader
	w io.Writer

	parser *Parser

	retryDelay time.Duration
}

// NewPacketStream wraps r and w as a PacketStream's read and write halves.
func NewPacketStream(r io.Reader, w io.Writer, opts ...Option) *PacketStream {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &PacketStream{r: r, w: w, parser: NewParser(), retryDelay: o.RetryDelay}
}

// NewPacketStreamPipe returns a pair of in-memory, synchronously connected
// PacketStreams: a's Send feeds b's Recv and vice versa.
func NewPacketStreamPipe(opts ...Option) (a, b *PacketStream) {
	ar, bw := io.Pipe()
	br, aw := io.Pipe()
	a = NewPacketStream(ar, aw, opts...)
	b = NewPacketStream(br, bw, opts...)
	return a, b
}

func (s *PacketStream) waitOnceOnWouldBlock() bool {
	if s.retryDelay < 0 {
		return false
	}
	if s.retryDelay == 0 {
		runtime.Gosched()
		return true
	}
	time.Sleep(s.retryDelay)
	return true
}

// readChannel reads into p, retrying internally on ErrWouldBlock per the
// configured policy. It guards against Readers that violate the io.Reader
// contract by returning (0, nil) on a non-empty buffer.
func (s *PacketStream) readChannel(p []byte) (int, error) {
	for {
		n, err := s.r.Read(p)
		if len(p) != 0 && n == 0 && err == nil {
			return 0, io.ErrNoProgress
		}
		if n > 0 {
			return n, err
		}
		if !errors.Is(err, ErrWouldBlock) {
			return n, err
		}
		if !s.waitOnceOnWouldBlock() {
			return n, err
		}
	}
}

func (s *PacketStream) writeChannel(p []byte) (int, error) {
	for {
		n, err := s.w.Write(p)
		if len(p) != 0 && n == 0 && err == nil {
			return 0, io.ErrShortWrite
		}
		if n > 0 {
			return n, err
		}
		if !errors.Is(err, ErrWouldBlock) {
			return n, err
		}
		if !s.waitOnceOnWouldBlock() {
			return n, err
		}
	}
}

// Recv drives the internal Parser with reads sized exactly to its reported
// need, until the parser is Done; it then resets the parser and returns the
// decoded Packet (or its parse error). A read returning zero bytes (with or
// without io.EOF) signals the channel has closed: Recv returns ErrEndOfStream.
func (s *PacketStream) Recv() (Packet, error) {
	for {
		st := s.parser.State()
		if st.Done {
			s.parser = NewParser()
			return st.Packet, st.Err
		}

		buf := make([]byte, st.Need)
		n, err := s.readChannel(buf)
		if n > 0 {
			s.parser.Input(buf[:n])
		}

		switch {
		case err == nil:
			if n == 0 {
				return Packet{}, ErrEndOfStream
			}
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrNoProgress):
			if n == 0 {
				return Packet{}, ErrEndOfStream
			}
			// Bytes arrived together with EOF on the final read; the next
			// read, in this call or a later Recv, observes the close.
		case errors.Is(err, ErrWouldBlock), errors.Is(err, ErrMore):
			return Packet{}, err
		default:
			return Packet{}, err
		}
	}
}

// Send writes the full wire encoding of p to the channel. There is no
// buffering and no ordering guarantee beyond what the channel itself provides.
func (s *PacketStream) Send(p Packet) error {
	buf := p.Marshal()
	off := 0
	for off < len(buf) {
		n, err := s.writeChannel(buf[off:])
		off += n
		if err != nil {
			return err
		}
	}
	return nil
}
