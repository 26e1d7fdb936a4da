package xswire_test

import (
	"errors"
	"io"
	"testing"
	"time"

	xs "code.hybscloud.com/xswire"
)

func TestPacketStream_SendRecv_RoundTrip(t *testing.T) {
	a, b := xs.NewPacketStreamPipe()

	want, err := xs.NewPacket(xs.OpRead, 1, 0, []byte("/a/b\x00"))
	if err != nil {
		t.Fatalf("NewPacket: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- a.Send(want) }()

	got, err := b.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("Recv() = %v, want %v", got, want)
	}
}

func TestPacketStream_SendRecv_MultiplePackets(t *testing.T) {
	a, b := xs.NewPacketStreamPipe()

	packets := []xs.Packet{}
	for i := 0; i < 3; i++ {
		p, _ := xs.NewPacket(xs.OpWrite, uint32(i), 1, []byte("/x\x00v\x00"))
		packets = append(packets, p)
	}

	errs := make(chan error, 1)
	go func() {
		for _, p := range packets {
			if err := a.Send(p); err != nil {
				errs <- err
				return
			}
		}
		errs <- nil
	}()

	for _, want := range packets {
		got, err := b.Recv()
		if err != nil {
			t.Fatalf("Recv: %v", err)
		}
		if !got.Equal(want) {
			t.Fatalf("Recv() = %v, want %v", got, want)
		}
	}
	if err := <-errs; err != nil {
		t.Fatalf("Send: %v", err)
	}
}

func TestPacketStream_Recv_EndOfStreamOnClose(t *testing.T) {
	r, w := io.Pipe()
	s := xs.NewPacketStream(r, new(discardWriter))

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Close()
	}()
	<-done

	_, err := s.Recv()
	if !errors.Is(err, xs.ErrEndOfStream) {
		t.Fatalf("Recv() err = %v, want ErrEndOfStream", err)
	}
}

func TestPacketStream_Recv_FragmentedAcrossReads(t *testing.T) {
	pr, pw := io.Pipe()
	s := xs.NewPacketStream(pr, new(discardWriter))

	p, err := xs.NewPacket(xs.OpRead, 9, 0, []byte("/a/b\x00"))
	if err != nil {
		t.Fatalf("NewPacket: %v", err)
	}
	raw := p.Marshal()

	go func() {
		for i := 0; i < len(raw); i++ {
			pw.Write(raw[i : i+1])
			time.Sleep(time.Millisecond)
		}
	}()

	got, err := s.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if !got.Equal(p) {
		t.Fatalf("Recv() = %v, want %v", got, p)
	}
}

// discardWriter is a no-op io.Writer used for Recv-only test channels.
type discardWriter struct{}

func (*discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// wouldBlockOnceReader returns ErrWouldBlock exactly once before delegating
// to the wrapped reader, mirroring the teacher's non-blocking-channel fakes.
type wouldBlockOnceReader struct {
	inner   io.Reader
	blocked bool
}

func (r *wouldBlockOnceReader) Read(p []byte) (int, error) {
	if !r.blocked {
		r.blocked = true
		return 0, xs.ErrWouldBlock
	}
	return r.inner.Read(p)
}

func TestPacketStream_WithBlock_RetriesOnWouldBlock(t *testing.T) {
	pr, pw := io.Pipe()
	fake := &wouldBlockOnceReader{inner: pr}
	s := xs.NewPacketStream(fake, new(discardWriter), xs.WithBlock())

	p, _ := xs.NewPacket(xs.OpRead, 1, 0, []byte("/a\x00"))
	raw := p.Marshal()
	go pw.Write(raw)

	got, err := s.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if !got.Equal(p) {
		t.Fatalf("Recv() = %v, want %v", got, p)
	}
}

func TestPacketStream_WithNonblock_ReturnsErrWouldBlock(t *testing.T) {
	fake := &wouldBlockOnceReader{inner: new(io.PipeReader)}
	s := xs.NewPacketStream(fake, new(discardWriter), xs.WithNonblock())

	_, err := s.Recv()
	if !errors.Is(err, xs.ErrWouldBlock) {
		t.Fatalf("Recv() err = %v, want ErrWouldBlock", err)
	}
}
