package input

import (
	"bufio"
	"time"

	"github.com/tomz197/catcher/internal/physics"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// It must exceed the terminal's auto-repeat interval.
const keyHoldDuration = 120 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	// Restart is set only on the frame the key arrives.
	Restart bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
}

// Vector converts the held direction keys into a movement vector with each
// axis in {-1, 0, 1}. Up is +Y.
func (in Input) Vector() physics.Vec {
	var v physics.Vec
	if in.Right {
		v.X++
	}
	if in.Left {
		v.X--
	}
	if in.Up {
		v.Y++
	}
	if in.Down {
		v.Y--
	}
	return v
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit  time.Time
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Escape sequence prefix cut off by the last drain
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended and every byte
// has been consumed.
func (s *Stream) Closed() bool { return s.closed }

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys, including ones split across drains.
func ReadInput(s *Stream) Input {
	return readAt(s, time.Now())
}

func readAt(s *Stream, now time.Time) Input {
	buf := append([]byte(nil), s.pending...)
	s.pending = s.pending[:0]
	restart := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && isCSIPrefix(buf[i:]) {
			s.pending = append(s.pending, buf[i:]...)
			break
		}
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
				i += 2
				continue
			case 'B':
				s.state.down = now
				i += 2
				continue
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			}
		}

		if b == 'r' || b == 'R' {
			restart = true
			continue
		}
		applyByteToState(&s.state, b, now)
	}

	held := func(t time.Time) bool { return !t.IsZero() && now.Sub(t) < keyHoldDuration }
	return Input{
		Quit:    held(s.state.quit),
		Restart: restart,
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Up:      held(s.state.up),
		Down:    held(s.state.down),
	}
}

// isCSIPrefix reports whether b is an incomplete CSI sequence, "ESC" or
// "ESC [", whose remaining bytes have not arrived yet.
func isCSIPrefix(b []byte) bool {
	switch len(b) {
	case 1:
		return true
	case 2:
		return b[1] == '['
	}
	return false
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03': // Ctrl+C arrives as a byte in raw mode
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	}
}
