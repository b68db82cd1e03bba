package retouch

import (
	"log/slog"
	"sync"
	"time"
)

// Session holds the state of one loaded image: the original buffer, the
// current parameters, the filtered result and the active view mode. Each
// loaded image gets its own session; nothing is shared between sessions.
//
// Methods are safe for concurrent use, so debounced parameter updates may
// arrive from timer goroutines while the UI thread presents frames.
type Session struct {
	mu       sync.Mutex
	original *Buffer
	filtered *Buffer
	params   Params
	mode     ViewMode
}

// NewSession starts a session for a freshly decoded image. Parameters start
// at identity and the view mode at ModeFiltered, so the first presented
// frame matches the original image exactly.
func NewSession(original *Buffer) (*Session, error) {
	if err := validBuffer(original); err != nil {
		return nil, err
	}
	return &Session{
		original: original,
		filtered: original.Clone(),
		mode:     ModeFiltered,
	}, nil
}

// SetParams stores p and refilters from the original buffer. Filtering never
// starts from the previous filtered result, so repeated adjustments do not
// compound rounding error.
func (s *Session) SetParams(p Params) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refilter(p)
}

// Reset reverts the parameters to identity, restoring the original pixels in
// the filtered buffer.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refilter(Params{})
}

func (s *Session) refilter(p Params) error {
	started := time.Now()
	filtered, err := Apply(s.original, p)
	if err != nil {
		return err
	}
	s.params = p
	s.filtered = filtered
	Logger().Debug("session refiltered",
		slog.Int("width", s.original.Width),
		slog.Int("height", s.original.Height),
		slog.Duration("elapsed", time.Since(started)))
	return nil
}

// Replace swaps in a newly loaded image. Parameters reset to identity while
// the view mode carries over from the previous image.
func (s *Session) Replace(original *Buffer) error {
	if err := validBuffer(original); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.original = original
	s.filtered = original.Clone()
	s.params = Params{}
	return nil
}

// Params returns the current parameter snapshot.
func (s *Session) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SetMode selects the view mode used by Present.
func (s *Session) SetMode(mode ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// Mode returns the active view mode.
func (s *Session) Mode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Original returns the original buffer. Callers must treat it as read-only.
func (s *Session) Original() *Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original
}

// Filtered returns the buffer with the current parameters applied. Callers
// must treat it as read-only; it is replaced wholesale on the next SetParams.
func (s *Session) Filtered() *Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filtered
}

// Present composes the frame for the session's view mode and the given
// theme.
func (s *Session) Present(theme Theme, opts ...func(o *PresentOptions)) (*Buffer, error) {
	s.mu.Lock()
	original, filtered, mode := s.original, s.filtered, s.mode
	s.mu.Unlock()
	return Present(original, filtered, mode, theme, opts...)
}
