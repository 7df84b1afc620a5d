package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a status line on statusOut while a slow step runs, such
// as Graphviz rendering.
type spinner struct {
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once

	mu    sync.Mutex
	label string
	frame int
	width int // visible width of the last line drawn
}

// startSpinner draws the first frame immediately and keeps animating until
// stop is called or ctx ends.
func startSpinner(ctx context.Context, format string, args ...any) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
		label:   fmt.Sprintf(format, args...),
	}
	s.draw()
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			s.draw()
		}
	}
}

func (s *spinner) draw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame := spinnerFrames[s.frame%len(spinnerFrames)]
	s.frame++

	fmt.Fprintf(statusOut, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.label))
	s.width = len([]rune(s.label)) + 2
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(statusOut, "\r%s\r", strings.Repeat(" ", s.width))
	s.width = 0
}

// stop ends the animation and erases the line. Calling it again is a no-op.
func (s *spinner) stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.stopped
		s.clear()
	})
}

// interrupted reports whether the caller's context ended, as opposed to
// the spinner being stopped normally.
func (s *spinner) interrupted() bool {
	return s.parent.Err() != nil
}
