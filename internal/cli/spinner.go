package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/photopack/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner draws a progress line with the current pipeline stage and the
// elapsed time. It stops on its own when the context is cancelled.
type Spinner struct {
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	stop    sync.Once

	mu      sync.Mutex
	message string
	started time.Time
	drawn   int // width of the last drawn line
}

func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		message: message,
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = time.Now()
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// SetMessage replaces the stage text shown next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elapsed := time.Since(s.started).Truncate(100 * time.Millisecond)
	text := fmt.Sprintf("%s (%s)", s.message, elapsed)
	pad := ""
	if n := len(text) + 2; n < s.drawn {
		pad = strings.Repeat(" ", s.drawn-n)
	} else {
		s.drawn = n
	}
	fmt.Fprintf(statusOut, "\r%s %s%s", styleIconSpinner.Render(frame), StyleDim.Render(text), pad)
}

// Stop ends the animation and clears the line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		s.cancel()
		close(s.done)
		<-s.stopped
		s.clearLine()
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawn > 0 {
		fmt.Fprintf(statusOut, "\r%s\r", strings.Repeat(" ", s.drawn))
	}
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context has ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// spinnerHooks moves the spinner through the pipeline stages and forwards
// every event to the hooks that were registered before it.
type spinnerHooks struct {
	spinner *Spinner
	next    observability.PipelineHooks
}

// trackStages installs spinner hooks for the duration of a run. The returned
// func restores the previous hooks.
func trackStages(s *Spinner) (restore func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(spinnerHooks{spinner: s, next: prev})
	return func() { observability.SetPipelineHooks(prev) }
}

func (h spinnerHooks) OnPackStart(ctx context.Context, ordering string, photos, width int) {
	h.spinner.SetMessage(fmt.Sprintf("Packing %d photos (%s) into width %d...", photos, ordering, width))
	h.next.OnPackStart(ctx, ordering, photos, width)
}

func (h spinnerHooks) OnPackComplete(ctx context.Context, ordering string, placed, height int, d time.Duration, err error) {
	h.next.OnPackComplete(ctx, ordering, placed, height, d, err)
}

func (h spinnerHooks) OnRenderStart(ctx context.Context, formats []string) {
	h.spinner.SetMessage(fmt.Sprintf("Rendering %s...", strings.Join(formats, ", ")))
	h.next.OnRenderStart(ctx, formats)
}

func (h spinnerHooks) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	h.next.OnRenderComplete(ctx, formats, d, err)
}
