package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/abenteuer/internal/presentation/tui"
	"github.com/aretw0/abenteuer/pkg/domain"
)

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
	// MaxInputSize caps one input line in bytes; <= 0 means DefaultMaxInputSize.
	MaxInputSize int

	inputChan chan inputResult
	startOnce sync.Once
	done      chan struct{}
	pumpDone  chan struct{}
	closeOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerMaxInputSize sets the per-line input limit.
func WithTextHandlerMaxInputSize(n int) TextHandlerOption {
	return func(h *TextHandler) {
		h.MaxInputSize = n
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		h.pumpDone = make(chan struct{})
		go h.pump()
	})
}

// pump reads lines in the background so Input can honour cancellation.
// It exits at end of input or, after Close, at the next line it reads.
func (h *TextHandler) pump() {
	defer close(h.pumpDone)
	defer close(h.inputChan)

	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" && !h.send(inputResult{text: text}) {
			return
		}
		if err != nil {
			if err != io.EOF {
				h.send(inputResult{err: err})
			}
			return
		}
	}
}

func (h *TextHandler) send(res inputResult) bool {
	select {
	case h.inputChan <- res:
		return true
	case <-h.done:
		return false
	}
}

// Close stops the input pump. Input returns io.EOF afterwards.
func (h *TextHandler) Close() error {
	h.closeOnce.Do(func() {
		if h.done == nil {
			h.done = make(chan struct{})
		}
		close(h.done)
	})
	return nil
}

// Output renders the scene followed by a key hint.
func (h *TextHandler) Output(ctx context.Context, view domain.View) error {
	output := tui.SceneMarkdown(view)
	if h.Renderer != nil {
		if rendered, err := h.Renderer(output); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(h.Writer, strings.TrimSpace(output))

	if hint := keyHint(view); hint != "" {
		fmt.Fprintln(h.Writer, tui.Faint(hint))
	}
	return nil
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-h.done:
			return "", io.EOF
		default:
			fmt.Fprint(h.Writer, "> ")
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-h.done:
			return "", io.EOF
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			clean, err := SanitizeInput(res.text, h.MaxInputSize)
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	fmt.Fprintln(h.Writer, tui.Faint(msg))
	return nil
}

// keyHint lists the keys that do something in view.
func keyHint(view domain.View) string {
	if view.PendingFeedback != "" {
		return ""
	}

	var keys []string
	if view.Found() && len(view.Scene.Choices) > 0 && !view.Terminal {
		keys = append(keys, fmt.Sprintf("1-%d choose", len(view.Scene.Choices)))
	}
	if view.CanGoBack {
		keys = append(keys, "b back")
	}
	keys = append(keys, "r restart", "q quit")
	return "[" + strings.Join(keys, " | ") + "]"
}
