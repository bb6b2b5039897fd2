// Package speech wraps an external speech-to-text capability. Consumers only
// see the transcribed text or an error string.
package speech

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrUnsupported is the message reported when no recognizer is available.
const ErrUnsupported = "Speech recognition not supported"

// Recognizer captures one utterance per listening session.
type Recognizer interface {
	// Available reports whether capture is possible. Fixed at construction.
	Available() bool

	// StartListening begins a capture. Exactly one of onResult or onError is
	// called, from another goroutine. A capture already in progress is stopped.
	StartListening(ctx context.Context, onResult func(text string), onError func(reason string))

	// StopListening stops the active capture, if any. No callback fires for it.
	StopListening()

	// IsActive reports whether a capture is in progress.
	IsActive() bool
}

// Unsupported is a Recognizer for platforms without speech input.
type Unsupported struct{}

func (Unsupported) Available() bool { return false }

func (Unsupported) StartListening(_ context.Context, _ func(string), onError func(string)) {
	if onError != nil {
		onError(ErrUnsupported)
	}
}

func (Unsupported) StopListening() {}

func (Unsupported) IsActive() bool { return false }

// CommandConfig describes an external transcription program. The program
// must print the transcript on stdout; the first non-empty line is used.
type CommandConfig struct {
	Command  string
	Args     []string
	Language string
}

// CommandRecognizer runs a transcription command once per session.
type CommandRecognizer struct {
	cfg       CommandConfig
	path      string
	available bool
	log       zerolog.Logger

	mu      sync.Mutex
	session string
	cancel  context.CancelFunc
}

// NewCommandRecognizer resolves the command on PATH. An unresolvable command
// yields a recognizer that reports itself unavailable.
func NewCommandRecognizer(cfg CommandConfig, logger zerolog.Logger) *CommandRecognizer {
	r := &CommandRecognizer{
		cfg: cfg,
		log: logger.With().Str("component", "speech").Logger(),
	}
	if cfg.Command == "" {
		return r
	}
	path, err := exec.LookPath(cfg.Command)
	if err != nil {
		r.log.Debug().Err(err).Str("command", cfg.Command).Msg("speech command not found")
		return r
	}
	r.path = path
	r.available = true
	return r
}

func (r *CommandRecognizer) Available() bool {
	return r.available
}

func (r *CommandRecognizer) IsActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session != ""
}

func (r *CommandRecognizer) StopListening() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *CommandRecognizer) stopLocked() {
	if r.cancel != nil {
		r.cancel()
	}
	r.cancel = nil
	r.session = ""
}

func (r *CommandRecognizer) StartListening(ctx context.Context, onResult func(string), onError func(string)) {
	if !r.available {
		if onError != nil {
			onError(ErrUnsupported)
		}
		return
	}

	r.mu.Lock()
	r.stopLocked()
	ctx, cancel := context.WithCancel(ctx)
	id := uuid.NewString()
	r.session = id
	r.cancel = cancel
	r.mu.Unlock()

	r.log.Debug().Str("session", id).Msg("listening")

	go func() {
		text, err := r.capture(ctx)

		r.mu.Lock()
		current := r.session == id
		if current {
			r.session = ""
			r.cancel = nil
		}
		r.mu.Unlock()
		cancel()

		// A superseded or stopped session reports nothing.
		if !current {
			return
		}
		if err != nil {
			r.log.Debug().Str("session", id).Err(err).Msg("capture failed")
			if onError != nil {
				onError(err.Error())
			}
			return
		}
		if onResult != nil {
			onResult(text)
		}
	}()
}

func (r *CommandRecognizer) capture(ctx context.Context) (string, error) {
	args := make([]string, 0, len(r.cfg.Args))
	for _, a := range r.cfg.Args {
		args = append(args, strings.ReplaceAll(a, "{lang}", r.cfg.Language))
	}

	cmd := exec.CommandContext(ctx, r.path, args...)
	cmd.WaitDelay = time.Second
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("run %s: %w", r.cfg.Command, err)
	}

	sc := bufio.NewScanner(strings.NewReader(string(out)))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line, nil
		}
	}
	return "", errors.New("no-speech")
}
