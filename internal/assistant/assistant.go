// Package assistant wires the memory, responder, planner and speech input
// into one context object constructed at startup.
package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/23sarma/Life-os/internal/config"
	"github.com/23sarma/Life-os/internal/engine"
	"github.com/23sarma/Life-os/internal/memory"
	"github.com/23sarma/Life-os/internal/model"
	"github.com/23sarma/Life-os/internal/planner"
	"github.com/23sarma/Life-os/internal/speech"
	"github.com/23sarma/Life-os/internal/store"
)

// Welcome is shown when a chat session starts.
const Welcome = "Hello! I'm LifeOS, your AI life assistant. I'm ready to help you with planning, learning, health, finance, and much more. Try saying 'Hello' or ask me anything!"

// HealthOptimal is the only health value reported.
const HealthOptimal = "optimal"

// Assistant is the application context.
type Assistant struct {
	Memory  *memory.Store
	Engine  *engine.Engine
	Planner *planner.Planner
	Speech  speech.Recognizer

	items   store.Store
	cfg     config.Config
	log     zerolog.Logger
	started time.Time
}

// Option customizes New.
type Option func(*Assistant)

// WithRecognizer replaces the recognizer built from the voice config.
func WithRecognizer(r speech.Recognizer) Option {
	return func(a *Assistant) { a.Speech = r }
}

// New loads all persisted state from items.
func New(ctx context.Context, items store.Store, cfg *config.Config, logger zerolog.Logger, opts ...Option) (*Assistant, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &Assistant{
		items:   items,
		cfg:     *cfg,
		log:     logger,
		started: time.Now(),
	}
	if err := a.load(ctx); err != nil {
		return nil, err
	}

	if cfg.Voice.Enabled {
		a.Speech = speech.NewCommandRecognizer(speech.CommandConfig{
			Command:  cfg.Voice.Command,
			Args:     cfg.Voice.Args,
			Language: cfg.Voice.Language,
		}, logger)
	} else {
		a.Speech = speech.Unsupported{}
	}

	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *Assistant) load(ctx context.Context) error {
	mem, err := memory.Load(ctx, a.items, memory.Options{
		DefaultUserName: a.cfg.Assistant.DefaultUserName,
		DisableLogging:  !a.cfg.Assistant.AutoLearning,
		Logger:          a.log,
	})
	if err != nil {
		return err
	}
	pl, err := planner.Load(ctx, a.items, planner.Options{Logger: a.log})
	if err != nil {
		return err
	}

	a.Memory = mem
	a.Planner = pl
	a.Engine = engine.New(mem, engine.Options{
		DisableEmotionDetection: !a.cfg.Assistant.EmotionDetection,
		Logger:                  a.log,
	})
	return nil
}

// Greeting is the banner shown when a session starts.
func (a *Assistant) Greeting() string {
	return Welcome
}

// ProcessCommand runs text through the responder.
func (a *Assistant) ProcessCommand(ctx context.Context, text string) (string, error) {
	return a.Engine.Respond(ctx, text)
}

// Reply is ProcessCommand followed by the configured thinking delay. The
// state change happens before the delay; cancelling ctx only cuts the wait.
func (a *Assistant) Reply(ctx context.Context, text string) (string, error) {
	reply, err := a.ProcessCommand(ctx, text)
	if err != nil {
		return "", err
	}
	if d := a.cfg.Assistant.ThinkDelay; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return reply, ctx.Err()
		}
	}
	return reply, nil
}

// SystemStatus reports memory aggregates. It has no side effects.
func (a *Assistant) SystemStatus() model.SystemStatus {
	return model.SystemStatus{
		MemorySize:      a.Memory.Size(),
		LearningEntries: a.Memory.LogLen(),
		CurrentMood:     a.Memory.Mood(),
		UserName:        a.Memory.UserName(),
		Uptime:          time.Since(a.started).Milliseconds(),
		Health:          HealthOptimal,
	}
}

// Reset clears memory and planner.
func (a *Assistant) Reset(ctx context.Context) error {
	if err := a.Memory.Reset(ctx); err != nil {
		return err
	}
	return a.Planner.Reset(ctx)
}

// Export returns the persisted snapshots of both components.
func (a *Assistant) Export(ctx context.Context) ([]store.Item, error) {
	var out []store.Item
	for _, ns := range []string{memory.Namespace, planner.Namespace} {
		items, err := store.ExportAll(ctx, a.items, ns)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", ns, err)
		}
		out = append(out, items...)
	}
	return out, nil
}

// Import writes snapshots from an export and reloads the components.
// Items for unknown namespaces are rejected.
func (a *Assistant) Import(ctx context.Context, items []store.Item) (int, error) {
	for _, it := range items {
		if it.NS != memory.Namespace && it.NS != planner.Namespace {
			return 0, fmt.Errorf("import: unknown namespace %q", it.NS)
		}
	}
	n, err := store.Import(ctx, a.items, items)
	if err != nil {
		return n, err
	}
	return n, a.load(ctx)
}
