// Package engine implements the rule-based responder: an ordered list of
// keyword rules evaluated against the lowercased input, first match wins.
package engine

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/23sarma/Life-os/internal/model"
)

// Memory is the state the engine reads and mutates.
type Memory interface {
	LogInput(ctx context.Context, input string) error
	SetMood(ctx context.Context, mood model.Mood) error
	SetUserName(ctx context.Context, name string) error
	Mood() model.Mood
	UserName() string
}

// Options configures an Engine.
type Options struct {
	// DisableEmotionDetection makes the mood rule report the current mood
	// instead of re-detecting it from the input.
	DisableEmotionDetection bool

	Logger zerolog.Logger
}

// Engine maps free text to a reply.
type Engine struct {
	mem   Memory
	opts  Options
	log   zerolog.Logger
	rules []rule
}

// rule fires when the input contains any keyword. A reply returning ok=false
// lets evaluation continue with the next rule.
type rule struct {
	name     string
	keywords []string
	reply    func(ctx context.Context, input string) (reply string, ok bool, err error)
}

var namePattern = regexp.MustCompile(`(?i)my name is (\w+)`)

// New creates an Engine bound to mem.
func New(mem Memory, opts Options) *Engine {
	e := &Engine{
		mem:  mem,
		opts: opts,
		log:  opts.Logger.With().Str("component", "engine").Logger(),
	}
	e.rules = []rule{
		{name: "greeting", keywords: []string{"hello", "hi"}, reply: e.greet},
		{name: "schedule", keywords: []string{"schedule", "meeting"}, reply: fixed(ReplySchedule)},
		{name: "health", keywords: []string{"health", "feel"}, reply: fixed(ReplyHealth)},
		{name: "learning", keywords: []string{"learn", "study"}, reply: fixed(ReplyLearning)},
		{name: "finance", keywords: []string{"finance", "money"}, reply: fixed(ReplyFinance)},
		{name: "mood", keywords: []string{"mood", "emotion"}, reply: e.mood},
		{name: "name", keywords: []string{"name"}, reply: e.introduce},
	}
	return e
}

const (
	ReplySchedule = "I'll help you schedule that. What time and date works best for you?"
	ReplyHealth   = "I'm monitoring your wellness. Remember to stay hydrated and take breaks. How are you feeling today?"
	ReplyLearning = "Great! I can help you learn. What subject interests you? I have modules for programming, languages, science, and more."
	ReplyFinance  = "I can help with budget planning and financial advice. What specific area would you like guidance on?"
)

// Respond logs the input and returns the reply of the first matching rule.
func (e *Engine) Respond(ctx context.Context, input string) (string, error) {
	if err := e.mem.LogInput(ctx, input); err != nil {
		return "", err
	}

	lower := strings.ToLower(input)
	for _, r := range e.rules {
		if !containsAny(lower, r.keywords) {
			continue
		}
		reply, ok, err := r.reply(ctx, input)
		if err != nil {
			return "", fmt.Errorf("rule %s: %w", r.name, err)
		}
		if ok {
			e.log.Debug().Str("rule", r.name).Msg("rule matched")
			return reply, nil
		}
	}

	e.log.Debug().Str("rule", "default").Msg("no rule matched")
	return fmt.Sprintf("I understand you're asking about: %s. Let me process this and provide the best assistance. I'm continuously learning to serve you better.", input), nil
}

func (e *Engine) greet(context.Context, string) (string, bool, error) {
	return fmt.Sprintf("Hello %s! I'm LifeOS, your AI life assistant. How can I help you today?", e.mem.UserName()), true, nil
}

func (e *Engine) mood(ctx context.Context, input string) (string, bool, error) {
	mood := e.mem.Mood()
	if !e.opts.DisableEmotionDetection {
		mood = DetectMood(input)
		if err := e.mem.SetMood(ctx, mood); err != nil {
			return "", false, err
		}
	}
	return fmt.Sprintf("I sense you're feeling %s. I'm here to support you. Would you like to talk about it?", mood), true, nil
}

func (e *Engine) introduce(ctx context.Context, input string) (string, bool, error) {
	m := namePattern.FindStringSubmatch(input)
	if m == nil {
		return "", false, nil
	}
	if err := e.mem.SetUserName(ctx, m[1]); err != nil {
		return "", false, err
	}
	return fmt.Sprintf("Nice to meet you, %s! I'll remember that.", m[1]), true, nil
}

func fixed(reply string) func(context.Context, string) (string, bool, error) {
	return func(context.Context, string) (string, bool, error) {
		return reply, true, nil
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
