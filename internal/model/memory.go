// Package model defines the core assistant data types.
package model

import (
	"encoding/json"
	"fmt"
)

// Mood is the inferred emotional state of the user.
type Mood string

const (
	MoodNeutral  Mood = "neutral"
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodStressed Mood = "stressed"
)

// ValidMoods are the allowed mood labels.
var ValidMoods = map[Mood]bool{
	MoodNeutral:  true,
	MoodHappy:    true,
	MoodSad:      true,
	MoodStressed: true,
}

// DefaultUserName is the display name used until the user introduces themselves.
const DefaultUserName = "User"

// LogEntry is one element of the append-only interaction log.
// Interactions carry Input; remembered facts carry Key and Value.
type LogEntry struct {
	ID        string `json:"id,omitempty"`
	Input     string `json:"input,omitempty"`
	Key       string `json:"key,omitempty"`
	Value     *Value `json:"value,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// IsFact reports whether the entry records a remembered key/value pair.
func (e LogEntry) IsFact() bool {
	return e.Key != ""
}

// UnmarshalJSON keeps a remembered null as a null Value instead of a nil pointer.
func (e *LogEntry) UnmarshalJSON(b []byte) error {
	type plain LogEntry
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if p.Key != "" && p.Value == nil {
		p.Value = &Value{raw: json.RawMessage("null")}
	}
	*e = LogEntry(p)
	return nil
}

// Pair is a single memory record serialized as a two-element JSON array.
type Pair struct {
	Key   string
	Value Value
}

func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Key, p.Value})
}

func (p *Pair) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("memory pair: expected 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.Key); err != nil {
		return fmt.Errorf("memory pair key: %w", err)
	}
	return p.Value.UnmarshalJSON(raw[1])
}

// MemorySnapshot is the persisted form of the assistant memory.
type MemorySnapshot struct {
	Memory       []Pair     `json:"memory"`
	LearningData []LogEntry `json:"learningData"`
	Mood         Mood       `json:"mood"`
	UserName     string     `json:"userName"`
}

// SystemStatus is the aggregate readout shown next to the chat.
type SystemStatus struct {
	MemorySize      int    `json:"memorySize"`
	LearningEntries int    `json:"learningEntries"`
	CurrentMood     Mood   `json:"currentMood"`
	UserName        string `json:"userName"`
	Uptime          int64  `json:"uptime"`
	Health          string `json:"health"`
}
