// Package memory implements the assistant's persisted key/value memory and
// its append-only interaction log.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/23sarma/Life-os/internal/model"
	"github.com/23sarma/Life-os/internal/store"
)

// Namespace is the item store key holding the memory snapshot.
const Namespace = "lifeos_memory"

// Options configures a Store.
type Options struct {
	// DefaultUserName is used when no name has been learned. Empty means model.DefaultUserName.
	DefaultUserName string

	// DisableLogging stops interaction inputs from being appended to the log.
	// Remembered facts are always logged.
	DisableLogging bool

	Logger zerolog.Logger

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Store is the assistant memory: an ordered key/value map, an interaction log,
// the current mood and the user's display name. Every mutation writes the
// whole state back to the item store.
type Store struct {
	mu      sync.RWMutex
	items   store.Store
	opts    Options
	log     zerolog.Logger
	entropy *ulid.MonotonicEntropy

	keys     []string
	values   map[string]model.Value
	entries  []model.LogEntry
	mood     model.Mood
	userName string
}

// Load reads the persisted snapshot. A missing snapshot yields defaults; a
// malformed one is logged and replaced by defaults.
func Load(ctx context.Context, items store.Store, opts Options) (*Store, error) {
	if opts.DefaultUserName == "" {
		opts.DefaultUserName = model.DefaultUserName
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Store{
		items:   items,
		opts:    opts,
		log:     opts.Logger.With().Str("component", "memory").Logger(),
		entropy: ulid.Monotonic(rand.New(rand.NewSource(opts.Now().UnixNano())), 0),
	}
	s.resetLocked()

	blob, err := items.GetItem(ctx, Namespace)
	if errors.Is(err, store.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load memory: %w", err)
	}

	if err := s.Restore([]byte(blob)); err != nil {
		s.log.Warn().Err(err).Msg("discarding malformed memory snapshot")
	}
	return s, nil
}

func (s *Store) resetLocked() {
	s.keys = nil
	s.values = make(map[string]model.Value)
	s.entries = nil
	s.mood = model.MoodNeutral
	s.userName = s.opts.DefaultUserName
}

func (s *Store) newEntry() model.LogEntry {
	now := s.opts.Now()
	return model.LogEntry{
		ID:        ulid.MustNew(ulid.Timestamp(now), s.entropy).String(),
		Timestamp: now.UnixMilli(),
	}
}

// Remember stores value under key, logs the fact and persists the snapshot.
func (s *Store) Remember(ctx context.Context, key string, value model.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpointLocked(key)
	s.rememberLocked(key, value)
	return s.commitLocked(ctx, cp)
}

// checkpoint is the state a single mutation can touch.
type checkpoint struct {
	keys     int
	entries  int
	mood     model.Mood
	userName string
	key      string
	prev     model.Value
	had      bool
}

func (s *Store) checkpointLocked(key string) checkpoint {
	cp := checkpoint{
		keys:     len(s.keys),
		entries:  len(s.entries),
		mood:     s.mood,
		userName: s.userName,
		key:      key,
	}
	if key != "" {
		cp.prev, cp.had = s.values[key]
	}
	return cp
}

func (s *Store) rollbackLocked(cp checkpoint) {
	s.keys = s.keys[:cp.keys]
	s.entries = s.entries[:cp.entries]
	s.mood = cp.mood
	s.userName = cp.userName
	if cp.key == "" {
		return
	}
	if cp.had {
		s.values[cp.key] = cp.prev
	} else {
		delete(s.values, cp.key)
	}
}

// commitLocked persists the state, restoring cp if the write fails.
func (s *Store) commitLocked(ctx context.Context, cp checkpoint) error {
	if err := s.saveLocked(ctx); err != nil {
		s.rollbackLocked(cp)
		return err
	}
	return nil
}

func (s *Store) rememberLocked(key string, value model.Value) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value

	e := s.newEntry()
	e.Key = key
	v := value
	e.Value = &v
	s.entries = append(s.entries, e)
}

// Recall returns the value stored under key.
func (s *Store) Recall(key string) (model.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// LogInput appends an interaction to the log and persists the snapshot.
func (s *Store) LogInput(ctx context.Context, input string) error {
	if s.opts.DisableLogging {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpointLocked("")
	e := s.newEntry()
	e.Input = input
	s.entries = append(s.entries, e)
	return s.commitLocked(ctx, cp)
}

// SetMood updates the live mood and remembers it as "lastMood".
func (s *Store) SetMood(ctx context.Context, mood model.Mood) error {
	if !model.ValidMoods[mood] {
		return fmt.Errorf("invalid mood %q", mood)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpointLocked("lastMood")
	s.mood = mood
	s.rememberLocked("lastMood", model.String(string(mood)))
	return s.commitLocked(ctx, cp)
}

// SetUserName updates the display name and remembers it as "userName".
func (s *Store) SetUserName(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("user name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpointLocked("userName")
	s.userName = name
	s.rememberLocked("userName", model.String(name))
	return s.commitLocked(ctx, cp)
}

func (s *Store) Mood() model.Mood {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mood
}

func (s *Store) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userName
}

// Size is the number of remembered keys.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// LogLen is the number of interaction log entries.
func (s *Store) LogLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Records returns all key/value pairs in insertion order.
func (s *Store) Records() []model.Pair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Pair, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, model.Pair{Key: k, Value: s.values[k]})
	}
	return out
}

// Entries returns the last limit log entries, oldest first. limit <= 0 returns all.
func (s *Store) Entries(limit int) []model.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := 0
	if limit > 0 && len(s.entries) > limit {
		start = len(s.entries) - limit
	}
	out := make([]model.LogEntry, len(s.entries)-start)
	copy(out, s.entries[start:])
	return out
}

// Reset drops the persisted snapshot and returns to defaults.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.items.RemoveItem(ctx, Namespace); err != nil {
		return fmt.Errorf("reset memory: %w", err)
	}
	s.resetLocked()
	return nil
}

// Snapshot serializes the whole state.
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() ([]byte, error) {
	snap := model.MemorySnapshot{
		Memory:       make([]model.Pair, 0, len(s.keys)),
		LearningData: s.entries,
		Mood:         s.mood,
		UserName:     s.userName,
	}
	if snap.LearningData == nil {
		snap.LearningData = []model.LogEntry{}
	}
	for _, k := range s.keys {
		snap.Memory = append(snap.Memory, model.Pair{Key: k, Value: s.values[k]})
	}
	return json.Marshal(snap)
}

// Restore replaces the in-memory state with a serialized snapshot. Missing
// fields fall back to defaults. The state is unchanged on error.
func (s *Store) Restore(data []byte) error {
	var snap model.MemorySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode memory snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	for _, p := range snap.Memory {
		if _, ok := s.values[p.Key]; !ok {
			s.keys = append(s.keys, p.Key)
		}
		s.values[p.Key] = p.Value
	}
	s.entries = snap.LearningData
	if model.ValidMoods[snap.Mood] {
		s.mood = snap.Mood
	}
	if snap.UserName != "" {
		s.userName = snap.UserName
	}
	return nil
}

func (s *Store) saveLocked(ctx context.Context) error {
	b, err := s.snapshotLocked()
	if err != nil {
		return fmt.Errorf("encode memory snapshot: %w", err)
	}
	if err := s.items.SetItem(ctx, Namespace, string(b)); err != nil {
		return fmt.Errorf("save memory: %w", err)
	}
	s.log.Debug().Int("keys", len(s.keys)).Int("entries", len(s.entries)).Msg("memory snapshot written")
	return nil
}
