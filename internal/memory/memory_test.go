package memory

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/23sarma/Life-os/internal/model"
	"github.com/23sarma/Life-os/internal/store"
)

func newTestMemory(t *testing.T, items store.Store) *Store {
	t.Helper()
	m, err := Load(context.Background(), items, Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return m
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// brokenStore fails every write once failing is set.
type brokenStore struct {
	*store.MemStore
	failing bool
}

func (b *brokenStore) SetItem(ctx context.Context, ns, blob string) error {
	if b.failing {
		return errors.New("disk full")
	}
	return b.MemStore.SetItem(ctx, ns, blob)
}

func TestLoad_Defaults(t *testing.T) {
	m := newTestMemory(t, store.NewMemStore())

	if m.Mood() != model.MoodNeutral {
		t.Errorf("expected neutral mood, got %q", m.Mood())
	}
	if m.UserName() != "User" {
		t.Errorf("expected default name User, got %q", m.UserName())
	}
	if m.Size() != 0 || m.LogLen() != 0 {
		t.Errorf("expected empty memory, got size=%d log=%d", m.Size(), m.LogLen())
	}
}

func TestRememberRecall(t *testing.T) {
	ctx := context.Background()
	m := newTestMemory(t, store.NewMemStore())

	obj, err := model.ValueOf(map[string]any{"city": "Lisbon", "visits": 3})
	mustNoErr(t, err)

	mustNoErr(t, m.Remember(ctx, "favorite", model.String("tea")))
	mustNoErr(t, m.Remember(ctx, "trip", obj))

	got, ok := m.Recall("favorite")
	if !ok || !got.Equal(model.String("tea")) {
		t.Errorf("expected favorite=tea, got %s (ok=%v)", got, ok)
	}
	got, ok = m.Recall("trip")
	if !ok || !got.Equal(obj) {
		t.Errorf("expected trip=%s, got %s (ok=%v)", obj, got, ok)
	}
	if _, ok := m.Recall("never-set"); ok {
		t.Error("expected never-set to be absent")
	}

	if m.Size() != 2 {
		t.Errorf("expected size 2, got %d", m.Size())
	}
	if m.LogLen() != 2 {
		t.Errorf("expected 2 log entries, got %d", m.LogLen())
	}
}

func TestRemember_OverwriteKeepsOrder(t *testing.T) {
	ctx := context.Background()
	m := newTestMemory(t, store.NewMemStore())

	mustNoErr(t, m.Remember(ctx, "a", model.Number(1)))
	mustNoErr(t, m.Remember(ctx, "b", model.Number(2)))
	mustNoErr(t, m.Remember(ctx, "a", model.Number(3)))

	recs := m.Records()
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Key != "a" || recs[0].Value.String() != "3" {
		t.Errorf("expected a=3 first, got %s=%s", recs[0].Key, recs[0].Value)
	}
	if m.LogLen() != 3 {
		t.Errorf("expected every remember to be logged, got %d entries", m.LogLen())
	}
}

func TestRemember_NullSurvivesReload(t *testing.T) {
	ctx := context.Background()
	items := store.NewMemStore()
	m := newTestMemory(t, items)

	null, err := model.ValueOf(nil)
	mustNoErr(t, err)
	mustNoErr(t, m.Remember(ctx, "nothing", null))

	reloaded := newTestMemory(t, items)
	entries := reloaded.Entries(0)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Value == nil {
		t.Fatal("expected remembered null to keep its value")
	}
	if entries[0].Value.Kind() != model.KindNull {
		t.Errorf("expected null kind, got %s", entries[0].Value.Kind())
	}
	if !reflect.DeepEqual(m.Entries(0), entries) {
		t.Errorf("expected entries to round-trip\nbefore: %+v\nafter:  %+v", m.Entries(0), entries)
	}
}

func TestLogInput(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1700000000123)
	m, err := Load(ctx, store.NewMemStore(), Options{Now: func() time.Time { return now }})
	mustNoErr(t, err)

	mustNoErr(t, m.LogInput(ctx, "hello there"))

	entries := m.Entries(0)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Input != "hello there" {
		t.Errorf("expected input to be logged, got %q", e.Input)
	}
	if e.Timestamp != 1700000000123 {
		t.Errorf("expected ms timestamp, got %d", e.Timestamp)
	}
	if e.ID == "" {
		t.Error("expected entry id")
	}
	if e.IsFact() {
		t.Error("interaction must not be a fact")
	}
}

func TestLogInput_Disabled(t *testing.T) {
	ctx := context.Background()
	m, err := Load(ctx, store.NewMemStore(), Options{DisableLogging: true})
	mustNoErr(t, err)

	mustNoErr(t, m.LogInput(ctx, "ignored"))
	if m.LogLen() != 0 {
		t.Errorf("expected input not to be logged, got %d entries", m.LogLen())
	}

	mustNoErr(t, m.Remember(ctx, "k", model.Bool(true)))
	if m.LogLen() != 1 {
		t.Errorf("expected facts to be logged, got %d entries", m.LogLen())
	}
}

func TestEntries_Limit(t *testing.T) {
	ctx := context.Background()
	m := newTestMemory(t, store.NewMemStore())
	for _, in := range []string{"one", "two", "three"} {
		mustNoErr(t, m.LogInput(ctx, in))
	}

	last := m.Entries(2)
	if len(last) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(last))
	}
	if last[0].Input != "two" || last[1].Input != "three" {
		t.Errorf("expected the last two inputs, got %q, %q", last[0].Input, last[1].Input)
	}
}

func TestSetMoodAndName(t *testing.T) {
	ctx := context.Background()
	m := newTestMemory(t, store.NewMemStore())

	mustNoErr(t, m.SetMood(ctx, model.MoodStressed))
	mustNoErr(t, m.SetUserName(ctx, "Aria"))

	if m.Mood() != model.MoodStressed {
		t.Errorf("expected stressed, got %q", m.Mood())
	}
	if m.UserName() != "Aria" {
		t.Errorf("expected Aria, got %q", m.UserName())
	}
	if v, ok := m.Recall("lastMood"); !ok || v.String() != "stressed" {
		t.Errorf("expected lastMood=stressed, got %s (ok=%v)", v, ok)
	}
	if v, ok := m.Recall("userName"); !ok || v.String() != "Aria" {
		t.Errorf("expected userName=Aria, got %s (ok=%v)", v, ok)
	}

	if err := m.SetMood(ctx, "confused"); err == nil {
		t.Error("expected error for unknown mood")
	}
	if err := m.SetUserName(ctx, ""); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestFailedWriteLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	items := &brokenStore{MemStore: store.NewMemStore()}
	m := newTestMemory(t, items)

	mustNoErr(t, m.Remember(ctx, "k", model.String("old")))
	mustNoErr(t, m.SetMood(ctx, model.MoodHappy))
	before, err := m.Snapshot()
	mustNoErr(t, err)

	items.failing = true
	if err := m.Remember(ctx, "k", model.String("new")); err == nil {
		t.Error("expected remember overwrite to fail")
	}
	if err := m.Remember(ctx, "fresh", model.String("v")); err == nil {
		t.Error("expected remember to fail")
	}
	if err := m.LogInput(ctx, "hello"); err == nil {
		t.Error("expected log input to fail")
	}
	if err := m.SetMood(ctx, model.MoodSad); err == nil {
		t.Error("expected set mood to fail")
	}
	if err := m.SetUserName(ctx, "Zed"); err == nil {
		t.Error("expected set user name to fail")
	}

	after, err := m.Snapshot()
	mustNoErr(t, err)
	if string(before) != string(after) {
		t.Errorf("expected state unchanged\nbefore: %s\nafter:  %s", before, after)
	}
	if v, _ := m.Recall("k"); v.String() != "old" {
		t.Errorf("expected k=old, got %s", v)
	}
	if _, ok := m.Recall("fresh"); ok {
		t.Error("expected fresh to be absent")
	}
	if m.Size() != 2 || m.LogLen() != 2 {
		t.Errorf("expected size=2 log=2, got size=%d log=%d", m.Size(), m.LogLen())
	}
	if m.UserName() != "User" || m.Mood() != model.MoodHappy {
		t.Errorf("expected User/happy, got %s/%s", m.UserName(), m.Mood())
	}

	items.failing = false
	mustNoErr(t, m.Remember(ctx, "fresh", model.String("v")))
	if recs := m.Records(); len(recs) != 3 || recs[2].Key != "fresh" {
		t.Errorf("expected fresh appended after recovery, got %+v", recs)
	}
}

func TestPersistReload(t *testing.T) {
	ctx := context.Background()
	items := store.NewMemStore()
	m := newTestMemory(t, items)

	mustNoErr(t, m.Remember(ctx, "color", model.String("blue")))
	mustNoErr(t, m.LogInput(ctx, "hi"))
	mustNoErr(t, m.SetMood(ctx, model.MoodHappy))
	mustNoErr(t, m.SetUserName(ctx, "Sam"))

	reloaded := newTestMemory(t, items)
	if !reflect.DeepEqual(m.Records(), reloaded.Records()) {
		t.Errorf("records differ after reload: %+v vs %+v", m.Records(), reloaded.Records())
	}
	if !reflect.DeepEqual(m.Entries(0), reloaded.Entries(0)) {
		t.Errorf("entries differ after reload")
	}
	if reloaded.Mood() != model.MoodHappy {
		t.Errorf("expected happy, got %q", reloaded.Mood())
	}
	if reloaded.UserName() != "Sam" {
		t.Errorf("expected Sam, got %q", reloaded.UserName())
	}
	if v, ok := reloaded.Recall("color"); !ok || v.String() != "blue" {
		t.Errorf("expected color=blue, got %s (ok=%v)", v, ok)
	}
}

func TestSnapshotLayout(t *testing.T) {
	ctx := context.Background()
	items := store.NewMemStore()
	m := newTestMemory(t, items)
	mustNoErr(t, m.Remember(ctx, "k", model.String("v")))

	blob, err := items.GetItem(ctx, Namespace)
	mustNoErr(t, err)

	var raw map[string]json.RawMessage
	mustNoErr(t, json.Unmarshal([]byte(blob), &raw))
	for _, key := range []string{"memory", "learningData", "mood", "userName"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("expected key %q in snapshot", key)
		}
	}
	if string(raw["memory"]) != `[["k","v"]]` {
		t.Errorf("expected memory as pairs, got %s", raw["memory"])
	}
}

func TestLoad_MalformedResetsToDefaults(t *testing.T) {
	ctx := context.Background()
	items := store.NewMemStore()
	mustNoErr(t, items.SetItem(ctx, Namespace, "{not json"))

	m := newTestMemory(t, items)
	if m.Mood() != model.MoodNeutral || m.UserName() != "User" || m.Size() != 0 {
		t.Errorf("expected defaults, got mood=%s name=%s size=%d", m.Mood(), m.UserName(), m.Size())
	}
}

func TestLoad_PartialSnapshot(t *testing.T) {
	ctx := context.Background()
	items := store.NewMemStore()
	mustNoErr(t, items.SetItem(ctx, Namespace, `{"userName":"Kai"}`))

	m := newTestMemory(t, items)
	if m.UserName() != "Kai" {
		t.Errorf("expected Kai, got %q", m.UserName())
	}
	if m.Mood() != model.MoodNeutral {
		t.Errorf("expected neutral, got %q", m.Mood())
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	items := store.NewMemStore()
	m := newTestMemory(t, items)
	mustNoErr(t, m.SetUserName(ctx, "Aria"))

	mustNoErr(t, m.Reset(ctx))
	if m.UserName() != "User" || m.LogLen() != 0 {
		t.Errorf("expected defaults after reset, got name=%s log=%d", m.UserName(), m.LogLen())
	}

	_, err := items.GetItem(ctx, Namespace)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after reset, got %v", err)
	}
}
