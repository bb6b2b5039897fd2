package planner

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/23sarma/Life-os/internal/model"
	"github.com/23sarma/Life-os/internal/store"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestPlanner(t *testing.T, items store.Store, now func() time.Time) *Planner {
	t.Helper()
	p, err := Load(context.Background(), items, Options{Logger: zerolog.Nop(), Now: now})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return p
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

func TestAddTask_Defaults(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 30, 0, 250_000_000, time.UTC)
	p := newTestPlanner(t, store.NewMemStore(), fixedClock(now))

	task, err := p.AddTask(ctx, "buy milk", "")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	tasks := p.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	last := tasks[0]
	if last.Text != "buy milk" || last.Completed {
		t.Errorf("unexpected task %+v", last)
	}
	if last.Priority != model.PriorityMedium {
		t.Errorf("expected medium priority, got %q", last.Priority)
	}
	if last.ID != now.UnixMilli() {
		t.Errorf("expected id %d, got %d", now.UnixMilli(), last.ID)
	}
	if last.CreatedAt != "2024-03-01T09:30:00.250Z" {
		t.Errorf("expected ISO createdAt, got %q", last.CreatedAt)
	}
	if task != last {
		t.Errorf("returned task %+v differs from stored %+v", task, last)
	}
}

func TestAddTask_Validation(t *testing.T) {
	ctx := context.Background()
	p := newTestPlanner(t, store.NewMemStore(), nil)

	if _, err := p.AddTask(ctx, "  ", model.PriorityLow); err == nil {
		t.Error("expected error for blank text")
	}
	if _, err := p.AddTask(ctx, "x", "urgent"); err == nil {
		t.Error("expected error for unknown priority")
	}
	if n := len(p.Tasks()); n != 0 {
		t.Errorf("expected no tasks after rejected adds, got %d", n)
	}

	task, err := p.AddTask(ctx, "file taxes", model.PriorityHigh)
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if task.Priority != model.PriorityHigh {
		t.Errorf("expected high priority, got %q", task.Priority)
	}
}

func TestIDsAreUniqueWithinSameMillisecond(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_000_000)
	p := newTestPlanner(t, store.NewMemStore(), fixedClock(now))

	a, _ := p.AddTask(ctx, "a", "")
	b, _ := p.AddTask(ctx, "b", "")
	g, _ := p.AddGoal(ctx, "c", "")

	if a.ID != now.UnixMilli() {
		t.Errorf("expected first id to be the clock, got %d", a.ID)
	}
	if b.ID != a.ID+1 || g.ID != b.ID+1 {
		t.Errorf("expected consecutive ids, got %d %d %d", a.ID, b.ID, g.ID)
	}
}

func TestCompleteTask(t *testing.T) {
	ctx := context.Background()
	p := newTestPlanner(t, store.NewMemStore(), nil)

	a, _ := p.AddTask(ctx, "a", "")
	b, _ := p.AddTask(ctx, "b", "")

	if err := p.CompleteTask(ctx, b.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	tasks := p.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != a.ID || tasks[0].Completed {
		t.Errorf("expected first task untouched, got %+v", tasks[0])
	}
	if !tasks[1].Completed {
		t.Error("expected second task completed")
	}

	// completing again stays completed
	if err := p.CompleteTask(ctx, b.ID); err != nil {
		t.Fatalf("complete again: %v", err)
	}
	if !p.Tasks()[1].Completed {
		t.Error("expected task to stay completed")
	}
}

func TestCompleteTask_UnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	items := store.NewMemStore()
	p := newTestPlanner(t, items, nil)
	p.AddTask(ctx, "a", "")
	before := p.Tasks()
	blobBefore, _ := items.GetItem(ctx, Namespace)

	if err := p.CompleteTask(ctx, 42); err != nil {
		t.Fatalf("complete unknown: %v", err)
	}

	if !reflect.DeepEqual(before, p.Tasks()) {
		t.Errorf("expected tasks unchanged")
	}
	if blobAfter, _ := items.GetItem(ctx, Namespace); blobAfter != blobBefore {
		t.Errorf("expected no write, blob changed to %s", blobAfter)
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	ctx := context.Background()
	p := newTestPlanner(t, store.NewMemStore(), nil)
	p.AddTask(ctx, "a", "")

	tasks := p.Tasks()
	tasks[0].Completed = true
	if p.Tasks()[0].Completed {
		t.Error("mutating the returned slice changed the planner")
	}
}

func TestAddGoal(t *testing.T) {
	ctx := context.Background()
	p := newTestPlanner(t, store.NewMemStore(), nil)

	g, err := p.AddGoal(ctx, "run a marathon", "2025-10-01")
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if g.Progress != 0 || g.Deadline != "2025-10-01" {
		t.Errorf("unexpected goal %+v", g)
	}

	g2, err := p.AddGoal(ctx, "read more", "")
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}

	goals := p.Goals()
	if len(goals) != 2 || goals[0] != g || goals[1] != g2 {
		t.Errorf("expected goals in creation order, got %+v", goals)
	}

	if _, err := p.AddGoal(ctx, "", ""); err == nil {
		t.Error("expected error for empty goal text")
	}
}

func TestFailedWriteLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	items := &brokenStore{MemStore: store.NewMemStore()}
	p := newTestPlanner(t, items, nil)
	task, _ := p.AddTask(ctx, "a", "")

	items.failing = true
	if _, err := p.AddTask(ctx, "b", ""); err == nil {
		t.Error("expected add task to fail")
	}
	if _, err := p.AddGoal(ctx, "g", ""); err == nil {
		t.Error("expected add goal to fail")
	}
	if err := p.CompleteTask(ctx, task.ID); err == nil {
		t.Error("expected complete to fail")
	}

	tasks := p.Tasks()
	if len(tasks) != 1 || tasks[0].Completed {
		t.Errorf("expected one open task, got %+v", tasks)
	}
	if n := len(p.Goals()); n != 0 {
		t.Errorf("expected no goals, got %d", n)
	}
}

func TestPersistReload(t *testing.T) {
	ctx := context.Background()
	items := store.NewMemStore()
	p := newTestPlanner(t, items, nil)

	a, _ := p.AddTask(ctx, "a", model.PriorityLow)
	p.AddTask(ctx, "b", "")
	p.CompleteTask(ctx, a.ID)
	p.AddGoal(ctx, "g", "soon")

	reloaded := newTestPlanner(t, items, nil)
	if !reflect.DeepEqual(p.Tasks(), reloaded.Tasks()) {
		t.Errorf("tasks differ after reload: %+v vs %+v", p.Tasks(), reloaded.Tasks())
	}
	if !reflect.DeepEqual(p.Goals(), reloaded.Goals()) {
		t.Errorf("goals differ after reload: %+v vs %+v", p.Goals(), reloaded.Goals())
	}

	// ids keep increasing after reload
	next, err := reloaded.AddTask(ctx, "c", "")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	for _, prev := range p.Tasks() {
		if next.ID <= prev.ID {
			t.Errorf("expected id %d above %d", next.ID, prev.ID)
		}
	}
}

func TestSnapshotLayout(t *testing.T) {
	ctx := context.Background()
	items := store.NewMemStore()
	p := newTestPlanner(t, items, fixedClock(time.UnixMilli(1000)))
	p.AddGoal(ctx, "g", "")

	blob, err := items.GetItem(ctx, Namespace)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := `{"tasks":[],"goals":[{"id":1000,"text":"g","progress":0,"createdAt":"1970-01-01T00:00:01.000Z"}]}`
	if blob != want {
		t.Errorf("unexpected snapshot\nwant: %s\ngot:  %s", want, blob)
	}
}

func TestLoad_Malformed(t *testing.T) {
	ctx := context.Background()
	items := store.NewMemStore()
	items.SetItem(ctx, Namespace, "[[[")

	p := newTestPlanner(t, items, nil)
	if len(p.Tasks()) != 0 || len(p.Goals()) != 0 {
		t.Errorf("expected empty planner, got %d tasks %d goals", len(p.Tasks()), len(p.Goals()))
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	items := store.NewMemStore()
	p := newTestPlanner(t, items, nil)
	p.AddTask(ctx, "a", "")

	if err := p.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(p.Tasks()) != 0 {
		t.Error("expected no tasks after reset")
	}
	if _, err := items.GetItem(ctx, Namespace); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after reset, got %v", err)
	}
}
