// Package planner keeps the user's tasks and goals, persisted as a single
// snapshot independent of the assistant memory.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/23sarma/Life-os/internal/model"
	"github.com/23sarma/Life-os/internal/store"
)

// Namespace is the item store key holding the planner snapshot.
const Namespace = "lifeos_planner"

// Options configures a Planner.
type Options struct {
	Logger zerolog.Logger

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Planner manages two append-only lists. Tasks can be completed; nothing is
// ever deleted.
type Planner struct {
	mu     sync.RWMutex
	items  store.Store
	now    func() time.Time
	log    zerolog.Logger
	lastID int64

	tasks []model.Task
	goals []model.Goal
}

// Load reads the persisted planner. A malformed snapshot is logged and
// replaced by empty lists.
func Load(ctx context.Context, items store.Store, opts Options) (*Planner, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	p := &Planner{
		items: items,
		now:   opts.Now,
		log:   opts.Logger.With().Str("component", "planner").Logger(),
	}

	blob, err := items.GetItem(ctx, Namespace)
	if errors.Is(err, store.ErrNotFound) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load planner: %w", err)
	}

	var snap model.PlannerSnapshot
	if err := json.Unmarshal([]byte(blob), &snap); err != nil {
		p.log.Warn().Err(err).Msg("discarding malformed planner snapshot")
		return p, nil
	}
	p.tasks = snap.Tasks
	p.goals = snap.Goals
	for _, t := range p.tasks {
		p.lastID = max(p.lastID, t.ID)
	}
	for _, g := range p.goals {
		p.lastID = max(p.lastID, g.ID)
	}
	return p, nil
}

// nextID returns the creation time in milliseconds, bumped past the last
// issued id so ids stay unique within the planner.
func (p *Planner) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= p.lastID {
		id = p.lastID + 1
	}
	p.lastID = id
	return id
}

// AddTask appends a new open task. An empty priority means medium.
func (p *Planner) AddTask(ctx context.Context, text string, priority model.Priority) (model.Task, error) {
	if strings.TrimSpace(text) == "" {
		return model.Task{}, fmt.Errorf("task text is required")
	}
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriorities[priority] {
		return model.Task{}, fmt.Errorf("invalid priority %q (valid: low, medium, high)", priority)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	t := model.Task{
		ID:        p.nextID(now),
		Text:      text,
		Priority:  priority,
		Completed: false,
		CreatedAt: model.FormatISO(now),
	}
	p.tasks = append(p.tasks, t)
	if err := p.saveLocked(ctx); err != nil {
		p.tasks = p.tasks[:len(p.tasks)-1]
		return model.Task{}, err
	}
	p.log.Debug().Int64("id", t.ID).Str("priority", string(priority)).Msg("task added")
	return t, nil
}

// Tasks returns all tasks in creation order.
func (p *Planner) Tasks() []model.Task {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]model.Task, len(p.tasks))
	copy(out, p.tasks)
	return out
}

// CompleteTask marks the task done. Unknown ids are ignored.
func (p *Planner) CompleteTask(ctx context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.tasks {
		if p.tasks[i].ID != id {
			continue
		}
		if p.tasks[i].Completed {
			return nil
		}
		p.tasks[i].Completed = true
		if err := p.saveLocked(ctx); err != nil {
			p.tasks[i].Completed = false
			return err
		}
		return nil
	}

	p.log.Debug().Int64("id", id).Msg("complete: no such task")
	return nil
}

// AddGoal appends a new goal with zero progress. deadline is optional.
func (p *Planner) AddGoal(ctx context.Context, text, deadline string) (model.Goal, error) {
	if strings.TrimSpace(text) == "" {
		return model.Goal{}, fmt.Errorf("goal text is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	g := model.Goal{
		ID:        p.nextID(now),
		Text:      text,
		Deadline:  deadline,
		Progress:  0,
		CreatedAt: model.FormatISO(now),
	}
	p.goals = append(p.goals, g)
	if err := p.saveLocked(ctx); err != nil {
		p.goals = p.goals[:len(p.goals)-1]
		return model.Goal{}, err
	}
	return g, nil
}

// Goals returns all goals in creation order.
func (p *Planner) Goals() []model.Goal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]model.Goal, len(p.goals))
	copy(out, p.goals)
	return out
}

// Reset drops the persisted planner and empties both lists.
func (p *Planner) Reset(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.items.RemoveItem(ctx, Namespace); err != nil {
		return fmt.Errorf("reset planner: %w", err)
	}
	p.tasks = nil
	p.goals = nil
	return nil
}

func (p *Planner) saveLocked(ctx context.Context) error {
	snap := model.PlannerSnapshot{Tasks: p.tasks, Goals: p.goals}
	if snap.Tasks == nil {
		snap.Tasks = []model.Task{}
	}
	if snap.Goals == nil {
		snap.Goals = []model.Goal{}
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode planner snapshot: %w", err)
	}
	if err := p.items.SetItem(ctx, Namespace, string(b)); err != nil {
		return fmt.Errorf("save planner: %w", err)
	}
	return nil
}
