// Package monitor periodically refreshes the assistant status readout.
package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/23sarma/Life-os/internal/model"
)

// Source produces the current status. It must not mutate state.
type Source interface {
	SystemStatus() model.SystemStatus
}

// Monitor polls a Source on a fixed interval.
type Monitor struct {
	cron   *cron.Cron
	source Source
	sink   func(model.SystemStatus)
	log    zerolog.Logger

	mu     sync.RWMutex
	latest model.SystemStatus
}

// New creates a monitor that polls source every interval and passes each
// status to sink (which may be nil). The first poll happens in Start.
// Intervals under a second run once per second.
func New(source Source, interval time.Duration, sink func(model.SystemStatus), logger zerolog.Logger) (*Monitor, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid status interval %s", interval)
	}
	m := &Monitor{
		cron:   cron.New(),
		source: source,
		sink:   sink,
		log:    logger.With().Str("component", "monitor").Logger(),
	}
	if _, err := m.cron.AddFunc(fmt.Sprintf("@every %s", interval), m.poll); err != nil {
		return nil, fmt.Errorf("schedule status poll: %w", err)
	}
	return m, nil
}

// Start takes an immediate reading and starts the schedule.
func (m *Monitor) Start() {
	m.poll()
	m.cron.Start()
}

// Stop halts the schedule and waits for a running poll to finish.
func (m *Monitor) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
}

// Refresh takes a reading now, outside the schedule.
func (m *Monitor) Refresh() {
	m.poll()
}

// Latest returns the most recent reading.
func (m *Monitor) Latest() model.SystemStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

func (m *Monitor) poll() {
	st := m.source.SystemStatus()
	m.mu.Lock()
	m.latest = st
	m.mu.Unlock()
	m.log.Debug().Int("memory", st.MemorySize).Int("entries", st.LearningEntries).Msg("status refreshed")
	if m.sink != nil {
		m.sink(st)
	}
}
