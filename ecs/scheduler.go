package ecs

import (
	"context"
	"reflect"
	"time"
)

// Stage identifies when a system runs.
type Stage int

const (
	// StageStartup systems run exactly once, before the first update.
	StageStartup Stage = iota
	// StageUpdate systems run on every tick.
	StageUpdate
)

func (s Stage) String() string {
	switch s {
	case StageStartup:
		return "Startup"
	case StageUpdate:
		return "Update"
	default:
		return "Unknown"
	}
}

// SchedulerStats summarises system execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Ticks           uint64
	Systems         []SystemStats
}

// SystemStats holds execution timings for one system.
type SystemStats struct {
	Name           string
	Stage          Stage
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type scheduledSystem struct {
	system  System
	stage   Stage
	queries []interface{ Execute() }
	stats   SystemStats
}

// Scheduler runs systems against one Storage. Startup systems run once, in
// registration order; update systems run in registration order on every
// tick. Commands issued during a stage are flushed when the stage ends.
type Scheduler struct {
	storage  *Storage
	systems  []*scheduledSystem
	started  bool
	ticks    uint64
	lastTick time.Time
}

// NewScheduler creates a scheduler for storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Register adds an update system.
func (s *Scheduler) Register(system System) {
	s.add(system, StageUpdate)
}

// RegisterStartup adds a startup system. Startup systems registered after
// the startup stage has run are never executed.
func (s *Scheduler) RegisterStartup(system System) {
	s.add(system, StageStartup)
}

func (s *Scheduler) add(system System, stage Stage) {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	s.systems = append(s.systems, &scheduledSystem{
		system:  system,
		stage:   stage,
		queries: s.bindFields(system),
		stats: SystemStats{
			Name:        t.Name(),
			Stage:       stage,
			MinDuration: time.Duration(1<<63 - 1),
		},
	})
}

// bindFields initializes Query and Singleton fields of a struct system and
// returns the queries that must be executed before each run.
func (s *Scheduler) bindFields(system System) []interface{ Execute() } {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var queries []interface{ Execute() }
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		binder, ok := field.Addr().Interface().(interface{ Init(*Storage) })
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if q, ok := binder.(interface{ Execute() }); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Startup runs the startup stage if it has not run yet.
func (s *Scheduler) Startup() {
	if s.started {
		return
	}
	s.started = true
	s.runStage(StageStartup, newUpdateFrame(0, 0, s.storage))
}

// Started reports whether the startup stage has run.
func (s *Scheduler) Started() bool {
	return s.started
}

// Once runs one update tick with the given delta time, running the startup
// stage first if needed.
func (s *Scheduler) Once(dt float64) {
	s.Startup()
	s.ticks++
	s.runStage(StageUpdate, newUpdateFrame(dt, s.ticks, s.storage))
}

func (s *Scheduler) runStage(stage Stage, frame *UpdateFrame) {
	for _, sys := range s.systems {
		if sys.stage != stage {
			continue
		}

		for _, q := range sys.queries {
			q.Execute()
		}

		start := time.Now()
		sys.system.Execute(frame)
		sys.record(time.Since(start))
	}

	if frame.Commands.Pending() > 0 {
		frame.Commands.Flush(s.storage)
	}
}

func (sys *scheduledSystem) record(d time.Duration) {
	st := &sys.stats
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	st.MinDuration = min(st.MinDuration, d)
	st.MaxDuration = max(st.MaxDuration, d)
}

// Run ticks the scheduler every interval until ctx is cancelled. The delta
// passed to each tick is the measured wall-clock time since the previous one.
// A system may cancel ctx to stop the loop; no further tick runs after that.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Startup()
	s.lastTick = time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(s.lastTick).Seconds()
			s.lastTick = now
			s.Once(dt)
			if ctx.Err() != nil {
				return
			}
		}
	}
}

// Ticks returns the number of update ticks run so far.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// GetStats returns a snapshot of execution statistics.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.ticks,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, sys := range s.systems {
		st := sys.stats
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		} else {
			st.MinDuration = 0
		}
		stats.Systems[i] = st
		stats.TotalExecutions += st.ExecutionCount
	}

	return stats
}
