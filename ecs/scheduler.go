package ecs

import (
	"fmt"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs an ordered list of systems. The list is fixed once the
// scheduler is sealed.
type Scheduler struct {
	systems     []System
	systemStats []*systemStatsInternal
	sealed      bool
}

// NewScheduler creates a scheduler holding systems in execution order.
func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Register(system)
	}
	return s
}

// Register appends a system. It panics once the scheduler has been sealed.
func (s *Scheduler) Register(system System) {
	if s.sealed {
		panic("ecs: Register called on a sealed scheduler")
	}
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        SystemName(system),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Seal freezes the system list.
func (s *Scheduler) Seal() { s.sealed = true }

func (s *Scheduler) Sealed() bool { return s.sealed }

// Systems returns the registered systems in execution order.
func (s *Scheduler) Systems() []System {
	return s.systems
}

// Once executes every system with frame, in order. The first error stops the
// frame and is returned wrapped with the failing system's name.
func (s *Scheduler) Once(frame *UpdateFrame) error {
	for i, system := range s.systems {
		start := time.Now()
		err := system.OnUpdate(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}

		if err != nil {
			return fmt.Errorf("%s: %w", stats.name, err)
		}
	}
	return nil
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}

// SystemName returns the type name of a system, without package or pointer.
func SystemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}
