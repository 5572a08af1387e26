// Package task runs long computations in the background and exposes their
// status, progress and outcome by id. Callers submit a function, get an id
// back immediately and poll until the task completes or fails.
package task

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Progress is the last step a running task reported.
type Progress struct {
	StepName  string `json:"step_name"`
	StepIndex int    `json:"step_index"`
	StepCount int    `json:"step_count"`
}

// Task is a snapshot of a background computation.
type Task struct {
	ID       string   `json:"id"`
	Status   Status   `json:"status"`
	Progress Progress `json:"progress"`
	Result   any      `json:"result,omitempty"`
	Err      string   `json:"error,omitempty"`
}

// Func is the unit of work. report may be called to publish progress, its
// effect is visible through Manager.Get.
type Func func(report func(step string, index, count int)) (any, error)

// Manager runs submitted tasks on a fixed pool of workers.
type Manager struct {
	mu    sync.Mutex
	tasks map[string]*Task
	queue chan job
	wg    sync.WaitGroup
}

type job struct {
	id string
	fn Func
}

// NewManager starts a manager with the given number of workers. workers
// below 1 is treated as 1.
func NewManager(workers int) *Manager {
	if workers < 1 {
		workers = 1
	}
	m := &Manager{
		tasks: make(map[string]*Task),
		queue: make(chan job, 16),
	}
	m.wg.Add(workers)
	for range workers {
		go m.worker()
	}
	return m
}

// Submit queues fn and returns the id to poll with Get.
func (m *Manager) Submit(fn Func) string {
	id := uuid.NewString()
	m.mu.Lock()
	m.tasks[id] = &Task{ID: id, Status: StatusPending}
	m.mu.Unlock()
	m.queue <- job{id: id, fn: fn}
	return id
}

// Get returns a copy of the task snapshot, or false if the id is unknown.
func (m *Manager) Get(id string) (Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// Close stops accepting work and waits for in-flight tasks to finish.
// Submit must not be called after Close.
func (m *Manager) Close() {
	close(m.queue)
	m.wg.Wait()
}

func (m *Manager) worker() {
	defer m.wg.Done()
	for j := range m.queue {
		m.run(j)
	}
}

func (m *Manager) run(j job) {
	m.set(j.id, func(t *Task) { t.Status = StatusRunning })

	report := func(step string, index, count int) {
		m.set(j.id, func(t *Task) {
			t.Progress = Progress{StepName: step, StepIndex: index, StepCount: count}
		})
	}

	result, err := m.safely(j.fn, report)
	m.set(j.id, func(t *Task) {
		if err != nil {
			t.Status = StatusFailed
			t.Err = err.Error()
			return
		}
		t.Status = StatusCompleted
		t.Result = result
	})
}

// safely runs fn, converting a panic into a failed outcome rather than
// killing the worker.
func (m *Manager) safely(fn Func, report func(string, int, int)) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn(report)
}

func (m *Manager) set(id string, mutate func(*Task)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		mutate(t)
	}
}
