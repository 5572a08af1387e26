package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wait polls until the task reaches a terminal status.
func wait(t *testing.T, m *Manager, id string) Task {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		task, ok := m.Get(id)
		require.True(t, ok, "task %s disappeared", id)
		if task.Status == StatusCompleted || task.Status == StatusFailed {
			return task
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("task %s did not finish", id)
	return Task{}
}

func TestSubmitAndComplete(t *testing.T) {
	m := NewManager(2)
	defer m.Close()

	id := m.Submit(func(report func(string, int, int)) (any, error) {
		report("crunching", 1, 3)
		return 42, nil
	})

	task := wait(t, m, id)
	assert.Equal(t, StatusCompleted, task.Status)
	assert.Equal(t, 42, task.Result)
	assert.Empty(t, task.Err)
	assert.Equal(t, Progress{StepName: "crunching", StepIndex: 1, StepCount: 3}, task.Progress)
}

func TestSubmitFailure(t *testing.T) {
	m := NewManager(1)
	defer m.Close()

	id := m.Submit(func(report func(string, int, int)) (any, error) {
		return nil, errors.New("no such file")
	})

	task := wait(t, m, id)
	assert.Equal(t, StatusFailed, task.Status)
	assert.Equal(t, "no such file", task.Err)
	assert.Nil(t, task.Result)
}

func TestPanicBecomesFailure(t *testing.T) {
	m := NewManager(1)
	defer m.Close()

	id := m.Submit(func(report func(string, int, int)) (any, error) {
		panic("boom")
	})
	task := wait(t, m, id)
	assert.Equal(t, StatusFailed, task.Status)
	assert.Contains(t, task.Err, "boom")

	// the worker survived the panic and still runs new tasks
	id2 := m.Submit(func(report func(string, int, int)) (any, error) {
		return "ok", nil
	})
	assert.Equal(t, StatusCompleted, wait(t, m, id2).Status)
}

func TestGetUnknown(t *testing.T) {
	m := NewManager(1)
	defer m.Close()
	_, ok := m.Get("nope")
	assert.False(t, ok)
}

func TestGetReturnsCopy(t *testing.T) {
	m := NewManager(1)
	defer m.Close()

	id := m.Submit(func(report func(string, int, int)) (any, error) {
		return "done", nil
	})
	task := wait(t, m, id)
	task.Status = StatusPending

	again, ok := m.Get(id)
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, again.Status)
}

func TestManyTasks(t *testing.T) {
	m := NewManager(4)
	defer m.Close()

	ids := make([]string, 20)
	for i := range ids {
		i := i
		ids[i] = m.Submit(func(report func(string, int, int)) (any, error) {
			return i, nil
		})
	}
	for i, id := range ids {
		task := wait(t, m, id)
		assert.Equal(t, StatusCompleted, task.Status)
		assert.Equal(t, i, task.Result)
	}
}
