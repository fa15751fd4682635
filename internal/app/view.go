package service

import (
	"github.com/okian/taskboard/internal/domain/model"
)

// State is the outcome variant a dashboard view renders.
type State string

// View states.
const (
	StateOK       State = "ok"
	StateEmpty    State = "empty"
	StateDegraded State = "degraded"
)

// StatusCount is the number of tasks of one status kind.
type StatusCount struct {
	Kind  model.StatusKind
	Count int
}

// View is everything the dashboard template needs.
type View struct {
	State  State
	Tasks  []model.Task
	Counts []StatusCount
	Banner string
}

// Total is the number of tasks shown.
func (v View) Total() int { return len(v.Tasks) }

// Degraded reports whether the error banner is shown.
func (v View) Degraded() bool { return v.State == StateDegraded }

// BuildView maps a backend result to a View. Tasks keep backend order.
func BuildView(tasks []model.Task, err error) View {
	if err != nil {
		return View{State: StateDegraded, Banner: Banner(err)}
	}
	if len(tasks) == 0 {
		return View{State: StateEmpty, Tasks: []model.Task{}}
	}
	return View{
		State:  StateOK,
		Tasks:  tasks,
		Counts: CountByKind(tasks),
	}
}

// CountByKind counts tasks per status kind, in model.StatusKinds order.
// Every kind is present, including those with zero tasks.
func CountByKind(tasks []model.Task) []StatusCount {
	kinds := model.StatusKinds()
	idx := make(map[model.StatusKind]int, len(kinds))
	counts := make([]StatusCount, len(kinds))
	for i, k := range kinds {
		idx[k] = i
		counts[i] = StatusCount{Kind: k}
	}
	for _, t := range tasks {
		counts[idx[t.Kind()]].Count++
	}
	return counts
}
