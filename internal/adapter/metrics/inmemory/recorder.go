package inmemory

import "sync"

type Snapshot struct {
	ActionTotal    uint64            `json:"action_total"`
	ActionSuccess  uint64            `json:"action_success"`
	ActionConflict uint64            `json:"action_conflict"`
	ActionFailure  uint64            `json:"action_failure"`
	ByKind         map[string]uint64 `json:"by_kind"`
	TicksByTask    map[string]uint64 `json:"ticks_by_task"`
}

type Recorder struct {
	mu       sync.Mutex
	success  uint64
	conflict uint64
	failure  uint64
	byKind   map[string]uint64
	ticks    map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byKind: map[string]uint64{},
		ticks:  map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byKind[kind]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) RecordTick(task string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks[task]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionSuccess:  r.success,
		ActionConflict: r.conflict,
		ActionFailure:  r.failure,
		ActionTotal:    r.success + r.conflict + r.failure,
		ByKind:         make(map[string]uint64, len(r.byKind)),
		TicksByTask:    make(map[string]uint64, len(r.ticks)),
	}
	for k, v := range r.byKind {
		out.ByKind[k] = v
	}
	for k, v := range r.ticks {
		out.TicksByTask[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
