package inmemory

import "testing"

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("care:feed")
	r.RecordSuccess("adopt")
	r.RecordConflict()
	r.RecordFailure()
	r.RecordTick("decay")
	r.RecordTick("decay")

	s := r.Snapshot()
	if s.ActionTotal != 4 {
		t.Fatalf("expected total 4, got %d", s.ActionTotal)
	}
	if s.ActionSuccess != 2 {
		t.Fatalf("expected success 2, got %d", s.ActionSuccess)
	}
	if s.ActionConflict != 1 {
		t.Fatalf("expected conflict 1, got %d", s.ActionConflict)
	}
	if s.ActionFailure != 1 {
		t.Fatalf("expected failure 1, got %d", s.ActionFailure)
	}
	if s.ByKind["care:feed"] != 1 || s.ByKind["adopt"] != 1 {
		t.Fatalf("unexpected kind counts: %+v", s.ByKind)
	}
	if s.TicksByTask["decay"] != 2 {
		t.Fatalf("expected 2 decay ticks, got %d", s.TicksByTask["decay"])
	}
}
