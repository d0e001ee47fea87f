package ports

// EngineMetrics counts user actions and engine ticks for the ops endpoint.
type EngineMetrics interface {
	RecordSuccess(kind string)
	RecordConflict()
	RecordFailure()
	RecordTick(task string)
}
