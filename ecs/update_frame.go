package ecs

// UpdateFrame is handed to every system of a stage run.
type UpdateFrame struct {
	// DeltaTime is the host-reported time since the previous tick, in
	// seconds. Zero for the startup stage.
	DeltaTime float64

	// Tick counts update-stage runs, starting at 1. Zero during startup.
	Tick uint64

	Commands *Commands
	Storage  *Storage
}

func newUpdateFrame(dt float64, tick uint64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
