package ecs

// System is a unit of behaviour run by the Scheduler. Implementations are
// usually pointer-to-struct types whose Query and Singleton fields are
// initialized at registration; any other fields persist between runs.
type System interface {
	Execute(frame *UpdateFrame)
}
