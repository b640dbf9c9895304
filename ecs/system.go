package ecs

// System is one step of the frame pipeline. Systems may declare Query and
// Singleton fields; the Scheduler wires them on Register. Any other fields
// are private system state kept between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
