package ecs

// System is a behavior advanced by the Loop. Tick systems receive the fixed
// step; frame systems receive the frame's real delta time.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) { f(frame) }
