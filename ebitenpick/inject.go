package ebitenpick

import picking "github.com/phanxgames/willow-picking"

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates on the input's window. A leave event clears the pointer's
// location.
type syntheticPointerEvent struct {
	pointer          picking.PointerID
	screenX, screenY float64
	leave            bool
}

// InjectMove queues a pointer move to the given screen coordinates. The event
// is consumed on the next Update call.
func (in *Input) InjectMove(id picking.PointerID, x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{
		pointer: id,
		screenX: x, screenY: y,
	})
}

// InjectLeave queues an event that takes the pointer off every surface.
func (in *Input) InjectLeave(id picking.PointerID) {
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{pointer: id, leave: true})
}

// InjectPath queues a linear sweep from (fromX, fromY) to (toX, toY) over
// the given number of frames. Minimum frames is 2 (start + end).
func (in *Input) InjectPath(id picking.PointerID, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		n := float64(frames - 1)
		in.InjectMove(id, fromX+(toX-fromX)*float64(i)/n, fromY+(toY-fromY)*float64(i)/n)
	}
}

// Pending returns the number of injected events not yet consumed.
func (in *Input) Pending() int {
	return len(in.injectQueue)
}

// processInjected pops one event from the inject queue and applies it.
// Returns true if an event was consumed (real input should be skipped).
func (in *Input) processInjected() bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	if evt.leave {
		in.pointers.Leave(evt.pointer)
	} else {
		in.pointers.Move(evt.pointer, in.surface, evt.screenX, evt.screenY)
	}
	return true
}
