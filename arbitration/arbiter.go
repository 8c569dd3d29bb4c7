// Package arbitration decides the order in which a router's input
// buffers may forward flits to the output buffers.
package arbitration

import "github.com/sarchlab/akita/v4/sim"

// An Arbiter picks, each cycle, the input buffers that are allowed to
// forward.
type Arbiter interface {
	// AddBuffer adds a buffer that the arbiter arbitrates on.
	AddBuffer(buf sim.Buffer)

	// Arbitrate returns the buffers that can forward this cycle, in
	// the order they should be served.
	Arbitrate() []sim.Buffer
}

// NewXBarArbiter creates an arbiter that serves all the buffers every
// cycle, rotating the buffer that is served first so that no input
// port starves.
func NewXBarArbiter() Arbiter {
	return &xbarArbiter{}
}

type xbarArbiter struct {
	buffers    []sim.Buffer
	startIndex int
}

func (a *xbarArbiter) AddBuffer(buf sim.Buffer) {
	a.buffers = append(a.buffers, buf)
}

func (a *xbarArbiter) Arbitrate() []sim.Buffer {
	if len(a.buffers) == 0 {
		return nil
	}

	rotated := make([]sim.Buffer, 0, len(a.buffers))
	for i := 0; i < len(a.buffers); i++ {
		index := (a.startIndex + i) % len(a.buffers)
		rotated = append(rotated, a.buffers[index])
	}

	a.startIndex = (a.startIndex + 1) % len(a.buffers)

	return rotated
}
