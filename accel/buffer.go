// Package accel models accelerator-resident storage and compute dispatch.
//
// The package intentionally does not implement a GPU programming model. It
// defines the narrow contract the degradation engine depends on (buffers
// with explicit CPU/GPU residency transitions, a zero-pad window pipeline,
// and a command queue with a blocking submit) together with a host backend
// that executes recorded dispatches synchronously. Real accelerator
// backends can satisfy the same contract externally.
package accel

// Residency tracks which copy of a buffer's contents is authoritative.
// Transitions happen only through the Mark/Prepare methods; flipping
// authority implicitly is never legal.
type Residency int

const (
	// Synchronized means the CPU and accelerator copies agree.
	Synchronized Residency = iota

	// CPUAuthoritative means CPU code wrote the buffer last; the
	// accelerator copy is stale until PrepareForGPUAccess.
	CPUAuthoritative

	// GPUAuthoritative means a dispatch wrote the buffer last; the CPU
	// copy is stale until PrepareForCPUAccess.
	GPUAuthoritative
)

// String returns the residency state name.
func (r Residency) String() string {
	switch r {
	case Synchronized:
		return "synchronized"
	case CPUAuthoritative:
		return "cpu-authoritative"
	case GPUAuthoritative:
		return "gpu-authoritative"
	default:
		return "unknown"
	}
}

// AccessHint advises a backend how likely CPU or GPU access is, so it can
// pick memory placement. The host backend records hints but needs no
// placement decisions.
type AccessHint int

const (
	HintUnlikely AccessHint = iota
	HintLikely
)

// Buffer is dual CPU/accelerator-resident sample storage. The zero value
// is not usable; construct with NewBuffer.
type Buffer struct {
	data      []float64
	residency Residency
	cpuHint   AccessHint
	gpuHint   AccessHint
}

// NewBuffer returns a zero-filled, synchronized buffer of the given length.
func NewBuffer(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{data: make([]float64, length)}
}

// Data returns the CPU-side view of the buffer contents.
// Callers reading after a dispatch must call PrepareForCPUAccess first.
func (b *Buffer) Data() []float64 {
	return b.data
}

// Len returns the current element count.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Resize sets the length to n, reusing capacity when possible.
// Newly exposed elements are zeroed.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		n = 0
	}
	oldLen := len(b.data)
	if n <= cap(b.data) {
		b.data = b.data[:n]
	} else {
		grown := make([]float64, n)
		copy(grown, b.data)
		b.data = grown
	}
	if n > oldLen {
		for i := oldLen; i < n; i++ {
			b.data[i] = 0
		}
	}
}

// Zero sets all elements to 0 from the CPU side and marks the buffer
// CPU-authoritative.
func (b *Buffer) Zero() {
	for i := range b.data {
		b.data[i] = 0
	}
	b.residency = CPUAuthoritative
}

// SetCPUAccessHint advises how likely CPU-side access is.
func (b *Buffer) SetCPUAccessHint(h AccessHint) {
	b.cpuHint = h
}

// SetGPUAccessHint advises how likely accelerator-side access is.
func (b *Buffer) SetGPUAccessHint(h AccessHint) {
	b.gpuHint = h
}

// Residency returns the current residency state.
func (b *Buffer) Residency() Residency {
	return b.residency
}

// MarkModifiedFromCPU records that CPU code wrote the buffer, making the
// CPU copy authoritative.
func (b *Buffer) MarkModifiedFromCPU() {
	b.residency = CPUAuthoritative
}

// MarkModifiedFromGPU records that a dispatch wrote the buffer, making the
// accelerator copy authoritative. Callers must only do this after the
// write genuinely completed (or was recorded behind a barrier on a command
// buffer the caller will block on).
func (b *Buffer) MarkModifiedFromGPU() {
	b.residency = GPUAuthoritative
}

// PrepareForCPUAccess makes the CPU copy current before a CPU-side read.
// On the host backend both views share storage, so this only transitions
// the state machine.
func (b *Buffer) PrepareForCPUAccess() {
	if b.residency == GPUAuthoritative {
		b.residency = Synchronized
	}
}

// PrepareForGPUAccess makes the accelerator copy current before a
// dispatch reads the buffer.
func (b *Buffer) PrepareForGPUAccess() {
	if b.residency == CPUAuthoritative {
		b.residency = Synchronized
	}
}
