package accel

import "errors"

// Dispatch errors.
var (
	ErrNotRecording  = errors.New("accel: command buffer is not recording")
	ErrOpenRecording = errors.New("accel: command buffer submitted while recording")
	ErrNoBinding     = errors.New("accel: dispatch issued without bound buffers")
	ErrBadWorkgroups = errors.New("accel: workgroup count must be > 0")
)

// WindowArgs parameterizes the rectangular zero-pad kernel: copy
// NumActualSamples elements from the input (starting at OffsetIn) into the
// output (starting at OffsetOut) and zero-fill up to PaddedLength.
type WindowArgs struct {
	NumActualSamples int
	PaddedLength     int
	OffsetIn         int
	OffsetOut        int
}

// BlockCount returns the number of workgroups needed to cover n elements
// with the given workgroup size.
func BlockCount(n, blockSize int) int {
	if blockSize <= 0 {
		return 0
	}
	return (n + blockSize - 1) / blockSize
}

// CommandBuffer records dispatch work between Begin and End. Recorded work
// runs only when a Queue submits the buffer; nothing executes at record
// time.
type CommandBuffer struct {
	ops       []func() error
	recording bool
}

// NewCommandBuffer returns an empty command buffer.
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{}
}

// Begin starts recording, discarding any previously recorded work.
func (c *CommandBuffer) Begin() {
	c.ops = c.ops[:0]
	c.recording = true
}

// End finishes recording.
func (c *CommandBuffer) End() {
	c.recording = false
}

// Record appends an operation. Returns ErrNotRecording outside a
// Begin/End pair.
func (c *CommandBuffer) Record(op func() error) error {
	if !c.recording {
		return ErrNotRecording
	}
	c.ops = append(c.ops, op)
	return nil
}

// Queue submits command buffers for execution.
type Queue interface {
	// SubmitAndBlock executes all recorded work and returns only after it
	// has completed. There is no deadline; a stalled backend blocks the
	// caller indefinitely.
	SubmitAndBlock(cmd *CommandBuffer) error
}

// HostQueue executes recorded work synchronously on the calling goroutine.
type HostQueue struct{}

// NewHostQueue returns a host execution queue.
func NewHostQueue() *HostQueue {
	return &HostQueue{}
}

// SubmitAndBlock runs every recorded operation in order. The first failing
// operation aborts the submission.
func (q *HostQueue) SubmitAndBlock(cmd *CommandBuffer) error {
	if cmd == nil {
		return ErrNoBinding
	}
	if cmd.recording {
		return ErrOpenRecording
	}
	for _, op := range cmd.ops {
		if err := op(); err != nil {
			return err
		}
	}
	return nil
}

// WindowPipeline is the zero-pad copy stage. Bind an input buffer to slot
// 0 and an output buffer to slot 1, then record a dispatch; the kernel
// copies the active samples and zero-fills the padded remainder.
type WindowPipeline struct {
	input    *Buffer
	output   *Buffer
	zeroFill bool
}

// NewWindowPipeline returns an unbound window pipeline.
func NewWindowPipeline() *WindowPipeline {
	return &WindowPipeline{}
}

// BindInput binds the buffer read by the kernel. Only slot 0 exists.
func (p *WindowPipeline) BindInput(slot int, b *Buffer) {
	if slot == 0 {
		p.input = b
	}
}

// BindOutput binds the buffer written by the kernel. Only slot 1 exists.
// zeroFill requests zeroing of elements past NumActualSamples.
func (p *WindowPipeline) BindOutput(slot int, b *Buffer, zeroFill bool) {
	if slot == 1 {
		p.output = b
		p.zeroFill = zeroFill
	}
}

// Dispatch records one kernel execution covering args.PaddedLength
// elements. Bindings are captured at record time.
func (p *WindowPipeline) Dispatch(cmd *CommandBuffer, args WindowArgs, workgroups int) error {
	in, out, zeroFill := p.input, p.output, p.zeroFill
	if in == nil || out == nil {
		return ErrNoBinding
	}
	if workgroups <= 0 {
		return ErrBadWorkgroups
	}
	return cmd.Record(func() error {
		in.PrepareForGPUAccess()
		src := in.Data()
		dst := out.Data()
		for i := 0; i < args.PaddedLength && args.OffsetOut+i < len(dst); i++ {
			if i < args.NumActualSamples && args.OffsetIn+i < len(src) {
				dst[args.OffsetOut+i] = src[args.OffsetIn+i]
			} else if zeroFill {
				dst[args.OffsetOut+i] = 0
			}
		}
		return nil
	})
}

// MemoryBarrier records a compute-to-compute barrier. The host backend
// executes dispatches in order already, so the barrier carries no work; it
// keeps the recorded sequence identical to a real backend's.
func (p *WindowPipeline) MemoryBarrier(cmd *CommandBuffer) error {
	return cmd.Record(func() error { return nil })
}
