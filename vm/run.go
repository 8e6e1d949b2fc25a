package vm

// Run creates a machine for image, queues input, and runs it until it halts
// or is interrupted. The machine is returned even when err is non-nil so the
// caller can inspect its state.
func Run(image []int64, input []int64, options ...Option) (*Machine, error) {
	opts := append([]Option{WithInput(input...)}, options...)
	m := New(image, opts...)
	return m, m.Run()
}
