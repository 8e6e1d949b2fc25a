package vm

import "github.com/rs/zerolog"

// Option is a configuration function for a Machine.
type Option func(*Machine)

// WithInput queues initial input values.
func WithInput(values ...int64) Option {
	return func(m *Machine) {
		m.input = append(m.input, values...)
	}
}

// WithWordSize sets the integer width, in bits, of the machine. Arithmetic
// results and pushed inputs are truncated to a signed integer of that width.
// Values outside 8..64 are clamped. The default is 64.
func WithWordSize(bits int) Option {
	return func(m *Machine) {
		switch {
		case bits < 8:
			bits = 8
		case bits > 64:
			bits = 64
		}
		m.wordBits = uint(bits)
	}
}

// WithMemoryLimit caps how far memory may grow, in cells. Writes beyond the
// limit fault with errz.MemoryLimit. Zero, the default, means unlimited.
// Set a limit when running untrusted programs: only allocation panics are
// recovered, an out-of-memory condition is fatal to the process.
func WithMemoryLimit(cells int64) Option {
	return func(m *Machine) {
		m.mem.SetLimit(cells)
	}
}

// WithObserver sets an observer for execution events.
func WithObserver(observer Observer) Option {
	return func(m *Machine) {
		m.observer = observer
	}
}

// WithLogger sets the logger. Each machine adds its ID to the logger's
// context. By default nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Machine) {
		m.log = logger
	}
}
