package fiber

// Mode is a bitset of tree-wide behaviors. A child inherits its parent's
// mode bits at creation and they are immutable thereafter.
type Mode uint8

const (
	NoMode         Mode = 0
	ModeConcurrent Mode = 1 << 0 // Interruptible, deadline-driven passes
	ModeBlocking   Mode = 1 << 1 // Batched but uninterruptible passes
	ModeStrict     Mode = 1 << 2 // Extra development-time checks
	ModeProfile    Mode = 1 << 3 // Populate the profiling side table
)

// Has reports whether all bits in mode are set.
func (m Mode) Has(mode Mode) bool {
	return m&mode == mode
}
