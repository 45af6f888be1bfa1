package fiber

import "strings"

// Flags is the per-pass change tag: a bitset describing what changed about a
// fiber itself. Flags are only meaningful for the duration of one pass and
// are cleared when a pairing is recycled for the next pass.
type Flags uint16

const (
	NoFlags      Flags = 0
	Placement    Flags = 1 << 0 // Insert or move into position
	Update       Flags = 1 << 1 // Update in place
	Deletion     Flags = 1 << 2 // Remove from the tree
	ContentReset Flags = 1 << 3 // Clear text content before children
	Callback     Flags = 1 << 4 // Commit-phase callback scheduled
	Ref          Flags = 1 << 5 // Ref attach/detach needed
	Snapshot     Flags = 1 << 6 // Pre-mutation snapshot needed
	Passive      Flags = 1 << 7 // Deferred effect scheduled

	PlacementAndUpdate = Placement | Update
)

// Has reports whether all bits in flag are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// Set sets the bits in flag.
func (f *Flags) Set(flag Flags) {
	*f |= flag
}

// Clear clears the bits in flag.
func (f *Flags) Clear(flag Flags) {
	*f &^= flag
}

// String returns a pipe-separated representation, or "NoFlags".
func (f Flags) String() string {
	if f == NoFlags {
		return "NoFlags"
	}
	names := []struct {
		flag Flags
		name string
	}{
		{Placement, "Placement"},
		{Update, "Update"},
		{Deletion, "Deletion"},
		{ContentReset, "ContentReset"},
		{Callback, "Callback"},
		{Ref, "Ref"},
		{Snapshot, "Snapshot"},
		{Passive, "Passive"},
	}
	var parts []string
	for _, n := range names {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
