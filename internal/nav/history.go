package nav

// NoEntry is the cursor value of an empty history.
const NoEntry = -1

// DefaultCapacity is the number of addresses kept when no capacity is configured.
const DefaultCapacity = 20

// History is a bounded back/forward navigation stack.
type History struct {
	entries  []string
	pos      int // current position in the stack
	capacity int
}

// NewHistory creates an empty history holding at most capacity entries.
// A non-positive capacity falls back to DefaultCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{
		entries:  nil,
		pos:      NoEntry,
		capacity: capacity,
	}
}

// Push records a visit to addr.
//
// Forward entries past the cursor are dropped first. If addr is then already
// the last entry the cursor just moves onto it. Otherwise addr is appended and
// the oldest entry is evicted once the capacity is exceeded.
func (h *History) Push(addr string) {
	if h.pos < len(h.entries)-1 {
		h.entries = h.entries[:h.pos+1]
	}

	if n := len(h.entries); n > 0 && h.entries[n-1] == addr {
		h.pos = n - 1
		return
	}

	h.entries = append(h.entries, addr)
	if len(h.entries) > h.capacity {
		drop := len(h.entries) - h.capacity
		h.entries = append([]string(nil), h.entries[drop:]...)
	}
	h.pos = len(h.entries) - 1
}

// Back moves one step back in history. Returns the URL and true if possible.
func (h *History) Back() (string, bool) {
	if h.pos <= 0 {
		return "", false
	}
	h.pos--
	return h.entries[h.pos], true
}

// Forward moves one step forward in history. Returns the URL and true if possible.
func (h *History) Forward() (string, bool) {
	if h.pos == NoEntry || h.pos >= len(h.entries)-1 {
		return "", false
	}
	h.pos++
	return h.entries[h.pos], true
}

// Current returns the address under the cursor, or "" if history is empty.
func (h *History) Current() string {
	if h.pos < 0 || h.pos >= len(h.entries) {
		return ""
	}
	return h.entries[h.pos]
}

// At returns the entry at index i.
func (h *History) At(i int) (string, bool) {
	if i < 0 || i >= len(h.entries) {
		return "", false
	}
	return h.entries[i], true
}

// Cursor returns the current position, or NoEntry.
func (h *History) Cursor() int {
	return h.pos
}

// CanGoBack reports whether there is a previous entry.
func (h *History) CanGoBack() bool {
	return h.pos > 0
}

// CanGoForward reports whether there is a next entry.
func (h *History) CanGoForward() bool {
	return h.pos != NoEntry && h.pos < len(h.entries)-1
}

// Len returns the total number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Capacity returns the maximum number of entries kept.
func (h *History) Capacity() int {
	return h.capacity
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clear resets the history.
func (h *History) Clear() {
	h.entries = nil
	h.pos = NoEntry
}

// Snapshot returns the state the display is projected from.
func (h *History) Snapshot() State {
	return State{Entries: h.Entries(), Cursor: h.pos}
}
