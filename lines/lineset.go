package lines

// Line is a named Buffer: one output column of a feed or an indicator. It
// re-exposes the full ago contract of the underlying Buffer.
type Line struct {
	Name string
	*Buffer
}

// LineSet is the ordered tuple of Lines owned by one entity: a raw feed's
// OHLCV columns, or an indicator's result column(s). Lines are addressed
// positionally or through name aliases; a whole set moves its cursors in
// lockstep, which is what keeps multi-line indicators (an envelope's
// mid/top/bottom) synchronized.
type LineSet struct {
	lines  []*Line
	byName map[string]int
}

// NewLineSet returns an empty LineSet.
func NewLineSet() *LineSet {
	return &LineSet{byName: make(map[string]int)}
}

// AddLine appends a fresh Line under the given name and returns it. The
// name is registered as an alias for the new position.
func (ls *LineSet) AddLine(name string) *Line {
	l := &Line{Name: name, Buffer: NewBuffer()}
	ls.byName[name] = len(ls.lines)
	ls.lines = append(ls.lines, l)
	return l
}

// AddAlias registers an extra name for an existing position. Unknown
// positions are ignored rather than reserved.
func (ls *LineSet) AddAlias(name string, i int) {
	if i >= 0 && i < len(ls.lines) {
		ls.byName[name] = i
	}
}

// GetLine returns the Line at position i, or nil when i is out of range.
// Callers must treat nil as "input not ready", never dereference blindly.
func (ls *LineSet) GetLine(i int) *Line {
	if i < 0 || i >= len(ls.lines) {
		return nil
	}
	return ls.lines[i]
}

// Line resolves a name alias, nil when unknown.
func (ls *LineSet) Line(name string) *Line {
	i, ok := ls.byName[name]
	if !ok {
		return nil
	}
	return ls.lines[i]
}

// NumLines reports how many columns the set carries.
func (ls *LineSet) NumLines() int { return len(ls.lines) }

// Size reports how many bars have been delivered, taken from the first
// line; all lines in a set advance together.
func (ls *LineSet) Size() int {
	if len(ls.lines) == 0 {
		return 0
	}
	return ls.lines[0].Len()
}

// Forward advances every line one slot.
func (ls *LineSet) Forward() {
	for _, l := range ls.lines {
		l.Forward(1)
	}
}

// Backward rewinds every line n slots.
func (ls *LineSet) Backward(n int) {
	for _, l := range ls.lines {
		l.Backward(n)
	}
}

// Home rewinds every line to the first slot.
func (ls *LineSet) Home() {
	for _, l := range ls.lines {
		l.Home()
	}
}

// Reset truncates every line to its placeholder.
func (ls *LineSet) Reset() {
	for _, l := range ls.lines {
		l.Reset()
	}
}

// AdvanceTo lays out n slots on every line for batch evaluation.
func (ls *LineSet) AdvanceTo(n int) {
	for _, l := range ls.lines {
		l.AdvanceTo(n)
	}
}
