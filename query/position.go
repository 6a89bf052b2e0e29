package query

// Position is a location in query source text.
// Uses LSP conventions: 1-based line numbers, 0-based character offsets.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
	Offset    int `json:"offset"` // 0-based byte offset in entire source
}

// Range is a source span from start to end position.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// positionTracker maintains line/column/offset state while the
// tokenizer consumes source text.
type positionTracker struct {
	source string
	line   int
	char   int
	offset int
}

func newPositionTracker(source string) *positionTracker {
	return &positionTracker{source: source, line: 1}
}

// advanceBytes advances by n bytes, handling newlines.
func (pt *positionTracker) advanceBytes(n int) {
	for i := 0; i < n && pt.offset < len(pt.source); i++ {
		if pt.source[pt.offset] == '\n' {
			pt.line++
			pt.char = 0
		} else {
			pt.char++
		}
		pt.offset++
	}
}

// mark returns the current position snapshot.
func (pt *positionTracker) mark() Position {
	return Position{Line: pt.line, Character: pt.char, Offset: pt.offset}
}
