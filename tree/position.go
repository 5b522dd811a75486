package tree

import (
	"fmt"
	"sort"
	"unicode/utf16"
)

// Position represents a location in source code. Line and Column are
// 1-based; Column counts runes.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LineIndex maps rune offsets of a text to line and column positions.
type LineIndex struct {
	filename string
	runes    []rune
	starts   []int // rune offset of each line start
}

// NewLineIndex indexes text.
func NewLineIndex(filename, text string) *LineIndex {
	x := &LineIndex{filename: filename, runes: []rune(text), starts: []int{0}}
	for i, r := range x.runes {
		if r == '\n' {
			x.starts = append(x.starts, i+1)
		}
	}
	return x
}

// Lines returns the number of lines.
func (x *LineIndex) Lines() int { return len(x.starts) }

// Position returns the position of offset, clamped to the text.
func (x *LineIndex) Position(offset int) Position {
	offset = max(0, min(offset, len(x.runes)))
	line := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > offset }) - 1
	return Position{
		Filename: x.filename,
		Offset:   offset,
		Line:     line + 1,
		Column:   offset - x.starts[line] + 1,
	}
}

// UTF16Column returns the 0-based column of offset in UTF-16 code units,
// the unit editors speaking LSP count in.
func (x *LineIndex) UTF16Column(offset int) int {
	p := x.Position(offset)
	col := 0
	for _, r := range x.runes[x.starts[p.Line-1]:p.Offset] {
		col += len(utf16.Encode([]rune{r}))
	}
	return col
}
