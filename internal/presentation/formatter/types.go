package formatter

// Align is a column's horizontal alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table is a rendered-ready grid of cells. Footer, when set, is printed below a
// separator like a totals row.
type Table struct {
	Headers []string
	Align   []Align
	Rows    [][]string
	Footer  []string
}

func (t Table) align(i int) Align {
	if i < len(t.Align) {
		return t.Align[i]
	}
	return AlignLeft
}
