package text

// Wrap selects what happens when a line exceeds Parms.Width.
type Wrap uint8

const (
	// WrapNone discards everything that does not fit on the line.
	WrapNone Wrap = iota
	// WrapEllipses cuts the line like WrapNone, but marks the cut with
	// an ellipsis. Requires the font to provide one.
	WrapEllipses
	// WrapChar breaks the line at any character.
	WrapChar
	// WrapWord breaks the line at the last space, if there is one on
	// the line.
	WrapWord
)

type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type VAlign uint8

const (
	VAlignTop VAlign = iota
	VAlignCenter
	VAlignBottom
)

// Parms controls how a paragraph is laid out. The zero value lays out a
// single unbounded line.
type Parms struct {
	// Width and Height bound the layout in pixels, 0 means unbounded.
	// All wrap modes other than WrapNone require a width.
	Width, Height int

	// Indent shifts the first line's start to the right.
	Indent int

	// CharSpacing is added to every glyph's advance, LineSpacing to
	// every line's height.
	CharSpacing, LineSpacing int

	Align  Align
	VAlign VAlign
	Wrap   Wrap
}
