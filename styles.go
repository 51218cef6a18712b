package redline

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for every tracked-change marker kind.
type Styles struct {
	Inserted  ColorPair // {++text++}
	Deleted   ColorPair // {--text--}
	Highlight ColorPair // {==text==}
	Comment   ColorPair // {>>text<<}
	Arrow     ColorPair // Separator drawn between the two sides of {~~old~>new~~}
	Header    ColorPair // Status and title lines in interactive views
}

// Theme provides styles for rendering tracked changes.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
}
