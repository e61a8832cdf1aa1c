package render

import "github.com/gdamore/tcell/v2"

// Cell is one terminal character with true-color attributes
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs tcell.AttrMask
	Mask  uint8
}

// DefaultBgRGB is the default background color (Tokyo Night)
var DefaultBgRGB = RGB{26, 27, 38}
