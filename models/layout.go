package models

import "path/filepath"

// ArchiveLayout names one known shape of the extracted archive tree.
type ArchiveLayout string

const (
	// LayoutNestedTwice: <extract root>/<archive root>/<tutorial dir>
	LayoutNestedTwice ArchiveLayout = "nested-twice"
	// LayoutNestedOnce: <extract root>/<archive root>
	LayoutNestedOnce ArchiveLayout = "nested-once"
)

// KnownLayouts lists layouts in the order they are checked. The first one found wins.
var KnownLayouts = []ArchiveLayout{LayoutNestedTwice, LayoutNestedOnce}

// Path returns where the layout expects the tutorial content to live.
func (l ArchiveLayout) Path(c SetupConfig) string {
	switch l {
	case LayoutNestedTwice:
		return filepath.Join(c.ExtractRoot, c.ArchiveRoot, c.TutorialDir)
	case LayoutNestedOnce:
		return filepath.Join(c.ExtractRoot, c.ArchiveRoot)
	default:
		return ""
	}
}
