package list

import "strings"

// spacer reserves contentHeight lines of scrollable space and lays the
// rendered window out contiguously, starting topOffset lines from the top of
// that space. It knows nothing else about the list.
type spacer struct {
	contentHeight int
	topOffset     int
}

// viewport returns the height lines of the laid out space starting at from.
// Lines no child covers are blank.
func (s spacer) viewport(children []string, from, height int) []string {
	if height <= 0 {
		return nil
	}
	lines := make([]string, height)
	end := from + height
	y := s.topOffset
	for _, child := range children {
		if y >= end {
			break
		}
		childLines := strings.Split(child, "\n")
		if y+len(childLines) <= from {
			y += len(childLines)
			continue
		}
		for _, line := range childLines {
			if y >= from && y < end {
				lines[y-from] = line
			}
			y++
		}
	}
	return lines
}
