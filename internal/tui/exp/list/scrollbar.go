package list

import (
	"strings"

	"github.com/charmbracelet/vlist/internal/tui/styles"
)

// Scrollbar renders a vertical scrollbar for the given content and viewport
// sizes. It returns an empty string when the content fits the viewport.
func Scrollbar(height, contentSize, viewportSize, offset int) string {
	if height <= 0 || contentSize <= viewportSize {
		return ""
	}
	maxOffset := contentSize - viewportSize

	thumbSize := max(1, height*viewportSize/contentSize)
	trackSpace := height - thumbSize
	thumbPos := 0
	if trackSpace > 0 {
		thumbPos = min(trackSpace, max(0, offset)*trackSpace/maxOffset)
	}

	t := styles.CurrentTheme()
	thumb := t.S().ScrollbarThumb.Render(styles.ScrollbarThumb)
	track := t.S().ScrollbarTrack.Render(styles.ScrollbarTrack)

	var sb strings.Builder
	for i := range height {
		if i > 0 {
			sb.WriteString("\n")
		}
		if i >= thumbPos && i < thumbPos+thumbSize {
			sb.WriteString(thumb)
		} else {
			sb.WriteString(track)
		}
	}
	return sb.String()
}
