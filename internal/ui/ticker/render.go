package ticker

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/marquee/internal/geometry"
)

const ellipsis = "…"

// strip is one period of scrolling content: the text repeated fill times
// and padded to the measured content size on the active axis. Horizontal
// strips have a single row.
type strip struct {
	rows   []string
	period int
	axis   geometry.Axis
}

// trailing reports whether content rests against the far edge: right for
// right-to-left rows, bottom for downward columns.
func trailing(dir geometry.Direction, rtl bool) bool {
	switch dir {
	case geometry.Right:
		return true
	case geometry.Bottom:
		return true
	case geometry.Left:
		return rtl
	}
	return false
}

// buildStrip lays out text for the given direction. width is the wrap
// width of vertical strips.
func buildStrip(text string, dir geometry.Direction, rtl bool, width, fill, period int) strip {
	if fill < 1 {
		fill = 1
	}
	s := strip{axis: dir.Axis(), period: period}
	end := trailing(dir, rtl)

	if s.axis == geometry.AxisX {
		line := strings.Repeat(strings.ReplaceAll(text, "\n", " "), fill)
		if pad := period - cellWidth(line); pad > 0 {
			if end {
				line = strings.Repeat(" ", pad) + line
			} else {
				line += strings.Repeat(" ", pad)
			}
		}
		s.rows = []string{line}
		return s
	}

	lines := wrapLines(text, width)
	rows := make([]string, 0, len(lines)*fill)
	for i := 0; i < fill; i++ {
		rows = append(rows, lines...)
	}
	if pad := period - len(rows); pad > 0 {
		blank := make([]string, pad)
		if end {
			rows = append(blank, rows...)
		} else {
			rows = append(rows, blank...)
		}
	}
	s.rows = rows
	return s
}

func wrapLines(text string, width int) []string {
	if text == "" {
		return nil
	}
	if width > 0 {
		text = lipgloss.NewStyle().Width(width).Render(text)
	}
	return strings.Split(text, "\n")
}

// segment maps a run of viewport cells to strip indices. Blank segments
// show nothing.
type segment struct {
	start  int
	length int
	blank  bool
}

// segments maps n viewport cells onto a strip whose index 0 sits at origin.
// Infinite strips repeat every period cells.
func segments(n, period, origin int, infinite bool) []segment {
	if n <= 0 {
		return nil
	}
	if period <= 0 {
		return []segment{{length: n, blank: true}}
	}
	var out []segment
	for i := 0; i < n; {
		j := i - origin
		if infinite {
			j = mod(j, period)
		}
		switch {
		case j < 0:
			l := min(-j, n-i)
			out = append(out, segment{length: l, blank: true})
			i += l
		case j >= period:
			out = append(out, segment{length: n - i, blank: true})
			i = n
		default:
			l := min(period-j, n-i)
			out = append(out, segment{start: j, length: l})
			i += l
		}
	}
	return out
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// frame is everything needed to draw one ticker frame.
type frame struct {
	strip    strip
	width    int
	height   int
	shift    int
	base     int
	infinite bool
}

// render draws the viewport. shift is the engine position along the active
// axis; base places index 0 of a bounded strip.
func render(f frame) string {
	if f.width <= 0 || f.height <= 0 {
		return ""
	}
	origin := f.shift + f.base
	out := make([]string, 0, f.height)

	if f.strip.axis == geometry.AxisX {
		line := ""
		if len(f.strip.rows) > 0 {
			line = f.strip.rows[0]
		}
		var b strings.Builder
		for _, seg := range segments(f.width, f.strip.period, origin, f.infinite) {
			if seg.blank {
				b.WriteString(strings.Repeat(" ", seg.length))
				continue
			}
			b.WriteString(cut(line, seg.start, seg.start+seg.length))
		}
		out = append(out, b.String())
		for len(out) < f.height {
			out = append(out, strings.Repeat(" ", f.width))
		}
		return strings.Join(out, "\n")
	}

	blank := strings.Repeat(" ", f.width)
	for _, seg := range segments(f.height, f.strip.period, origin, f.infinite) {
		for k := 0; k < seg.length; k++ {
			row := seg.start + k
			if seg.blank || row >= len(f.strip.rows) {
				out = append(out, blank)
				continue
			}
			out = append(out, cut(f.strip.rows[row], 0, f.width))
		}
	}
	return strings.Join(out, "\n")
}

// renderRowEllipsis draws text on one row, truncated with an ellipsis at
// its reading end.
func renderRowEllipsis(text string, width int, rtl bool) string {
	if width <= 0 {
		return ""
	}
	line := strings.ReplaceAll(text, "\n", " ")
	w := cellWidth(line)
	if w <= width {
		if rtl {
			return strings.Repeat(" ", width-w) + line
		}
		return line + strings.Repeat(" ", width-w)
	}
	if rtl {
		return ansi.TruncateLeft(line, w-width+1, ellipsis)
	}
	if plain(line) {
		return runewidth.Truncate(line, width, ellipsis)
	}
	return ansi.Truncate(line, width, ellipsis)
}

// renderLineClamp draws at most lines wrapped rows, ending the last one with
// an ellipsis when text was cut.
func renderLineClamp(text string, width, lines int) string {
	if width <= 0 || lines <= 0 {
		return ""
	}
	rows := wrapLines(text, width)
	if len(rows) > lines {
		rows = rows[:lines]
		last := strings.TrimRight(ansi.Strip(rows[lines-1]), " ")
		if cellWidth(last) >= width {
			last = runewidth.Truncate(last, width-1, "")
		}
		last += ellipsis
		rows[lines-1] = last
	}
	for i, r := range rows {
		rows[i] = cut(r, 0, width)
	}
	for len(rows) < lines {
		rows = append(rows, strings.Repeat(" ", width))
	}
	return strings.Join(rows, "\n")
}

func plain(s string) bool { return !strings.Contains(s, "\x1b") }

func cellWidth(s string) int {
	if plain(s) {
		return runewidth.StringWidth(s)
	}
	return ansi.StringWidth(s)
}

// cut returns cells [left, right) of s padded to exactly right-left cells.
// Wide runes straddling an edge become spaces.
func cut(s string, left, right int) string {
	n := right - left
	if n <= 0 {
		return ""
	}
	var res string
	if plain(s) {
		res = cutPlain(s, left, right)
	} else {
		res = ansi.Cut(s, left, right)
	}
	if pad := n - cellWidth(res); pad > 0 {
		res += strings.Repeat(" ", pad)
	}
	return res
}

func cutPlain(s string, left, right int) string {
	var b strings.Builder
	pos := 0
	for _, r := range s {
		if pos >= right {
			break
		}
		w := runewidth.RuneWidth(r)
		switch {
		case pos >= left && pos+w <= right:
			b.WriteRune(r)
		case pos+w > left:
			b.WriteString(strings.Repeat(" ", min(pos+w, right)-max(pos, left)))
		}
		pos += w
	}
	return b.String()
}
