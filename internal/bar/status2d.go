package bar

import "strings"

// Status2DOp is one parsed token out of a status2d escape string: either
// a color switch or a span of plain text to draw.
type Status2DOp struct {
	SetFg, SetBg string // hex color, empty if this op doesn't change it
	Text         string
	Rect         bool // draws a filled rectangle instead of text
	RectW, RectH int
}

// ParseStatus2D parses the status2d escape language: `^fg(#hex)`,
// `^bg(#hex)`, `^r(wxh)` for a filled rectangle drawn at the cursor, and
// plain runs of text in between. Unknown `^...()` escapes are dropped
// rather than rendered literally, since a typo in a status script
// shouldn't spray escape syntax across the bar.
func ParseStatus2D(s string) []Status2DOp {
	var ops []Status2DOp
	for len(s) > 0 {
		i := strings.IndexByte(s, '^')
		if i < 0 {
			ops = append(ops, Status2DOp{Text: s})
			break
		}
		if i > 0 {
			ops = append(ops, Status2DOp{Text: s[:i]})
		}
		s = s[i:]
		end := strings.IndexByte(s, ')')
		if !strings.HasPrefix(s, "^") || end < 0 {
			ops = append(ops, Status2DOp{Text: s})
			break
		}
		escape := s[:end+1]
		s = s[end+1:]
		ops = append(ops, parseEscape(escape))
	}
	return ops
}

func parseEscape(e string) Status2DOp {
	open := strings.IndexByte(e, '(')
	if open < 0 {
		return Status2DOp{}
	}
	name := e[1:open]
	arg := e[open+1 : len(e)-1]
	switch name {
	case "fg":
		return Status2DOp{SetFg: arg}
	case "bg":
		return Status2DOp{SetBg: arg}
	case "r":
		w, h := parseDims(arg)
		return Status2DOp{Rect: true, RectW: w, RectH: h}
	default:
		return Status2DOp{}
	}
}

// StatusBlock is one clickable span of the status string. Producers mark
// block boundaries by embedding a raw control byte (0x01..0x1f) before
// each block's text; the byte doubles as the block's signal number.
type StatusBlock struct {
	Sig  int
	Text string
}

// SplitBlocks splits a status string on its embedded control bytes.
// Text before the first marker forms a block with signal 0.
func SplitBlocks(s string) []StatusBlock {
	var blocks []StatusBlock
	var cur StatusBlock
	for _, r := range s {
		if r > 0 && r < 0x20 {
			if cur.Text != "" {
				blocks = append(blocks, cur)
			}
			cur = StatusBlock{Sig: int(r)}
			continue
		}
		cur.Text += string(r)
	}
	if cur.Text != "" {
		blocks = append(blocks, cur)
	}
	return blocks
}

func parseDims(arg string) (int, int) {
	x := strings.IndexByte(arg, 'x')
	if x < 0 {
		return 0, 0
	}
	return atoiSafe(arg[:x]), atoiSafe(arg[x+1:])
}

func atoiSafe(s string) int {
	n := 0
	neg := false
	for i, r := range s {
		if i == 0 && r == '-' {
			neg = true
			continue
		}
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	if neg {
		return -n
	}
	return n
}
