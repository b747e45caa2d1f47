package inbox

// Grouping level names with special value resolution.
const (
	LevelStatus = "status"
	LevelProj   = "proj"
)

// Placeholders shown when an item lacks the attribute a level groups on.
const (
	NoProject = "(no project)"
	NoValue   = "(none)"
)

// LineKind distinguishes header lines from item lines.
type LineKind int

const (
	LineHeader LineKind = iota
	LineItem
)

// DisplayLine is one row of grouped output handed to a terminal renderer.
type DisplayLine struct {
	Kind LineKind
	// Level is the nesting depth. Headers use their grouping level index;
	// items sit one level below the deepest header.
	Level int
	// Key is the grouping level name for headers and "" for items.
	Key string
	// Text is the header value, or the item message.
	Text string
	// Item is the logical index of the item, or -1 for headers.
	Item int
}

// Grouping is the display sequence plus the logical-to-display mapping.
type Grouping struct {
	Lines []DisplayLine
	// ItemLine[i] is the index in Lines of the item at logical index i.
	ItemLine []int
}

// LineFor returns the display line of logical item i, or -1 if out of range.
func (g Grouping) LineFor(i int) int {
	if i < 0 || i >= len(g.ItemLine) {
		return -1
	}
	return g.ItemLine[i]
}

// LevelValue resolves the header text of an item for one grouping level.
func LevelValue(item Item, level string) string {
	switch level {
	case LevelStatus:
		return item.Status.SectionName()
	case LevelProj:
		proj, ok := item.Proj()
		if !ok {
			return NoProject
		}
		if branch, ok := item.Branch(); ok {
			return proj + " (" + branch + ")"
		}
		return proj
	default:
		if v, ok := item.Get(level); ok {
			return v
		}
		return NoValue
	}
}

// Group builds nested headers over the inbox in its current order. A header
// is emitted whenever a level's value differs from the previous item's, and
// every deeper level is reset so returning to an earlier parent value
// re-emits its children. With no levels the result is a flat list.
func Group(in *Inbox, levels []string) Grouping {
	g := Grouping{
		Lines:    make([]DisplayLine, 0, in.Len()*(1+len(levels))),
		ItemLine: make([]int, 0, in.Len()),
	}
	if in.IsEmpty() {
		return g
	}

	current := make([]string, len(levels))
	valid := make([]bool, len(levels))

	for idx, item := range in.Items {
		for depth, level := range levels {
			value := LevelValue(item, level)
			if valid[depth] && current[depth] == value {
				continue
			}
			g.Lines = append(g.Lines, DisplayLine{
				Kind:  LineHeader,
				Level: depth,
				Key:   level,
				Text:  value,
				Item:  -1,
			})
			current[depth] = value
			valid[depth] = true
			for deeper := depth + 1; deeper < len(levels); deeper++ {
				valid[deeper] = false
			}
		}

		g.ItemLine = append(g.ItemLine, len(g.Lines))
		g.Lines = append(g.Lines, DisplayLine{
			Kind:  LineItem,
			Level: len(levels),
			Text:  item.Msg(),
			Item:  idx,
		})
	}
	return g
}
