package inbox

import (
	"slices"
	"strings"
)

// priorityKeys are rendered first, in this order, when present.
var priorityKeys = []string{KeyPane, KeyProj, KeyBranch}

// Render writes the inbox back to document text. Section headers are emitted
// wherever the status changes between consecutive items, so the inbox must
// already be in canonical order. An empty inbox renders as "".
func Render(in *Inbox) string {
	if in.IsEmpty() {
		return ""
	}

	var b strings.Builder
	for i, item := range in.Items {
		if i == 0 || in.Items[i-1].Status != item.Status {
			b.WriteString("## ")
			b.WriteString(item.Status.SectionName())
			b.WriteString("\n\n")
		}
		writeItemLine(&b, item)
	}
	return b.String()
}

func writeItemLine(b *strings.Builder, item Item) {
	b.WriteString("- [")
	b.WriteRune(item.Status.Char())
	b.WriteString("] ")
	b.WriteString(item.Msg())

	for _, key := range priorityKeys {
		if v, ok := item.Attrs[key]; ok {
			writeAttr(b, key, v)
		}
	}
	for _, key := range extraKeys(item) {
		writeAttr(b, key, item.Attrs[key])
	}
	b.WriteByte('\n')
}

// extraKeys returns the non-priority, non-msg keys in lexical order.
func extraKeys(item Item) []string {
	keys := make([]string, 0, len(item.Attrs))
	for k := range item.Attrs {
		if k == KeyMsg || slices.Contains(priorityKeys, k) {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func writeAttr(b *strings.Builder, key, value string) {
	b.WriteString(" [")
	b.WriteString(key)
	b.WriteString(":: ")
	b.WriteString(value)
	b.WriteByte(']')
}
