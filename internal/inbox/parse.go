package inbox

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// grammar holds the compiled line patterns of the document format.
type grammar struct {
	section *regexp.Regexp // ## <name>
	project *regexp.Regexp // ### <name> or ### <name> (<branch>)
	item    *regexp.Regexp // - [<char>] <rest>
	attr    *regexp.Regexp // [<key>:: <value>]
}

var documentGrammar = sync.OnceValue(func() *grammar {
	return &grammar{
		section: regexp.MustCompile(`^## (.+)$`),
		project: regexp.MustCompile(`^### ([^(]+?)(?:\s*\(([^)]+)\))?$`),
		item:    regexp.MustCompile(`^- \[(.)\] (.+)$`),
		attr:    regexp.MustCompile(`\[([^:\]]+):: ([^\]]+)\]`),
	}
})

// parseState is the header context carried from line to line.
type parseState struct {
	status  Status
	project string
	branch  string
}

// Parse turns document text into an inbox. It never fails: lines that match
// nothing are ignored. Items are returned in document order; call Normalize
// to restore canonical order.
func Parse(text string) *Inbox {
	g := documentGrammar()
	out := New()
	st := parseState{status: Waiting}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRightFunc(line, unicode.IsSpace)

		if m := g.section.FindStringSubmatch(line); m != nil {
			if status, ok := StatusFromSection(m[1]); ok {
				st.status = status
			}
			continue
		}

		if m := g.project.FindStringSubmatch(line); m != nil {
			st.project = strings.TrimSpace(m[1])
			st.branch = m[2]
			continue
		}

		if strings.HasPrefix(line, "###") {
			continue
		}

		if m := g.item.FindStringSubmatch(line); m != nil {
			out.Items = append(out.Items, g.parseItem(m[1], m[2], st))
		}
	}

	return out
}

func (g *grammar) parseItem(mark, rest string, st parseState) Item {
	r, _ := utf8.DecodeRuneInString(mark)
	status, ok := StatusFromChar(r)
	if !ok {
		status = st.status
	}

	item := Item{Attrs: make(map[string]string), Status: status}
	for _, m := range g.attr.FindAllStringSubmatch(rest, -1) {
		item.Attrs[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
	}

	// The message is everything before the first annotation, so stray
	// brackets that do not form "[key:: value]" stay in the text.
	msg := rest
	if loc := g.attr.FindStringIndex(rest); loc != nil {
		msg = rest[:loc[0]]
	}
	if msg = strings.TrimSpace(msg); msg != "" {
		item.Attrs[KeyMsg] = msg
	}

	if st.project != "" {
		if _, ok := item.Attrs[KeyProj]; !ok {
			item.Attrs[KeyProj] = st.project
		}
	}
	if st.branch != "" {
		if _, ok := item.Attrs[KeyBranch]; !ok {
			item.Attrs[KeyBranch] = st.branch
		}
	}
	return item
}
