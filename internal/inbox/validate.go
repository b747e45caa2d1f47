package inbox

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// fieldNames are the user-facing names of the conventional keys, used in
// validation errors.
var fieldNames = map[string]string{
	KeyMsg:    "text",
	KeyPane:   "pane",
	KeyProj:   "project",
	KeyBranch: "branch",
}

func fieldName(key string) string {
	if name, ok := fieldNames[key]; ok {
		return name
	}
	return fmt.Sprintf("attribute %q", key)
}

// Validate reports attributes that would not read back unchanged after a
// save. Items are stored one per line and annotations end at the first ']',
// so line breaks, ']' in annotation values and text that reads as an
// annotation are rejected.
func (it Item) Validate() error {
	for _, key := range slices.Sorted(maps.Keys(it.Attrs)) {
		value := it.Attrs[key]
		name := fieldName(key)

		if strings.ContainsAny(key, "\r\n") || strings.ContainsAny(value, "\r\n") {
			return fmt.Errorf("%s may not contain line breaks", name)
		}
		if value != strings.TrimSpace(value) {
			return fmt.Errorf("%s may not start or end with whitespace", name)
		}
		if value == "" {
			return fmt.Errorf("%s may not be empty", name)
		}
		if key == KeyMsg {
			continue
		}
		if key != strings.TrimSpace(key) || strings.ContainsAny(key, ":[]") {
			return fmt.Errorf("invalid attribute key %q: may not contain ':', '[' or ']'", key)
		}
		if strings.Contains(value, "]") {
			return fmt.Errorf("%s may not contain ']'", name)
		}
	}

	if len(it.Attrs) == 0 {
		return fmt.Errorf("item has no text or attributes")
	}

	// The message ends at the first annotation; catch text that would be
	// split off into attributes.
	var b strings.Builder
	writeItemLine(&b, it)
	back := Parse(b.String())
	if back.Len() != 1 || !maps.Equal(back.Items[0].Attrs, it.Attrs) {
		return fmt.Errorf("text %q contains '[key:: value]' annotation syntax", it.Msg())
	}
	return nil
}
