package inbox

import (
	"strconv"
	"strings"
)

// Conventional attribute keys. Any other key is stored and rendered opaquely.
const (
	KeyPane   = "pane"
	KeyMsg    = "msg"
	KeyProj   = "proj"
	KeyBranch = "branch"
)

// Item is one tracked pane: free-form attributes plus a status.
type Item struct {
	Attrs  map[string]string `json:"attrs" yaml:"attrs"`
	Status Status            `json:"status" yaml:"status"`
}

// NewItem builds an item from alternating key/value pairs. Empty values are skipped.
func NewItem(status Status, kv ...string) Item {
	item := Item{Attrs: make(map[string]string, len(kv)/2), Status: status}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		item.Attrs[kv[i]] = kv[i+1]
	}
	return item
}

// Get returns the attribute stored under key.
func (it Item) Get(key string) (string, bool) {
	v, ok := it.Attrs[key]
	return v, ok
}

// Msg returns the display text, or "" when absent.
func (it Item) Msg() string {
	return it.Attrs[KeyMsg]
}

// Proj returns the project label.
func (it Item) Proj() (string, bool) {
	return it.Get(KeyProj)
}

// Branch returns the branch sub-label.
func (it Item) Branch() (string, bool) {
	return it.Get(KeyBranch)
}

// PaneID parses the pane attribute as an unsigned number.
func (it Item) PaneID() (uint32, bool) {
	raw, ok := it.Attrs[KeyPane]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(id), true
}

// Clone returns a deep copy so callers never share the attribute map.
func (it Item) Clone() Item {
	dup := Item{Attrs: make(map[string]string, len(it.Attrs)), Status: it.Status}
	for k, v := range it.Attrs {
		dup.Attrs[k] = v
	}
	return dup
}
