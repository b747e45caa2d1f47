package inbox

import (
	"cmp"
	"slices"
)

// Inbox is the ordered collection of items backing one document.
//
// Upsert keeps Items sorted by status, then project. Parse does not, so a
// freshly parsed inbox keeps document order until Normalize or Upsert runs.
type Inbox struct {
	Items []Item `json:"items" yaml:"items"`
}

// New returns an empty inbox.
func New() *Inbox {
	return &Inbox{}
}

// Len returns the number of items.
func (in *Inbox) Len() int {
	if in == nil {
		return 0
	}
	return len(in.Items)
}

// IsEmpty reports whether the inbox holds no items.
func (in *Inbox) IsEmpty() bool {
	return in.Len() == 0
}

// Upsert replaces the item with the same pane id in place, or appends the
// item when there is no match. Items without a numeric pane are always
// appended, so repeated calls without a pane add new entries.
func (in *Inbox) Upsert(item Item) {
	if id, ok := item.PaneID(); ok {
		if idx := in.indexOfPane(id); idx >= 0 {
			in.Items[idx] = item
			in.sort()
			return
		}
	}
	in.Items = append(in.Items, item)
	in.sort()
}

// Remove deletes every item whose pane parses to id and reports whether any
// item was removed.
func (in *Inbox) Remove(id uint32) bool {
	before := len(in.Items)
	in.Items = slices.DeleteFunc(in.Items, func(it Item) bool {
		pane, ok := it.PaneID()
		return ok && pane == id
	})
	return len(in.Items) < before
}

// Find returns the first item with the given pane id.
func (in *Inbox) Find(id uint32) (Item, bool) {
	if idx := in.indexOfPane(id); idx >= 0 {
		return in.Items[idx], true
	}
	return Item{}, false
}

// Normalize restores canonical order without changing membership.
func (in *Inbox) Normalize() {
	in.sort()
}

// Clone returns a deep copy of the inbox.
func (in *Inbox) Clone() *Inbox {
	dup := &Inbox{Items: make([]Item, 0, in.Len())}
	if in == nil {
		return dup
	}
	for _, it := range in.Items {
		dup.Items = append(dup.Items, it.Clone())
	}
	return dup
}

func (in *Inbox) indexOfPane(id uint32) int {
	for i, it := range in.Items {
		if pane, ok := it.PaneID(); ok && pane == id {
			return i
		}
	}
	return -1
}

// sort orders by status rank, then by proj. Branch is deliberately not a
// key: equal (status, proj) items keep insertion order.
func (in *Inbox) sort() {
	slices.SortStableFunc(in.Items, compareItems)
}

func compareItems(a, b Item) int {
	if c := cmp.Compare(a.Status, b.Status); c != 0 {
		return c
	}
	return cmp.Compare(a.Attrs[KeyProj], b.Attrs[KeyProj])
}

// IsSorted reports whether the items satisfy the canonical order.
func (in *Inbox) IsSorted() bool {
	return slices.IsSortedFunc(in.Items, compareItems)
}
