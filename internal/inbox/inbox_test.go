package inbox

import "testing"

func TestUpsert_OverwritesMatchingPaneInPlace(t *testing.T) {
	in := New()
	in.Upsert(NewItem(Waiting, KeyMsg, "first", KeyPane, "42", KeyProj, "crucible"))
	in.Upsert(NewItem(Waiting, KeyMsg, "other", KeyPane, "17", KeyProj, "tael"))
	in.Upsert(NewItem(Waiting, KeyMsg, "second", KeyPane, "042", KeyProj, "crucible"))

	if in.Len() != 2 {
		t.Fatalf("Len = %d, want 2", in.Len())
	}
	got, ok := in.Find(42)
	if !ok {
		t.Fatalf("Find(42) not found")
	}
	if got.Msg() != "second" {
		t.Fatalf("Msg = %q, want %q", got.Msg(), "second")
	}
}

func TestUpsert_OverwriteKeepsPositionAmongEqualKeys(t *testing.T) {
	in := New()
	for _, pane := range []string{"1", "2", "3"} {
		in.Upsert(NewItem(Waiting, KeyMsg, "item "+pane, KeyPane, pane, KeyProj, "p"))
	}
	in.Upsert(NewItem(Waiting, KeyMsg, "updated", KeyPane, "2", KeyProj, "p"))

	want := []string{"item 1", "updated", "item 3"}
	if in.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", in.Len(), len(want))
	}
	for i, msg := range want {
		if got := in.Items[i].Msg(); got != msg {
			t.Fatalf("Items[%d].Msg = %q, want %q", i, got, msg)
		}
	}
}

func TestUpsert_AppendsUnknownPane(t *testing.T) {
	in := New()
	in.Upsert(NewItem(Waiting, KeyPane, "1"))
	in.Upsert(NewItem(Waiting, KeyPane, "2"))
	if in.Len() != 2 {
		t.Fatalf("Len = %d, want 2", in.Len())
	}
}

func TestUpsert_WithoutPaneAlwaysAppends(t *testing.T) {
	in := New()
	for i := 0; i < 3; i++ {
		in.Upsert(NewItem(Waiting, KeyMsg, "no pane"))
	}
	if in.Len() != 3 {
		t.Fatalf("Len = %d, want 3", in.Len())
	}

	// A non-numeric pane cannot be matched either.
	in.Upsert(NewItem(Waiting, KeyPane, "abc"))
	in.Upsert(NewItem(Waiting, KeyPane, "abc"))
	if in.Len() != 5 {
		t.Fatalf("Len = %d, want 5", in.Len())
	}
}

func TestUpsert_StatusChangeMovesItem(t *testing.T) {
	in := New()
	in.Upsert(NewItem(Waiting, KeyPane, "1", KeyProj, "a"))
	in.Upsert(NewItem(Waiting, KeyPane, "2", KeyProj, "b"))
	in.Upsert(NewItem(Working, KeyPane, "1", KeyProj, "a"))

	if id, _ := in.Items[0].PaneID(); id != 2 {
		t.Fatalf("first pane = %d, want 2", id)
	}
	if in.Items[1].Status != Working {
		t.Fatalf("second status = %v, want working", in.Items[1].Status)
	}
}

func TestUpsert_KeepsCanonicalOrder(t *testing.T) {
	in := New()
	in.Upsert(NewItem(Working, KeyPane, "1", KeyProj, "zeta"))
	in.Upsert(NewItem(Waiting, KeyPane, "2", KeyProj, "mid"))
	in.Upsert(NewItem(Working, KeyPane, "3", KeyProj, "alpha"))
	in.Upsert(NewItem(Waiting, KeyPane, "4"))
	in.Upsert(NewItem(Waiting, KeyPane, "5", KeyProj, "alpha"))

	if !in.IsSorted() {
		t.Fatalf("inbox not sorted after upserts")
	}
	want := []uint32{4, 5, 2, 3, 1}
	for i, id := range want {
		got, _ := in.Items[i].PaneID()
		if got != id {
			t.Fatalf("Items[%d] pane = %d, want %d", i, got, id)
		}
	}
}

func TestUpsert_BranchDoesNotAffectOrder(t *testing.T) {
	in := New()
	in.Upsert(NewItem(Waiting, KeyPane, "1", KeyProj, "p", KeyBranch, "zzz"))
	in.Upsert(NewItem(Waiting, KeyPane, "2", KeyProj, "p", KeyBranch, "aaa"))
	in.Upsert(NewItem(Waiting, KeyPane, "3", KeyProj, "p"))

	want := []uint32{1, 2, 3}
	for i, id := range want {
		got, _ := in.Items[i].PaneID()
		if got != id {
			t.Fatalf("Items[%d] pane = %d, want %d (insertion order)", i, got, id)
		}
	}
}

func TestRemove(t *testing.T) {
	in := New()
	in.Upsert(NewItem(Waiting, KeyPane, "1"))
	in.Upsert(NewItem(Waiting, KeyPane, "2"))

	if in.Remove(99) {
		t.Fatalf("Remove(99) = true, want false")
	}
	if in.Len() != 2 {
		t.Fatalf("Len after miss = %d, want 2", in.Len())
	}
	if !in.Remove(1) {
		t.Fatalf("Remove(1) = false, want true")
	}
	if in.Len() != 1 {
		t.Fatalf("Len = %d, want 1", in.Len())
	}
}

func TestRemove_DeletesEveryMatch(t *testing.T) {
	// Parsed documents may contain duplicate panes.
	in := Parse("- [ ] a [pane:: 7]\n- [ ] b [pane:: 07]\n- [ ] c [pane:: 8]\n")
	if !in.Remove(7) {
		t.Fatalf("Remove(7) = false, want true")
	}
	if in.Len() != 1 {
		t.Fatalf("Len = %d, want 1", in.Len())
	}
}

func TestItemPaneID(t *testing.T) {
	cases := []struct {
		name string
		pane string
		want uint32
		ok   bool
	}{
		{"plain", "42", 42, true},
		{"padded", " 42 ", 42, true},
		{"leading_zero", "007", 7, true},
		{"negative", "-1", 0, false},
		{"text", "abc", 0, false},
		{"overflow", "4294967296", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NewItem(Waiting, KeyPane, tc.pane).PaneID()
			if got != tc.want || ok != tc.ok {
				t.Fatalf("PaneID(%q) = (%d, %v), want (%d, %v)", tc.pane, got, ok, tc.want, tc.ok)
			}
		})
	}
	if _, ok := NewItem(Waiting).PaneID(); ok {
		t.Fatalf("PaneID without attribute ok = true, want false")
	}
}

func TestClone_IsIndependent(t *testing.T) {
	in := New()
	in.Upsert(NewItem(Waiting, KeyMsg, "a", KeyPane, "1"))
	dup := in.Clone()
	dup.Items[0].Attrs[KeyMsg] = "changed"
	if in.Items[0].Msg() != "a" {
		t.Fatalf("Clone shares attrs: Msg = %q", in.Items[0].Msg())
	}
}

func TestParseStatus(t *testing.T) {
	for _, v := range []string{"wait", "waiting", " WAIT "} {
		if s, err := ParseStatus(v); err != nil || s != Waiting {
			t.Fatalf("ParseStatus(%q) = %v, %v; want waiting", v, s, err)
		}
	}
	for _, v := range []string{"work", "working"} {
		if s, err := ParseStatus(v); err != nil || s != Working {
			t.Fatalf("ParseStatus(%q) = %v, %v; want working", v, s, err)
		}
	}
	if _, err := ParseStatus("done"); err == nil {
		t.Fatalf("ParseStatus(done) returned nil error")
	}
}
