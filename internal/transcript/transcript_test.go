package transcript

import "testing"

func entry(text string) Entry {
	return New(OriginLocal, text, "Player")
}

func TestLog_AppendKeepsInsertionOrder(t *testing.T) {
	l := NewLog()
	l.Append(entry("one"))
	l.Append(entry("two"))
	l.Append(entry("three"))

	got := l.Entries()
	if len(got) != 3 {
		t.Fatalf("want 3 entries, got %d", len(got))
	}
	for i, want := range []string{"one", "two", "three"} {
		if got[i].Text != want {
			t.Fatalf("entry %d: want %q, got %q", i, want, got[i].Text)
		}
	}
}

func TestLog_ConsecutiveDuplicateSegmentDropped(t *testing.T) {
	l := NewLog()
	if !l.AppendSegment("seg-1", entry("hello there")) {
		t.Fatal("first segment should be accepted")
	}
	if l.AppendSegment("seg-1", entry("hello there")) {
		t.Fatal("identical consecutive segment should be dropped")
	}
	if l.Len() != 1 {
		t.Fatalf("want 1 entry, got %d", l.Len())
	}
}

func TestLog_DuplicateWindowIsOneSlot(t *testing.T) {
	// A repeat with one distinct segment in between is accepted again:
	// the window holds only the most recently accepted pair.
	l := NewLog()
	if !l.AppendSegment("seg-1", entry("hello there")) {
		t.Fatal("first segment should be accepted")
	}
	if !l.AppendSegment("seg-2", entry("something else")) {
		t.Fatal("distinct segment should be accepted")
	}
	if !l.AppendSegment("seg-1", entry("hello there")) {
		t.Fatal("non-consecutive repeat should be accepted")
	}
	if l.Len() != 3 {
		t.Fatalf("want 3 entries, got %d", l.Len())
	}
}

func TestLog_SameIDNewTextAccepted(t *testing.T) {
	l := NewLog()
	l.AppendSegment("seg-1", entry("hello"))
	if !l.AppendSegment("seg-1", entry("hello there, friend")) {
		t.Fatal("same id with different text should be accepted")
	}
}

func TestLog_ClearResetsWindow(t *testing.T) {
	l := NewLog()
	l.AppendSegment("seg-1", entry("hello"))
	l.Clear()

	if l.Len() != 0 {
		t.Fatalf("want empty log, got %d entries", l.Len())
	}
	if !l.AppendSegment("seg-1", entry("hello")) {
		t.Fatal("segment should be accepted again after clear")
	}
}

func TestLog_Last(t *testing.T) {
	l := NewLog()
	if _, ok := l.Last(); ok {
		t.Fatal("empty log should report no last entry")
	}
	l.Append(entry("one"))
	l.Append(entry("two"))
	last, ok := l.Last()
	if !ok || last.Text != "two" {
		t.Fatalf("want last entry %q, got %+v", "two", last)
	}
}

func TestNew_AssignsUniqueIDs(t *testing.T) {
	a := New(OriginLocal, "a", "")
	b := New(OriginLocal, "a", "")
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("entries must get unique ids, got %q and %q", a.ID, b.ID)
	}
}
