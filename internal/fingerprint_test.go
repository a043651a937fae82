package internal

import "testing"

func TestSelectionFingerprint(t *testing.T) {
	a := SelectionSnapshot{
		DateRange: DateRange{Start: "2024-03-01"},
		Selected: map[Category][]string{
			CategoryEmail: {"email-1", "email-2"},
			CategorySMS:   {"sms-1"},
		},
	}
	// same content, map built in a different order
	b := SelectionSnapshot{
		Selected: map[Category][]string{
			CategorySMS:   {"sms-1"},
			CategoryEmail: {"email-1", "email-2"},
		},
		DateRange: DateRange{Start: "2024-03-01"},
	}

	fa, err := SelectionFingerprint(a)
	if err != nil {
		t.Fatalf("SelectionFingerprint() error = %v", err)
	}
	fb, _ := SelectionFingerprint(b)
	if fa != fb {
		t.Errorf("equal selections fingerprint differently: %s vs %s", fa, fb)
	}
	if len(fa) != 64 {
		t.Errorf("fingerprint length = %d, want 64", len(fa))
	}

	c := a
	c.DateRange = DateRange{Start: "2024-03-02"}
	if fc, _ := SelectionFingerprint(c); fc == fa {
		t.Error("different ranges produced the same fingerprint")
	}
}

func TestSelectionFingerprint_TrackerOrderIndependent(t *testing.T) {
	first := NewSelectionTracker(CreateTestCollection())
	first.ToggleItem(CategoryEmail, "email-1")
	first.ToggleItem(CategoryPhoneCall, "call-1")

	second := NewSelectionTracker(CreateTestCollection())
	second.ToggleItem(CategoryPhoneCall, "call-1")
	second.ToggleItem(CategoryEmail, "email-1")

	f1, _ := SelectionFingerprint(first.Snapshot())
	f2, _ := SelectionFingerprint(second.Snapshot())
	if f1 != f2 {
		t.Errorf("toggle order changed the fingerprint: %s vs %s", f1, f2)
	}
}
