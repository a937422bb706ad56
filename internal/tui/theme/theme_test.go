package theme

import "testing"

func TestByName(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %q", got)
	}
	if got := ByName("solarized").Name; got != "flexoki-dark" {
		t.Errorf("ByName(unknown) = %q, want flexoki-dark", got)
	}
}

func TestNamesMatchAll(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("Names() has %d entries, want %d", len(names), len(All))
	}
	for i, n := range names {
		if ByName(n).Name != n {
			t.Errorf("Names()[%d] = %q does not round-trip through ByName", i, n)
		}
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive("flexoki-dark")

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Errorf("Active = %q after SetActive(terminal)", Active.Name)
	}
	SetActive("")
	if Active.Name != "flexoki-dark" {
		t.Errorf("Active = %q after SetActive(\"\"), want default", Active.Name)
	}
}
