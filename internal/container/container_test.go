package container

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetAttributeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v2.1.h5")
	raw := []byte("<testsuites><testsuite name=\"frdm_k64f\"/></testsuites>\n")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := f.SetAttribute("frdm_k64f", raw); err != nil {
		t.Fatalf("SetAttribute: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	ok, err := f.HasAttribute("frdm_k64f")
	if err != nil || !ok {
		t.Fatalf("HasAttribute = %v, %v", ok, err)
	}
	got, err := f.Attribute("frdm_k64f")
	if err != nil {
		t.Fatalf("Attribute: %v", err)
	}
	if string(got) != string(raw) {
		t.Fatalf("attribute mismatch: got %q want %q", got, raw)
	}
}

func TestSetAttributeAppendsAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v2.1.h5")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	for _, step := range []struct{ name, value string }{
		{"board_a", "first"},
		{"board_b", "second"},
		{"board_a", "replaced"},
	} {
		if err := f.SetAttribute(step.name, []byte(step.value)); err != nil {
			t.Fatalf("SetAttribute(%s): %v", step.name, err)
		}
	}

	for name, want := range map[string]string{"board_a": "replaced", "board_b": "second"} {
		got, err := f.Attribute(name)
		if err != nil {
			t.Fatalf("Attribute(%s): %v", name, err)
		}
		if string(got) != want {
			t.Errorf("Attribute(%s) = %q, want %q", name, got, want)
		}
	}
}

func TestOpenRejectsNonHDF5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v1.h5")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("expected error for non-HDF5 file")
	}
}

func TestSetAttributeRejectsEmptyName(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "x.h5"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if err := f.SetAttribute("", []byte("x")); err == nil {
		t.Fatal("expected error for empty name")
	}
}
