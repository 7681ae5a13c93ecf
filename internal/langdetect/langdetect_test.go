package langdetect

import "testing"

func TestDetectEnglish(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	text := "This is clearly an English review about a book I could not put down."
	if lang := d.Detect(text); lang != "english" {
		t.Errorf("Detect = %q, want english", lang)
	}

	// Second call hits the cache and must agree.
	if lang := d.Detect(text); lang != "english" {
		t.Errorf("cached Detect = %q, want english", lang)
	}
}
