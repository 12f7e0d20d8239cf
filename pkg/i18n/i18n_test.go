package i18n

import "testing"

func TestGet(t *testing.T) {
	t.Cleanup(func() { _ = Use(DefaultLanguage) })

	if got := Get("ITEM_NOT_FOUND", "X-9"); got != "Item X-9 not found" {
		t.Errorf("Get(ITEM_NOT_FOUND) = %q", got)
	}
	if got := Get("plain text"); got != "plain text" {
		t.Errorf("Get(untranslated) = %q, want passthrough", got)
	}

	if err := Use("de"); err != nil {
		t.Fatalf("Use(de) error = %v", err)
	}
	if got := Get("ITEM_NOT_FOUND", "X-9"); got != "Artikel X-9 nicht gefunden" {
		t.Errorf("de Get(ITEM_NOT_FOUND) = %q", got)
	}
	if Language() != "de" {
		t.Errorf("Language() = %q, want de", Language())
	}
}

func TestUse_Unknown(t *testing.T) {
	if err := Use("xx"); err == nil {
		t.Error("Use(xx) error = nil")
	}
	if Language() == "xx" {
		t.Error("failed Use changed the language")
	}
}

func TestAvailable(t *testing.T) {
	got := Available()
	if len(got) != 2 || got[0] != "de" || got[1] != "en" {
		t.Errorf("Available() = %v, want [de en]", got)
	}
}
