package sym

import (
	"testing"
	"unicode/utf8"
)

func TestSymbolToCommandAndCommandToSymbolAreBidirectional(t *testing.T) {
	for symbol, cmd := range SymbolToCommand {
		got, ok := CommandToSymbol[cmd]
		if !ok {
			t.Errorf("SymbolToCommand has %q → %q, but CommandToSymbol has no entry for %q", symbol, cmd, cmd)
			continue
		}
		if got != symbol {
			t.Errorf("bidirectional mismatch: SymbolToCommand[%q] = %q, but CommandToSymbol[%q] = %q", symbol, cmd, cmd, got)
		}
	}
	if len(SymbolToCommand) != len(CommandToSymbol) {
		t.Errorf("map size mismatch: %d glyphs, %d commands", len(SymbolToCommand), len(CommandToSymbol))
	}
}

func TestCommandDescriptionsCoversAllCommands(t *testing.T) {
	for cmd := range CommandToSymbol {
		if CommandDescriptions[cmd] == "" {
			t.Errorf("CommandDescriptions missing entry for command %q", cmd)
		}
	}
}

func TestGlyphsAreSingleRunes(t *testing.T) {
	for glyph := range SymbolToCommand {
		if n := utf8.RuneCountInString(glyph); n != 1 {
			t.Errorf("glyph %q has %d runes, want 1", glyph, n)
		}
	}
	for name, glyph := range PointerGlyphs {
		if n := utf8.RuneCountInString(glyph); n != 1 {
			t.Errorf("pointer %s glyph %q has %d runes, want 1", name, glyph, n)
		}
	}
}

func TestShort(t *testing.T) {
	if got, want := Short("dial"), "◎ Predict dial: 20 main and 60 inner entries"; got != want {
		t.Errorf("Short(dial) = %q, want %q", got, want)
	}
	if got := Short("unknown"); got != "" {
		t.Errorf("Short(unknown) = %q, want empty", got)
	}
}

func TestPointer(t *testing.T) {
	if got := Pointer("money"); got != "♃ money" {
		t.Errorf("Pointer(money) = %q", got)
	}
	if got := Pointer("header_text"); got != "header_text" {
		t.Errorf("Pointer(header_text) = %q", got)
	}
}
