// Package sym defines the glyphs arcana prints next to commands, pages and
// life domains. They are stable across CLI help, tables and logs.
package sym

// Command glyphs.
const (
	Star       = "✶" // star: derived arcana of one client
	Dial       = "◎" // dial: the 80-entry predict dial
	Pythagoras = "▦" // pythagoras: the Pythagorean square
	Report     = "▤" // report: render-ready pages of a scenario
	Template   = "⌗" // template: page layout documents
	AM         = "≡" // am: arcana configuration
)

// Life domain glyphs, in canonical pointer order.
const (
	Personality  = "☉"
	Spirituality = "☽"
	Money        = "♃"
	Relationship = "♀"
	Health       = "♂"
)

// Status markers.
const (
	OK   = "✓"
	Fail = "✗"
)

// entry binds a glyph to its command and description.
type entry struct {
	glyph       string
	command     string
	description string
}

var registry = []entry{
	{Star, "star", "Derived arcana of one client"},
	{Dial, "dial", "Predict dial: 20 main and 60 inner entries"},
	{Pythagoras, "pythagoras", "Pythagorean square of a birthday"},
	{Report, "report", "Build the pages of a scenario"},
	{Template, "template", "Resolve and check page layouts"},
	{AM, "am", "Configuration and sources"},
}

// Lookup tables built from the registry at init time.
var (
	// SymbolToCommand maps glyph strings to their command names.
	SymbolToCommand map[string]string
	// CommandToSymbol maps command names to their glyphs.
	CommandToSymbol map[string]string
	// CommandDescriptions holds one-line command summaries.
	CommandDescriptions map[string]string
)

func init() {
	SymbolToCommand = make(map[string]string, len(registry))
	CommandToSymbol = make(map[string]string, len(registry))
	CommandDescriptions = make(map[string]string, len(registry))
	for _, e := range registry {
		SymbolToCommand[e.glyph] = e.command
		CommandToSymbol[e.command] = e.glyph
		CommandDescriptions[e.command] = e.description
	}
}

// PointerGlyphs maps pointer names to their glyphs.
var PointerGlyphs = map[string]string{
	"personality":  Personality,
	"spirituality": Spirituality,
	"money":        Money,
	"relationship": Relationship,
	"health":       Health,
}

// Short is the cobra Short line of command: glyph plus description.
func Short(command string) string {
	glyph, ok := CommandToSymbol[command]
	if !ok {
		return CommandDescriptions[command]
	}
	return glyph + " " + CommandDescriptions[command]
}

// Pointer prefixes a pointer name with its glyph when it has one.
func Pointer(name string) string {
	if g, ok := PointerGlyphs[name]; ok {
		return g + " " + name
	}
	return name
}
