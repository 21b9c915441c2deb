package pattern

import "strings"

// CategoryType represents a design pattern category.
type CategoryType string

const (
	// CategoryBehavioral covers patterns concerned with object interaction
	// and the distribution of responsibility: how requests flow, who reacts,
	// and how algorithms vary independently of their callers.
	CategoryBehavioral CategoryType = "behavioral"

	// CategoryCreational covers patterns concerned with object construction:
	// how instances come into being and how that process is decoupled from
	// the code that needs them.
	CategoryCreational CategoryType = "creational"
)

// Categories returns all categories in canonical document order.
func Categories() []CategoryType {
	return []CategoryType{CategoryBehavioral, CategoryCreational}
}

// Valid reports whether c is a known category.
func (c CategoryType) Valid() bool {
	switch c {
	case CategoryBehavioral, CategoryCreational:
		return true
	default:
		return false
	}
}

// Title returns the display title used as the H1 heading for a category
// section in the markdown document format.
func (c CategoryType) Title() string {
	switch c {
	case CategoryBehavioral:
		return "Behavioral Patterns"
	case CategoryCreational:
		return "Creational Patterns"
	default:
		return string(c)
	}
}

// ParseCategory parses a category from user or document input.
// Matching is case-insensitive and accepts both the enum value and the
// display title ("behavioral", "Behavioral Patterns").
func ParseCategory(s string) (CategoryType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "behavioral", "behavioral patterns", "behaviour", "behavioural":
		return CategoryBehavioral, true
	case "creational", "creational patterns":
		return CategoryCreational, true
	default:
		return "", false
	}
}

// ParseCategoryTitle parses an H1 heading from the markdown document format
// into a category. Returns false for headings that are not category titles.
func ParseCategoryTitle(heading string) (CategoryType, bool) {
	return ParseCategory(heading)
}

// RelatedPatterns maps pattern names to conceptually related patterns.
// Used for cross-reference display; the catalog itself carries no links
// between entries.
var RelatedPatterns = map[string][]string{
	"Abstract Factory":        {"Factory Method", "Builder", "Prototype", "Singleton"},
	"Builder":                 {"Abstract Factory"},
	"Factory Method":          {"Abstract Factory", "Prototype"},
	"Prototype":               {"Abstract Factory", "Factory Method"},
	"Singleton":               {"Abstract Factory", "Lazy Initialization"},
	"Lazy Initialization":     {"Singleton", "Prototype"},
	"Chain of Responsibility": {"Command", "Mediator"},
	"Command":                 {"Chain of Responsibility", "Memento"},
	"Interpreter":             {"Visitor", "Iterator"},
	"Iterator":                {"Visitor", "Memento"},
	"Mediator":                {"Observer", "Chain of Responsibility"},
	"Memento":                 {"Command", "Iterator"},
	"Observer":                {"Mediator"},
	"State":                   {"Strategy", "Singleton"},
	"Strategy":                {"State", "Template Method"},
	"Template Method":         {"Strategy", "Factory Method"},
	"Visitor":                 {"Iterator", "Interpreter"},
}
