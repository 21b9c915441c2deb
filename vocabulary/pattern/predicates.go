package pattern

// Entry predicates naming the fields of a catalog entry in the JSON
// document format. Keys are dotted, namespaced strings so documents stay
// self-describing when mixed with other catalog exports.
const (
	// PredName is the pattern display name (unique within its category).
	PredName = "pattern.meta.name"

	// PredSlug is the sanitized stable identifier derived from the name.
	PredSlug = "pattern.meta.slug"

	// PredCategory is the category enum value.
	// Values: "behavioral", "creational"
	PredCategory = "pattern.meta.category"

	// PredDefinition is the one-paragraph definition text.
	PredDefinition = "pattern.doc.definition"

	// PredExplanation is the rationale text (may span paragraphs).
	PredExplanation = "pattern.doc.explanation"

	// PredExample is the verbatim example source text, fences stripped.
	PredExample = "pattern.code.example"

	// PredExampleLang is the fence info string of the example ("go" etc.).
	PredExampleLang = "pattern.code.language"
)

// Document predicates for JSON document metadata.
const (
	// PredDocType identifies a JSON document as a pattern catalog export.
	PredDocType = "pattern.catalog"

	// PredDocTitle is the catalog document title.
	PredDocTitle = "pattern.catalog.title"

	// PredDocEntries holds the ordered entry array.
	PredDocEntries = "pattern.catalog.entries"
)
