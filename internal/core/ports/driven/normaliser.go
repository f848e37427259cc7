package driven

// Normaliser cleans one raw lead field value scraped from the web.
// Normalisers declare which fields they apply to; "*" matches every field.
type Normaliser interface {
	// Fields returns the field names this normaliser applies to
	Fields() []string

	// Priority determines application order when multiple normalisers match
	// a field (higher runs first)
	Priority() int

	// Normalise returns the cleaned value
	Normalise(value string) string
}

// NormaliserRegistry selects and applies normalisers per field
type NormaliserRegistry interface {
	// Register adds a normaliser
	Register(n Normaliser)

	// Apply runs every matching normaliser over the value, highest priority
	// first. Unmatched fields pass through unchanged.
	Apply(field, value string) string

	// List returns all registered field names
	List() []string
}
