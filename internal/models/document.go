package models

// Document is a scraped page held as chat context for the current session.
type Document struct {
	ID       string
	URL      string
	Title    string
	Content  string
	Metadata map[string]interface{}
}

// ProcessedDocument is a Document after cleaning and chunking, sized to fit
// inside a completion prompt.
type ProcessedDocument struct {
	Document
	Chunks []string
}
