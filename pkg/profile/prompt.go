// Package profile turns raw resume text into a structured profile via a
// remote completion service.
package profile

import "fmt"

const extractionTemplate = `Extract the following information from the resume text below.

Return a single JSON object with exactly these five fields:
- "education": list of (degree, school, location, start date, end date) tuples
- "experience": list of (company, title, location, start date, end date) tuples
- "skills": list of skill names
- "projects": list of (name, description, start date, end date) tuples
- "languages": list of spoken languages

Rules:
1. Only include information that appears in the resume text. Never invent or
   infer values that are not explicitly present.
2. If the resume contains no information for a field, return it as an empty
   list. Do not omit any of the five fields.
3. Return ONLY the JSON object. No explanations, no markdown formatting.

Resume text:
%s`

// BuildExtractionPrompt renders the fixed extraction instruction with the raw
// document text embedded verbatim. Pure string substitution with no failure
// modes: an empty document (a valid zero-page PDF, for instance) produces a
// prompt with an empty resume section, and the template's rules already
// direct the model to answer with empty lists.
func BuildExtractionPrompt(rawText string) string {
	return fmt.Sprintf(extractionTemplate, rawText)
}
