package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kmorales/careerforge/internal/models"
)

// ErrUnparsableResponse reports a completion with no object-like region at
// all. It is surfaced, never silently converted to an empty profile: it means
// the model deviated from the requested contract in a way no positional
// fallback can repair.
var ErrUnparsableResponse = errors.New("unparsable completion response")

// rawProfile is the loosely-typed shape the model actually returns. Fields
// absent from the object stay nil and become empty sequences.
type rawProfile struct {
	Education  []json.RawMessage `json:"education"`
	Experience []json.RawMessage `json:"experience"`
	Skills     []interface{}     `json:"skills"`
	Projects   []json.RawMessage `json:"projects"`
	Languages  []interface{}     `json:"languages"`
}

// ParseProfile converts a raw completion string into a StructuredProfile.
// The model's output is not guaranteed to be strict JSON: it may be wrapped
// in a fenced code block, may use tuple literals for list elements, and may
// carry trailing commentary. All of that tolerance lives here; the completion
// client stays agnostic of output shape.
func ParseProfile(completionText string) (*models.StructuredProfile, error) {
	cleaned := stripFences(completionText)

	objText, ok := extractObject(cleaned)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object found in completion", ErrUnparsableResponse)
	}

	normalized := tuplesToArrays(objText)

	var raw rawProfile
	if err := json.Unmarshal([]byte(normalized), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}

	result := models.NewStructuredProfile()

	for _, entry := range raw.Education {
		fields, err := decodeTuple(entry, 5, []string{"degree", "school", "location", "start_date", "end_date"})
		if err != nil {
			return nil, fmt.Errorf("%w: education entry: %v", ErrUnparsableResponse, err)
		}
		result.Education = append(result.Education, models.EducationEntry{
			Degree:    fields[0],
			School:    fields[1],
			Location:  fields[2],
			StartDate: fields[3],
			EndDate:   fields[4],
		})
	}

	for _, entry := range raw.Experience {
		fields, err := decodeTuple(entry, 5, []string{"company", "title", "location", "start_date", "end_date"})
		if err != nil {
			return nil, fmt.Errorf("%w: experience entry: %v", ErrUnparsableResponse, err)
		}
		result.Experience = append(result.Experience, models.ExperienceEntry{
			Company:   fields[0],
			Title:     fields[1],
			Location:  fields[2],
			StartDate: fields[3],
			EndDate:   fields[4],
		})
	}

	for _, entry := range raw.Projects {
		fields, err := decodeTuple(entry, 4, []string{"name", "description", "start_date", "end_date"})
		if err != nil {
			return nil, fmt.Errorf("%w: project entry: %v", ErrUnparsableResponse, err)
		}
		result.Projects = append(result.Projects, models.ProjectEntry{
			Name:        fields[0],
			Description: fields[1],
			StartDate:   fields[2],
			EndDate:     fields[3],
		})
	}

	for _, skill := range raw.Skills {
		result.Skills = append(result.Skills, stringify(skill))
	}
	for _, lang := range raw.Languages {
		result.Languages = append(result.Languages, stringify(lang))
	}

	return result, nil
}

// stripFences removes a leading code-fence marker with optional language tag
// and a trailing fence. Applying it to unfenced text is a no-op.
func stripFences(text string) string {
	clean := strings.TrimSpace(text)

	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
		// Drop a language tag like "json" up to the first newline.
		if idx := strings.IndexByte(clean, '\n'); idx >= 0 {
			firstLine := strings.TrimSpace(clean[:idx])
			if len(firstLine) <= 12 && !strings.ContainsAny(firstLine, "{}[]") {
				clean = clean[idx+1:]
			}
		}
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")

	return strings.TrimSpace(clean)
}

// extractObject returns the text between the first '{' and the last '}'.
func extractObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(text, '}')
	if end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// tuplesToArrays rewrites tuple-literal delimiters into JSON array
// delimiters, leaving parentheses inside string values untouched.
func tuplesToArrays(text string) string {
	out := []byte(text)
	inString := false
	escaped := false

	for i := 0; i < len(out); i++ {
		c := out[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		case '(':
			if !inString {
				out[i] = '['
			}
		case ')':
			if !inString {
				out[i] = ']'
			}
		}
	}

	return string(out)
}

// decodeTuple reads one list element as either a positional array or an
// object with the given field names, and returns exactly arity values,
// padding short tuples with empty strings.
func decodeTuple(raw json.RawMessage, arity int, keys []string) ([]string, error) {
	trimmed := strings.TrimSpace(string(raw))

	fields := make([]string, arity)

	if strings.HasPrefix(trimmed, "{") {
		var obj map[string]interface{}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, err
		}
		for i, key := range keys {
			if v, ok := obj[key]; ok {
				fields[i] = stringify(v)
			}
		}
		return fields, nil
	}

	var values []interface{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	for i := 0; i < arity && i < len(values); i++ {
		fields[i] = stringify(values[i])
	}
	return fields, nil
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
