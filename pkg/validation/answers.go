package validation

import "github.com/goliatone/go-regform/pkg/model"

// Answer is a validated (question, answer) pair with credentials excluded.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Answers strips the credential fields from a valid result and returns the
// remaining pairs in schema order. Invalid results yield nil.
func Answers(schema model.Schema, result Result) []Answer {
	if !result.Valid() {
		return nil
	}
	var out []Answer
	for _, field := range schema.Fields {
		if field.Credential {
			continue
		}
		out = append(out, Answer{
			Question: field.Name,
			Answer:   result.Values[field.Name],
		})
	}
	return out
}
