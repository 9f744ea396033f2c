package analyses

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/analysis.json
var analysisSchemaJSON string

var (
	// ErrUnparsable is returned by Normalize for anything that is not an analysis object.
	ErrUnparsable = errors.New("unparsable analysis response")

	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func analysisSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(analysisSchemaJSON))
	})
	return schema, schemaErr
}

// Normalize turns raw model output into a Record.
// A leading ```json or ``` fence and a trailing ``` fence are removed by position only.
// Unknown keys are ignored, missing keys stay zero, and scores are clamped to 0..100.
func Normalize(raw string) (Record, error) {
	body := stripFences(raw)
	if body == "" {
		return Record{}, fmt.Errorf("%w: empty response", ErrUnparsable)
	}

	s, err := analysisSchema()
	if err != nil {
		return Record{}, fmt.Errorf("load analysis schema: %w", err)
	}
	result, err := s.Validate(gojsonschema.NewStringLoader(body))
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return Record{}, fmt.Errorf("%w: %s", ErrUnparsable, strings.Join(msgs, "; "))
	}

	// encoding/json matches struct tags case-insensitively, so fields are
	// picked out of the raw object by their exact names.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}

	var rec Record
	scores := []struct {
		key string
		dst *int
	}{
		{"atsScore", &rec.ATSScore},
		{"impactScore", &rec.ImpactScore},
		{"brevityScore", &rec.BrevityScore},
		{"actionVerbScore", &rec.ActionVerbScore},
	}
	for _, f := range scores {
		raw, ok := fields[f.key]
		if !ok {
			continue
		}
		var v score
		if err := json.Unmarshal(raw, &v); err != nil {
			return Record{}, fmt.Errorf("%w: %s: %v", ErrUnparsable, f.key, err)
		}
		*f.dst = int(v)
	}

	texts := []struct {
		key string
		dst *string
	}{
		{"summary", &rec.Summary},
		{"strengths", &rec.Strengths},
		{"weaknesses", &rec.Weaknesses},
		{"suggestedImprovements", &rec.SuggestedImprovements},
		{"foundKeywords", &rec.FoundKeywords},
		{"missingKeywords", &rec.MissingKeywords},
	}
	for _, f := range texts {
		raw, ok := fields[f.key]
		if !ok {
			continue
		}
		var v text
		if err := json.Unmarshal(raw, &v); err != nil {
			return Record{}, fmt.Errorf("%w: %s: %v", ErrUnparsable, f.key, err)
		}
		*f.dst = string(v)
	}
	return rec, nil
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = s[len("```json"):]
	case strings.HasPrefix(s, "```"):
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// score accepts a JSON number or numeric string, rounded and clamped to 0..100.
type score int

func (s *score) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return err
		}
		f = parsed
	}
	*s = score(clampScore(f))
	return nil
}

func clampScore(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	f = math.Round(f)
	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return int(f)
}

// text accepts a string or a list of strings, joined one per line.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*t = text(str)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = text(strings.Join(list, "\n"))
	return nil
}
