// Package report validates generated report content and lays it out as a
// printable document.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/storepulse/backend/internal/models"
)

var (
	ErrEmptyContent   = errors.New("report content is empty")
	ErrInvalidContent = errors.New("report content does not match schema")
)

var validate = validator.New()

// ParseContent treats raw as untrusted provider output. It accepts a bare
// JSON object or one wrapped in a markdown fence and rejects anything that
// does not satisfy the report schema.
func ParseContent(raw string) (*models.ReportContent, error) {
	body := extractJSON(raw)
	if body == "" {
		return nil, fmt.Errorf("%w: no json object found", ErrInvalidContent)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	var content models.ReportContent
	if err := dec.Decode(&content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if err := Validate(&content); err != nil {
		return nil, err
	}
	return &content, nil
}

// Validate checks content against the schema.
func Validate(content *models.ReportContent) error {
	if content == nil {
		return ErrEmptyContent
	}
	if err := validate.Struct(content); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace()+":"+fe.Tag())
			}
			return fmt.Errorf("%w: %s", ErrInvalidContent, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	return nil
}

func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if start := strings.Index(s, "```"); start >= 0 {
		rest := s[start+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			s = strings.TrimSpace(rest[:end])
			s = strings.TrimSpace(strings.TrimPrefix(s, "json"))
		}
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}
