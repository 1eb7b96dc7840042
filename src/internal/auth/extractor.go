package auth

import (
	"regexp"
	"strings"
)

// Field purposes accepted by GuessFieldName.
const (
	PurposeUsername = "username"
	PurposePassword = "password"
)

// FieldExtractor recovers replayable form state from raw login-page HTML.
// The target page's markup is not contractually stable, so every method
// degrades to a conventional default instead of failing.
type FieldExtractor interface {
	HiddenFields(html string) map[string]string
	FormAction(html, fallback string) string
	GuessFieldName(html, purpose string) string
}

type regexExtractor struct{}

func NewFieldExtractor() FieldExtractor {
	return &regexExtractor{}
}

var (
	inputTagPattern   = regexp.MustCompile(`(?is)<input\b[^>]*>`)
	formTagPattern    = regexp.MustCompile(`(?is)<form\b[^>]*>`)
	typeAttrPattern   = regexp.MustCompile(`(?i)\btype\s*=\s*["']?([^"'\s>]+)`)
	nameAttrPattern   = regexp.MustCompile(`(?i)\bname\s*=\s*["']?([^"'\s>]+)`)
	valueAttrPattern  = regexp.MustCompile(`(?i)\bvalue\s*=\s*["']([^"']*)["']`)
	actionAttrPattern = regexp.MustCompile(`(?i)\baction\s*=\s*["']([^"']+)["']`)
)

func (e *regexExtractor) HiddenFields(html string) map[string]string {
	fields := make(map[string]string)

	for _, tag := range inputTagPattern.FindAllString(html, -1) {
		if !strings.EqualFold(attr(typeAttrPattern, tag), "hidden") {
			continue
		}

		name := attr(nameAttrPattern, tag)
		if name == "" {
			continue
		}

		fields[name] = attr(valueAttrPattern, tag)
	}

	return fields
}

func (e *regexExtractor) FormAction(html, fallback string) string {
	form := formTagPattern.FindString(html)
	if form == "" {
		return fallback
	}

	action := attr(actionAttrPattern, form)
	if action == "" {
		return fallback
	}

	return action
}

func (e *regexExtractor) GuessFieldName(html, purpose string) string {
	switch purpose {
	case PurposePassword:
		for _, tag := range inputTagPattern.FindAllString(html, -1) {
			if strings.EqualFold(attr(typeAttrPattern, tag), "password") {
				if name := attr(nameAttrPattern, tag); name != "" {
					return name
				}
			}
		}

		if name := nameContaining(html, "pass"); name != "" {
			return name
		}

		return "password"
	default:
		for _, hint := range []string{"user", "login", "email"} {
			if name := nameContaining(html, hint); name != "" {
				return name
			}
		}

		return "username"
	}
}

// nameContaining returns the name of the first non-hidden input whose name
// contains the given hint, case-insensitively.
func nameContaining(html, hint string) string {
	for _, tag := range inputTagPattern.FindAllString(html, -1) {
		if strings.EqualFold(attr(typeAttrPattern, tag), "hidden") {
			continue
		}

		name := attr(nameAttrPattern, tag)
		if name != "" && strings.Contains(strings.ToLower(name), hint) {
			return name
		}
	}
	return ""
}

func attr(pattern *regexp.Regexp, tag string) string {
	match := pattern.FindStringSubmatch(tag)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}
