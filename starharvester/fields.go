package starharvester

import (
	"strings"

	xmlschemas "github.com/gegedenice/star-harvest/XMLSchemas"
)

// texts trims every value and drops the empty ones.
func texts(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func joinTexts(values []string, sep string) string {
	return strings.Join(texts(values), sep)
}

// setTags is what the setSpecs of a record say about it.
type setTags struct {
	ddc        string
	etab       string
	diffusable bool
}

// classifySetSpecs scans sets in order. The last ddc:* set wins, the first
// colon-free set other than "diffusable" is taken as the institution code.
func classifySetSpecs(sets []string) setTags {
	var tags setTags
	for _, s := range sets {
		switch {
		case strings.HasPrefix(s, ddcPrefix):
			tags.ddc = s
		case s == diffusableSpec:
			tags.diffusable = true
		case !strings.Contains(s, ":") && tags.etab == "":
			tags.etab = s
		}
	}
	return tags
}

// hasOpenAccess reports whether one of the rights values reads "Open Access".
func hasOpenAccess(rights []string) bool {
	for _, r := range texts(rights) {
		if strings.ToLower(r) == openAccess {
			return true
		}
	}
	return false
}

// langTexts returns the non-empty values whose xml:lang is exactly lang.
// An empty lang selects the untagged values.
func langTexts(descriptions []xmlschemas.LangString, lang string) []string {
	var out []string
	for _, d := range descriptions {
		if d.Lang != lang {
			continue
		}
		if t := strings.TrimSpace(d.Value); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// splitDescriptions returns the French and English descriptions. Untagged
// descriptions stand in for French only when no French one exists.
func splitDescriptions(descriptions []xmlschemas.LangString) (fr, en string) {
	fr = strings.Join(langTexts(descriptions, langFrench), descriptionSep)
	en = strings.Join(langTexts(descriptions, langEnglish), descriptionSep)
	if fr == "" {
		fr = strings.Join(langTexts(descriptions, ""), descriptionSep)
	}
	return fr, en
}

// extractYear returns the first 18xx, 19xx or 20xx token of date.
func extractYear(date string) string {
	if date == "" {
		return ""
	}
	return yearPattern.FindString(date)
}

// fillSlots copies values into exactly n slots, dropping the overflow.
func fillSlots(values []string, n int) []string {
	slots := make([]string, n)
	copy(slots, values)
	return slots
}
