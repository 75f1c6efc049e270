package starharvester

import "regexp"

const (
	// valueSep joins multi-valued dc fields into one cell.
	valueSep = " | "
	// descriptionSep joins description paragraphs of the same language.
	descriptionSep = "\n\n"

	openAccess      = "open access"
	ddcPrefix       = "ddc:"
	diffusableSpec  = "diffusable"
	langFrench      = "fr"
	langEnglish     = "en"
	noRecordsMatch  = "noRecordsMatch"
	noSetHierarchy  = "noSetHierarchy"
	statusCodeFirst = 200
	statusCodeLast  = 299
)

var yearPattern = regexp.MustCompile(`\b(18|19|20)\d{2}\b`)
