package starharvester

import (
	"strings"

	xmlschemas "github.com/gegedenice/star-harvest/XMLSchemas"
)

// Extract flattens record into a Row. The boolean is false when the record
// must not be written: deleted, without oai_dc payload, or not Open Access.
// Rejected rows still carry their header fields.
func Extract(record *xmlschemas.Record, maxContributors int) (Row, bool) {
	header := &record.Header
	sets := texts(header.SetSpecs)
	tags := classifySetSpecs(sets)

	row := Row{
		OaiID:        strings.TrimSpace(header.Identifier),
		Datestamp:    strings.TrimSpace(header.Datestamp),
		SetSpecs:     sets,
		SetEtab:      tags.etab,
		SetDDC:       tags.ddc,
		IsDiffusable: tags.diffusable,
		Contributors: make([]string, maxContributors),
	}

	dc := record.Payload()
	if header.Deleted() || dc == nil {
		return row, false
	}
	if !hasOpenAccess(dc.Rights) {
		return row, false
	}

	row.Rights = joinTexts(dc.Rights, valueSep)
	row.Title = joinTexts(dc.Titles, valueSep)
	row.Subject = joinTexts(dc.Subjects, valueSep)
	row.Language = joinTexts(dc.Languages, valueSep)
	row.Identifier = joinTexts(dc.Identifiers, valueSep)
	row.Creator = joinTexts(dc.Creators, valueSep)

	dates := texts(dc.Dates)
	row.Date = strings.Join(dates, valueSep)
	if len(dates) > 0 {
		row.Year = extractYear(dates[0])
	}

	row.DescriptionFr, row.DescriptionEn = splitDescriptions(dc.Descriptions)
	row.Contributors = fillSlots(texts(dc.Contributors), maxContributors)

	return row, true
}
