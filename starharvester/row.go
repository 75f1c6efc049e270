package starharvester

import (
	"strconv"
	"strings"
)

var baseColumns = []string{
	"oai_id", "setSpecs_raw", "set_etab", "set_ddc", "is_diffusable",
	"title", "subject", "description_fr", "description_en",
	"language", "identifier", "creator", "date", "year", "rights",
}

// Columns returns the CSV header for rows carrying maxContributors contributor columns.
func Columns(maxContributors int) []string {
	columns := make([]string, 0, len(baseColumns)+maxContributors)
	columns = append(columns, baseColumns...)
	for i := 1; i <= maxContributors; i++ {
		columns = append(columns, "contributor_"+strconv.Itoa(i))
	}
	return columns
}

// Row is the flattened view of one harvested record.
type Row struct {
	OaiID     string
	Datestamp string
	SetSpecs  []string
	SetEtab   string
	SetDDC    string

	IsDiffusable bool

	Title         string
	Subject       string
	DescriptionFr string
	DescriptionEn string
	Language      string
	Identifier    string
	Creator       string
	Date          string
	Year          string
	Rights        string

	// Contributors always has one entry per contributor column, empty when absent.
	Contributors []string
}

// SetSpecsRaw is the setSpecs cell: every set joined in document order.
func (r *Row) SetSpecsRaw() string {
	return strings.Join(r.SetSpecs, valueSep)
}

// Values returns the cells in Columns order.
func (r *Row) Values() []string {
	diffusable := "0"
	if r.IsDiffusable {
		diffusable = "1"
	}
	values := []string{
		r.OaiID, r.SetSpecsRaw(), r.SetEtab, r.SetDDC, diffusable,
		r.Title, r.Subject, r.DescriptionFr, r.DescriptionEn,
		r.Language, r.Identifier, r.Creator, r.Date, r.Year, r.Rights,
	}
	return append(values, r.Contributors...)
}
