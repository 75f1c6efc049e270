package starharvester

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const envelopeHead = `<?xml version="1.0" encoding="UTF-8"?>
<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
<responseDate>2026-01-05T10:00:00Z</responseDate>
<request verb="ListRecords">https://staroai.theses.fr/OAIHandler</request>`

// listRecordsPage builds a ListRecords response. An empty token still emits
// an empty resumptionToken element, as STAR does on the last page.
func listRecordsPage(token string, records ...string) []byte {
	var b strings.Builder
	b.WriteString(envelopeHead)
	b.WriteString("<ListRecords>")
	for _, r := range records {
		b.WriteString(r)
	}
	fmt.Fprintf(&b, `<resumptionToken cursor="0" completeListSize="250">%s</resumptionToken>`, token)
	b.WriteString("</ListRecords></OAI-PMH>")
	return []byte(b.String())
}

func oaiErrorPage(code, message string) []byte {
	return []byte(envelopeHead + fmt.Sprintf(`<error code="%s">%s</error></OAI-PMH>`, code, message))
}

func headerXML(id, status string, sets ...string) string {
	var b strings.Builder
	if status != "" {
		fmt.Fprintf(&b, `<header status="%s">`, status)
	} else {
		b.WriteString("<header>")
	}
	fmt.Fprintf(&b, "<identifier>%s</identifier><datestamp>2025-11-02</datestamp>", id)
	for _, s := range sets {
		fmt.Fprintf(&b, "<setSpec>%s</setSpec>", s)
	}
	b.WriteString("</header>")
	return b.String()
}

// recordXML builds a record whose oai_dc payload contains the given raw dc elements.
func recordXML(id string, sets []string, dc ...string) string {
	return "<record>" + headerXML(id, "", sets...) +
		`<metadata><oai_dc:dc xmlns:oai_dc="http://www.openarchives.org/OAI/2.0/oai_dc/" xmlns:dc="http://purl.org/dc/elements/1.1/">` +
		strings.Join(dc, "") +
		"</oai_dc:dc></metadata></record>"
}

func deletedRecordXML(id string, sets ...string) string {
	return "<record>" + headerXML(id, "deleted", sets...) + "</record>"
}

func openAccessRecordXML(id, title string) string {
	return recordXML(id, []string{"diffusable"}, "<dc:title>"+title+"</dc:title>", "<dc:rights>Open Access</dc:rights>")
}

func closedRecordXML(id string) string {
	return recordXML(id, []string{"diffusable"}, "<dc:title>Closed</dc:title>", "<dc:rights>Accès restreint</dc:rights>")
}

// fakeFetcher serves canned pages in order and records every query.
type fakeFetcher struct {
	pages   [][]byte
	errs    []error
	queries []url.Values
}

func (f *fakeFetcher) Fetch(_ context.Context, query url.Values) ([]byte, error) {
	i := len(f.queries)
	f.queries = append(f.queries, query)
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i >= len(f.pages) {
		return nil, fmt.Errorf("unexpected fetch #%d", i+1)
	}
	return f.pages[i], nil
}

type memoryRows struct {
	rows    []Row
	failAt  int
	failErr error
}

func (m *memoryRows) WriteRow(_ context.Context, row *Row) error {
	if m.failErr != nil && len(m.rows) == m.failAt {
		return m.failErr
	}
	m.rows = append(m.rows, *row)
	return nil
}

type memoryArchive struct {
	pages  []int
	tokens []string
	err    error
}

func (m *memoryArchive) ArchivePage(_ context.Context, page int, token string, _ []byte) error {
	m.pages = append(m.pages, page)
	m.tokens = append(m.tokens, token)
	return m.err
}
