package xmlschemas

import "encoding/xml"

const StatusDeleted = "deleted"

type ListRecords struct {
	XMLName         xml.Name        `xml:"ListRecords"`
	Records         []Record        `xml:"record"`
	ResumptionToken ResumptionToken `xml:"resumptionToken"`
}

type Record struct {
	XMLName  xml.Name  `xml:"record"`
	Header   Header    `xml:"header"`
	Metadata *Metadata `xml:"metadata"`
}

type Header struct {
	XMLName    xml.Name `xml:"header"`
	Status     string   `xml:"status,attr"`
	Identifier string   `xml:"identifier"`
	Datestamp  string   `xml:"datestamp"`
	SetSpecs   []string `xml:"setSpec"`
}

func (header *Header) Deleted() bool {
	return header.Status == StatusDeleted
}

type Metadata struct {
	XMLName xml.Name    `xml:"metadata"`
	DC      *DublinCore `xml:"http://www.openarchives.org/OAI/2.0/oai_dc/ dc"`
}

// DublinCore holds the oai_dc fields consumed by the extractor. Other dc
// elements (type, format, publisher...) are ignored.
type DublinCore struct {
	Titles       []string     `xml:"http://purl.org/dc/elements/1.1/ title"`
	Subjects     []string     `xml:"http://purl.org/dc/elements/1.1/ subject"`
	Descriptions []LangString `xml:"http://purl.org/dc/elements/1.1/ description"`
	Languages    []string     `xml:"http://purl.org/dc/elements/1.1/ language"`
	Identifiers  []string     `xml:"http://purl.org/dc/elements/1.1/ identifier"`
	Creators     []string     `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Dates        []string     `xml:"http://purl.org/dc/elements/1.1/ date"`
	Rights       []string     `xml:"http://purl.org/dc/elements/1.1/ rights"`
	Contributors []string     `xml:"http://purl.org/dc/elements/1.1/ contributor"`
}

// LangString is a text value with an optional xml:lang attribute.
type LangString struct {
	Lang  string `xml:"http://www.w3.org/XML/1998/namespace lang,attr"`
	Value string `xml:",chardata"`
}

// Payload returns the oai_dc block of the record, or nil when the record
// carries no metadata (typically deleted records).
func (record *Record) Payload() *DublinCore {
	if record.Metadata == nil {
		return nil
	}
	return record.Metadata.DC
}
