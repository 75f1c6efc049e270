package xmlschemas

import "encoding/xml"

type RootTag struct {
	XMLName      xml.Name    `xml:"OAI-PMH"`
	ResponseDate string      `xml:"responseDate"`
	Error        *OAIError   `xml:"error"`
	ListRecords  ListRecords `xml:"ListRecords"`
}

type SetRoot struct {
	XMLName  xml.Name  `xml:"OAI-PMH"`
	Error    *OAIError `xml:"error"`
	ListSets ListSets  `xml:"ListSets"`
}

// OAIError is the protocol level <error> element, e.g. noRecordsMatch or badResumptionToken.
type OAIError struct {
	Code    string `xml:"code,attr"`
	Message string `xml:",chardata"`
}
