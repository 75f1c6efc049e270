package starharvester

import (
	"bytes"
	"encoding/xml"
	"strings"

	xmlschemas "github.com/gegedenice/star-harvest/XMLSchemas"
	"golang.org/x/net/html/charset"
)

// Page is one parsed ListRecords response.
type Page struct {
	Records []xmlschemas.Record
	// Token is the trimmed resumption token; empty on the last page.
	Token      string
	Resumption xmlschemas.ResumptionToken
}

// decode unmarshals an OAI-PMH response, honouring a non UTF-8 encoding
// declared in the XML prolog.
func decode(body []byte, v interface{}) error {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.CharsetReader = charset.NewReaderLabel
	return decoder.Decode(v)
}

// ParsePage decodes a ListRecords response. A noRecordsMatch error is an
// empty final page; any other OAI-PMH error is returned as *ProtocolError.
func ParsePage(body []byte) (*Page, error) {
	var rootTag xmlschemas.RootTag
	if err := decode(body, &rootTag); err != nil {
		return nil, &ParseError{Err: err}
	}

	if rootTag.Error != nil {
		if rootTag.Error.Code == noRecordsMatch {
			return &Page{}, nil
		}
		return nil, protocolError(rootTag.Error)
	}

	resumptionToken := rootTag.ListRecords.ResumptionToken
	return &Page{
		Records:    rootTag.ListRecords.Records,
		Token:      resumptionToken.Token(),
		Resumption: resumptionToken,
	}, nil
}

// parseSets decodes a ListSets response and returns the sets plus the next token.
func parseSets(body []byte) ([]xmlschemas.Set, string, error) {
	var setRoot xmlschemas.SetRoot
	if err := decode(body, &setRoot); err != nil {
		return nil, "", &ParseError{Err: err}
	}

	if setRoot.Error != nil {
		if setRoot.Error.Code == noSetHierarchy {
			return nil, "", nil
		}
		return nil, "", protocolError(setRoot.Error)
	}

	return setRoot.ListSets.Sets, setRoot.ListSets.ResumptionToken.Token(), nil
}

func protocolError(oaiError *xmlschemas.OAIError) *ProtocolError {
	return &ProtocolError{Code: oaiError.Code, Message: strings.TrimSpace(oaiError.Message)}
}
