package xmlschemas

import (
	"encoding/xml"
	"fmt"
	"strings"
)

type ResumptionToken struct {
	XMLName      xml.Name `xml:"resumptionToken"`
	Value        string   `xml:",chardata"`
	Cursor       int      `xml:"cursor,attr"`
	CompleteSize int      `xml:"completeListSize,attr"`
}

// Token returns the opaque continuation value. Empty means the list is exhausted.
func (resumptionToken *ResumptionToken) Token() string {
	return strings.TrimSpace(resumptionToken.Value)
}

func (resumptionToken *ResumptionToken) String() string {
	return fmt.Sprintf("token=%q cursor=%d completeListSize=%d",
		resumptionToken.Token(), resumptionToken.Cursor, resumptionToken.CompleteSize)
}
