package utils

// VerbFor : Verb Mapping
var VerbFor = map[string]string{"GET_RECORD": "GetRecord", "IDENTIFY": "Identify", "LIST_IDENTIFIERS": "ListIdentifiers",
	"LIST_METADATA_FORMATS": "ListMetadataFormats", "LIST_RECORDS": "ListRecords", "LIST_SETS": "ListSets"}

// MetaFormatFor : MetadataPrefix formats
var MetaFormatFor = map[string]string{"OAI": "oai_dc", "TEF": "tef", "MARC": "marcxml"}

const (
	// StarOaiBaseURL : OAI-PMH endpoint of the STAR theses registry (theses.fr)
	StarOaiBaseURL = "https://staroai.theses.fr/OAIHandler"
	EmptyString    = ""
)
