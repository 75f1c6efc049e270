package starharvester

import (
	"net/url"
	"reflect"

	"github.com/gegedenice/star-harvest/utils"
)

// Parameters : Stores the list of parameters to be sent to the OAI-PMH endpoint
type Parameters struct {
	Verb            string `param:"verb"`
	MetadataPrefix  string `param:"metadataPrefix"`
	Set             string `param:"set"`
	ResumptionToken string `param:"resumptionToken"`
}

// InitializeParameters builds the first ListRecords request. An empty set
// harvests the whole repository.
func InitializeParameters(metadataPrefix, set string) *Parameters {
	if metadataPrefix == utils.EmptyString {
		metadataPrefix = utils.MetaFormatFor["OAI"]
	}
	return &Parameters{
		Verb:           utils.VerbFor["LIST_RECORDS"],
		MetadataPrefix: metadataPrefix,
		Set:            set,
	}
}

// Resume returns the request for the page following token. Only the verb is
// carried over: OAI-PMH forbids other arguments next to a resumptionToken.
func (params *Parameters) Resume(token string) *Parameters {
	return &Parameters{
		Verb:            params.Verb,
		ResumptionToken: token,
	}
}

func (params *Parameters) isResumptionTokenPresent() bool {
	return len(params.ResumptionToken) > 0
}

// Values encodes the non-empty parameters as a query string.
func (params *Parameters) Values() url.Values {
	q := url.Values{}
	paramsReflect := reflect.ValueOf(params).Elem()
	resumptionTokenPresent := params.isResumptionTokenPresent()
	for i := 0; i < paramsReflect.NumField(); i++ {
		name := paramsReflect.Type().Field(i).Tag.Get("param")
		value := paramsReflect.Field(i).String()
		if resumptionTokenPresent && name != "verb" && name != "resumptionToken" {
			continue
		}
		if len(value) != 0 {
			q.Set(name, value)
		}
	}
	return q
}
