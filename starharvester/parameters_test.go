package starharvester

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParameters_FirstRequest(t *testing.T) {
	params := InitializeParameters("oai_dc", "diffusable")
	require.Equal(t, url.Values{
		"verb":           {"ListRecords"},
		"metadataPrefix": {"oai_dc"},
		"set":            {"diffusable"},
	}, params.Values())
}

func TestParameters_NoSet(t *testing.T) {
	params := InitializeParameters("", "")
	require.Equal(t, url.Values{
		"verb":           {"ListRecords"},
		"metadataPrefix": {"oai_dc"},
	}, params.Values())
}

func TestParameters_ResumeCarriesOnlyToken(t *testing.T) {
	params := InitializeParameters("oai_dc", "ddc:620").Resume("abc|100")
	require.Equal(t, url.Values{
		"verb":            {"ListRecords"},
		"resumptionToken": {"abc|100"},
	}, params.Values())
}

func TestParameters_TokenHidesOtherArguments(t *testing.T) {
	params := &Parameters{Verb: "ListRecords", MetadataPrefix: "oai_dc", Set: "x", ResumptionToken: "t"}
	values := params.Values()
	require.Equal(t, "t", values.Get("resumptionToken"))
	require.Empty(t, values.Get("metadataPrefix"))
	require.Empty(t, values.Get("set"))
}
