package starharvester

import "fmt"

// TransportError reports a failed request: network failure or a non-2xx
// response from the endpoint.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request %s: HTTP status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports a response body that is not a well-formed OAI-PMH document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed OAI-PMH response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ProtocolError is an OAI-PMH <error> element returned by the endpoint.
type ProtocolError struct {
	Code    string
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("OAI-PMH error (%s): %s", e.Code, e.Message)
}
