package errors

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

const exceptionXML string = `<exc:exception xmlns:exc="http://genologics.com/ri/exception">
<message>Sample not found</message>
<suggested-actions>Check the LIMS id.</suggested-actions>
</exc:exception>`

func TestExceptionReportCarriesMessageAndActions(t *testing.T) {
	is := is.New(t)

	err := NewErrorFromExceptionReport(400, []byte(exceptionXML))

	is.Equal(err.Error(), "400: Sample not found Check the LIMS id.")
	is.True(errors.Is(err, ErrBadResponse))
}

func TestExceptionReportWithNotFoundStatus(t *testing.T) {
	is := is.New(t)

	err := NewErrorFromExceptionReport(404, []byte(exceptionXML))

	is.True(errors.Is(err, ErrNotFound))
}

func TestUnparseableBodyFallsBackToStatusCode(t *testing.T) {
	is := is.New(t)

	err := NewErrorFromExceptionReport(502, []byte("upstream said no"))

	is.Equal(err.Error(), "request failed with status code 502")
	is.True(errors.Is(err, ErrBadResponse))
}

func TestBodyWithoutMessageFallsBackToStatusCode(t *testing.T) {
	is := is.New(t)

	err := NewErrorFromExceptionReport(500, []byte("<error><code>E42</code></error>"))

	is.Equal(err.Error(), "request failed with status code 500")
}
