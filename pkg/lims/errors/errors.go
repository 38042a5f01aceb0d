package errors

import (
	"fmt"

	"github.com/beevik/etree"
)

var ErrNotFound = fmt.Errorf("not found")
var ErrUnresolvable = fmt.Errorf("entity is unresolvable")
var ErrMissingElement = fmt.Errorf("missing element")
var ErrMissingAttribute = fmt.Errorf("missing attribute")
var ErrTypeMismatch = fmt.Errorf("type mismatch")
var ErrUnsupportedType = fmt.Errorf("unsupported type")
var ErrUnknownField = fmt.Errorf("unknown field")
var ErrVersionMismatch = fmt.Errorf("version mismatch")
var ErrRequest = fmt.Errorf("request error")
var ErrBadResponse = fmt.Errorf("bad response")
var ErrInternal = fmt.Errorf("internal error")

type limsError struct {
	msg    string
	target error
}

func (e limsError) Error() string        { return e.msg }
func (e limsError) Is(target error) bool { return target == e.target }

func NewUnresolvableError(msg string) error {
	return &limsError{msg: msg, target: ErrUnresolvable}
}

func NewMissingElementError(tag string) error {
	return &limsError{
		msg:    fmt.Sprintf("no element %q to set", tag),
		target: ErrMissingElement,
	}
}

func NewMissingAttributeError(name string) error {
	return &limsError{
		msg:    fmt.Sprintf("no attribute %q on element", name),
		target: ErrMissingAttribute,
	}
}

func NewTypeMismatchError(msg string) error {
	return &limsError{msg: msg, target: ErrTypeMismatch}
}

func NewUnsupportedTypeError(msg string) error {
	return &limsError{msg: msg, target: ErrUnsupportedType}
}

func NewUnknownFieldError(name string) error {
	return &limsError{
		msg:    fmt.Sprintf("unknown user defined field %q", name),
		target: ErrUnknownField,
	}
}

func NewVersionMismatchError(version string) error {
	return &limsError{
		msg:    fmt.Sprintf("api version %q is not supported by the server", version),
		target: ErrVersionMismatch,
	}
}

func NewNotFoundError(msg string) error {
	return &limsError{msg: msg, target: ErrNotFound}
}

// NewErrorFromExceptionReport turns a non-2xx response body into an error.
// The LIMS reports failures as exception documents carrying a message and
// optional suggested actions; when the body does not parse as one, the
// error falls back to the bare status code.
func NewErrorFromExceptionReport(statusCode int, body []byte) error {
	doc := etree.NewDocument()

	err := doc.ReadFromBytes(body)
	if err != nil || doc.Root() == nil {
		return &limsError{
			msg:    fmt.Sprintf("request failed with status code %d", statusCode),
			target: ErrBadResponse,
		}
	}

	message := doc.Root().FindElement("message")
	if message == nil {
		return &limsError{
			msg:    fmt.Sprintf("request failed with status code %d", statusCode),
			target: ErrBadResponse,
		}
	}

	msg := fmt.Sprintf("%d: %s", statusCode, message.Text())

	if actions := doc.Root().FindElement("suggested-actions"); actions != nil {
		msg += " " + actions.Text()
	}

	target := ErrBadResponse
	if statusCode == 404 {
		target = ErrNotFound
	}

	return &limsError{msg: msg, target: target}
}
