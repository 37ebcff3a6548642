package transcribe

import (
	"errors"

	"scribe/internal/device"
)

// Outcome is the result of one Driver.Transcribe call.
type Outcome struct {
	OutputPath string
	Device     device.Device
	Model      string
	Chunks     int
	Err        error
}

// OK reports whether the transcript was written.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Kind returns the failure classification, or 0 on success.
func (o Outcome) Kind() Kind {
	var te *Error
	if errors.As(o.Err, &te) {
		return te.Kind
	}
	if o.Err != nil {
		return KindInference
	}
	return 0
}

// Message renders the outcome the way the command line prints it: the output
// path on success, otherwise a line starting with ErrorMarker.
func (o Outcome) Message() string {
	if o.Err == nil {
		return o.OutputPath
	}
	var te *Error
	if errors.As(o.Err, &te) {
		return te.Message()
	}
	return unexpectedMessage(o.Err)
}
