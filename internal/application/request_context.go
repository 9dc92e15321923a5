package application

import (
	"errors"

	"factskill/internal/ports/output"
)

var errLocalizerNotBound = errors.New("localizer not bound to request")

// RequestContext lives for one request only. The pipeline binds the
// Localizer before dispatch; handlers record what they produced.
type RequestContext struct {
	Localizer   output.Localizer
	HandlerName string
	Fact        string
}

// T renders key with the request's Localizer.
func (rc *RequestContext) T(key string, args ...any) (string, error) {
	if rc == nil || rc.Localizer == nil {
		return "", errLocalizerNotBound
	}
	return rc.Localizer.T(key, args...)
}
