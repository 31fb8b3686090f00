package policy

import (
	"mime"
	"strings"
	"webapp/internal/core/domain"
)

// UploadFieldName is the only multipart field accepted on upload
const UploadFieldName = "file"

// Envelope is the parsed shape of an inbound request
type Envelope struct {
	Method      string
	HeaderNames []string
	// ContentType is the raw Content-Type header, empty when absent
	ContentType string
	HasBody     bool
	RawQuery    string
	// FormFields lists non-file multipart field names (upload only)
	FormFields []string
	Files      []FilePart
	// Malformed is set when a body was present but could not be parsed
	Malformed bool
}

// FilePart describes one file attached to a multipart body
type FilePart struct {
	FieldName   string
	FileName    string
	ContentType string
	Size        int64
}

// Outcome is the class of a validation decision
type Outcome int

const (
	Accept Outcome = iota
	InvalidRequest
	MethodNotAllowed
)

func (o Outcome) String() string {
	switch o {
	case Accept:
		return "accept"
	case InvalidRequest:
		return "invalid_request"
	case MethodNotAllowed:
		return "method_not_allowed"
	default:
		return "unknown"
	}
}

// Reason names the rule that rejected a request
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonMethod      Reason = "method"
	ReasonHeader      Reason = "header"
	ReasonBody        Reason = "body"
	ReasonContentType Reason = "content_type"
	ReasonQuery       Reason = "query"
	ReasonFile        Reason = "file"
)

// Decision is the result of validating an envelope
type Decision struct {
	Outcome Outcome
	Reason  Reason
	// Detail carries values useful in logs, such as offending header names
	Detail []string
}

// Accepted reports whether the request may proceed
func (d Decision) Accepted() bool {
	return d.Outcome == Accept
}

func reject(outcome Outcome, reason Reason, detail ...string) Decision {
	return Decision{Outcome: outcome, Reason: reason, Detail: detail}
}

// Validator decides whether a request envelope may reach domain logic
type Validator struct {
	headers *HeaderPolicy
}

// NewValidator creates a Validator enforcing headers
func NewValidator(headers *HeaderPolicy) *Validator {
	if headers == nil {
		headers = CurrentHeaderPolicy
	}
	return &Validator{headers: headers}
}

// Validate applies the rules in order: method, headers, body, content type,
// query, file attachment. The first failing rule decides.
func (v *Validator) Validate(kind RouteKind, env Envelope) Decision {
	if decision := v.Precheck(kind, env); !decision.Accepted() {
		return decision
	}

	if kind.IsUpload() {
		return v.validateUpload(env)
	}

	if env.HasBody || env.Malformed || len(env.FormFields) > 0 || len(env.Files) > 0 {
		return reject(InvalidRequest, ReasonBody)
	}
	if env.ContentType != "" {
		return reject(InvalidRequest, ReasonContentType, env.ContentType)
	}
	if env.RawQuery != "" {
		return reject(InvalidRequest, ReasonQuery)
	}

	return Decision{Outcome: Accept}
}

// Precheck applies only the method and header rules. They need nothing from
// the body, so a body is worth reading only once Precheck accepts.
func (v *Validator) Precheck(kind RouteKind, env Envelope) Decision {
	if !kind.AllowsMethod(env.Method) {
		return reject(MethodNotAllowed, ReasonMethod, env.Method)
	}

	if invalid := v.headers.Disallowed(env.HeaderNames, kind); len(invalid) > 0 {
		return reject(InvalidRequest, ReasonHeader, invalid...)
	}

	return Decision{Outcome: Accept}
}

func (v *Validator) validateUpload(env Envelope) Decision {
	if env.Malformed || len(env.FormFields) > 0 {
		return reject(InvalidRequest, ReasonBody, env.FormFields...)
	}

	if !IsMultipartForm(env.ContentType) {
		return reject(InvalidRequest, ReasonContentType, env.ContentType)
	}

	if len(env.Files) != 1 {
		return reject(InvalidRequest, ReasonFile)
	}
	part := env.Files[0]
	if part.FieldName != UploadFieldName {
		return reject(InvalidRequest, ReasonFile, part.FieldName)
	}
	if !domain.IsAllowedImageMimeType(MediaType(part.ContentType)) {
		return reject(InvalidRequest, ReasonFile, part.ContentType)
	}

	return Decision{Outcome: Accept}
}

// IsMultipartForm reports whether contentType is multipart/form-data
func IsMultipartForm(contentType string) bool {
	return MediaType(contentType) == "multipart/form-data"
}

// MediaType returns the lower-cased media type of a Content-Type value,
// without parameters, or "" when it cannot be parsed
func MediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mediaType)
}
