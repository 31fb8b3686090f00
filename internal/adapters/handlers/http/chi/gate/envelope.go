package gate

import (
	"net/http"
	"sort"
	"webapp/internal/core/policy"
)

// BuildEnvelope reads the parts of r the validator rules look at. On the
// upload route a multipart body is parsed into r.MultipartForm, spilling to
// disk above maxMemory; the caller owns cleaning it up.
func BuildEnvelope(r *http.Request, kind policy.RouteKind, maxMemory int64) policy.Envelope {
	env := HeaderEnvelope(r)
	parseBody(r, kind, maxMemory, &env)
	return env
}

// HeaderEnvelope reads everything but the body
func HeaderEnvelope(r *http.Request) policy.Envelope {
	return policy.Envelope{
		Method:      r.Method,
		HeaderNames: headerNames(r),
		ContentType: r.Header.Get("Content-Type"),
		HasBody:     hasBody(r),
		RawQuery:    r.URL.RawQuery,
	}
}

func parseBody(r *http.Request, kind policy.RouteKind, maxMemory int64, env *policy.Envelope) {
	if !kind.IsUpload() || !policy.IsMultipartForm(env.ContentType) {
		return
	}

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		env.Malformed = true
		return
	}

	for name := range r.MultipartForm.Value {
		env.FormFields = append(env.FormFields, name)
	}
	sort.Strings(env.FormFields)

	for field, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			env.Files = append(env.Files, policy.FilePart{
				FieldName:   field,
				FileName:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
			})
		}
	}
	sort.Slice(env.Files, func(i, j int) bool { return env.Files[i].FieldName < env.Files[j].FieldName })
}

// headerNames lists the request header names. net/http moves Host out of
// the header map, so it is added back when present.
func headerNames(r *http.Request) []string {
	names := make([]string, 0, len(r.Header)+1)
	for name := range r.Header {
		names = append(names, name)
	}
	if r.Host != "" && r.Header.Get("Host") == "" {
		names = append(names, "Host")
	}
	sort.Strings(names)
	return names
}

// hasBody reports a declared or chunked body; ContentLength is -1 when unknown
func hasBody(r *http.Request) bool {
	return r.ContentLength != 0 || len(r.TransferEncoding) > 0
}
