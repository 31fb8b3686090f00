package policy

import "strings"

// HeaderPolicyVersion identifies the allow-list table currently enforced.
// v1 had no load-balancer headers, v2 added them without rejecting HEAD,
// v3 is v2 plus HEAD rejection on every route.
const HeaderPolicyVersion = "v3"

// HeaderPolicy is an allow-list of inbound header names per route kind
type HeaderPolicy struct {
	Version string
	base    map[string]struct{}
	upload  map[string]struct{}
}

// NewHeaderPolicy builds a policy from a base list, valid on every route,
// and an upload list, valid only on the upload route
func NewHeaderPolicy(version string, base, upload []string) *HeaderPolicy {
	return &HeaderPolicy{
		Version: version,
		base:    toSet(base),
		upload:  toSet(upload),
	}
}

// CurrentHeaderPolicy is the canonical allow-list
var CurrentHeaderPolicy = NewHeaderPolicy(HeaderPolicyVersion,
	[]string{
		"cache-control",
		"postman-token",
		"host",
		"user-agent",
		"accept",
		"accept-encoding",
		"connection",
		// load balancer
		"x-forwarded-for",
		"x-forwarded-proto",
		"x-forwarded-port",
		"x-amzn-trace-id",
		"x-forwarded-host",
		"x-amz-cf-id",
		"x-amzn-requestid",
	},
	[]string{
		"content-type",
		"content-length",
	},
)

// IsAllowed reports whether headerName may appear on a request of the given kind
func (p *HeaderPolicy) IsAllowed(headerName string, kind RouteKind) bool {
	name := strings.ToLower(strings.TrimSpace(headerName))
	if _, ok := p.base[name]; ok {
		return true
	}
	if kind.IsUpload() {
		_, ok := p.upload[name]
		return ok
	}
	return false
}

// Disallowed returns the header names that fail the policy, in input order
func (p *HeaderPolicy) Disallowed(headerNames []string, kind RouteKind) []string {
	var invalid []string
	for _, name := range headerNames {
		if !p.IsAllowed(name, kind) {
			invalid = append(invalid, name)
		}
	}
	return invalid
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[strings.ToLower(name)] = struct{}{}
	}
	return set
}
