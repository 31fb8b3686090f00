package policy

import "net/http"

// RouteKind is the logical request category that selects the validation rules
type RouteKind string

const (
	RouteHealthCheck RouteKind = "health_check"
	RouteUpload      RouteKind = "upload"
	RouteGetFile     RouteKind = "get_file"
	RouteDeleteFile  RouteKind = "delete_file"
)

var routeMethods = map[RouteKind]string{
	RouteHealthCheck: http.MethodGet,
	RouteUpload:      http.MethodPost,
	RouteGetFile:     http.MethodGet,
	RouteDeleteFile:  http.MethodDelete,
}

// AllowsMethod reports whether method may be used on the route kind.
// HEAD is never allowed.
func (k RouteKind) AllowsMethod(method string) bool {
	if method == http.MethodHead {
		return false
	}
	allowed, ok := routeMethods[k]
	return ok && allowed == method
}

// IsUpload reports whether the route carries a file payload
func (k RouteKind) IsUpload() bool {
	return k == RouteUpload
}
