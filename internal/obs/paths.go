package obs

import "strings"

// Routes that carry record identifiers in the path. Collapsing the ids keeps
// the path label cardinality bounded.
var idSuffixRoutes = map[string]string{
	"/api/v1/stock/updateStock/":  "/api/v1/stock/updateStock/:stockId/:distId",
	"/api/v1/stock/deleteDist/":   "/api/v1/stock/deleteDist/:stockId/:distId",
	"/api/v1/stock/getRemAmount/": "/api/v1/stock/getRemAmount/:stockEntryId",
	"/api/v1/speech/deleteHand/":  "/api/v1/speech/deleteHand/:id",
}

// CanonicalPath maps a request path to its metric label, replacing embedded
// record ids with placeholders. Query strings are stripped.
func CanonicalPath(path string) string {
	if path == "" {
		return "/"
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	for prefix, label := range idSuffixRoutes {
		if strings.HasPrefix(path, prefix) {
			return label
		}
	}
	return path
}
