package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"": "/",
		"/metrics":                       "/metrics",
		"/api/v1/counter/remCash":        "/api/v1/counter/remCash",
		"/api/v1/counter/getInitial?date=2026-08-31":           "/api/v1/counter/getInitial",
		"/api/v1/stock/updateStock/01ABC/01DEF":                "/api/v1/stock/updateStock/:stockId/:distId",
		"/api/v1/stock/deleteDist/01ABC/01DEF":                 "/api/v1/stock/deleteDist/:stockId/:distId",
		"/api/v1/stock/getRemAmount/01ABC":                     "/api/v1/stock/getRemAmount/:stockEntryId",
		"/api/v1/speech/deleteHand/01ABC":                      "/api/v1/speech/deleteHand/:id",
		"/api/v1/dist/searchDist?query=agency":                 "/api/v1/dist/searchDist",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
