package http

import (
	"strconv"
	"strings"
)

// acceptsGzip reports whether an Accept-Encoding value allows gzip.
// An explicit q=0 for gzip (or for * without a gzip entry) refuses it.
func acceptsGzip(header string) bool {
	wildcard := false
	for _, part := range strings.Split(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		coding = strings.ToLower(strings.TrimSpace(coding))
		if coding != "gzip" && coding != "*" {
			continue
		}
		ok := qualityAllows(params)
		if coding == "gzip" {
			return ok
		}
		wildcard = ok
	}
	return wildcard
}

func qualityAllows(params string) bool {
	for _, p := range strings.Split(params, ";") {
		name, value, found := strings.Cut(strings.TrimSpace(p), "=")
		if !found || !strings.EqualFold(strings.TrimSpace(name), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return err == nil && q > 0
	}
	return true
}
