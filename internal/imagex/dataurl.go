// Package imagex contains helpers for working with base64-encoded still
// images exchanged with the backend.
package imagex

import (
	"net/http"
	"strings"
)

const dataURLScheme = "data:"

// StripDataURL removes a "data:<mime>;base64," prefix from s, if present.
// The backend expects the bare base64 payload; browser-originated captures
// often carry the prefix.
func StripDataURL(s string) string {
	if !strings.HasPrefix(s, dataURLScheme) {
		return s
	}
	idx := strings.Index(s, ",")
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}

// DataURLMIME returns the MIME type declared by a data URL prefix,
// or "" when s carries no prefix.
func DataURLMIME(s string) string {
	if !strings.HasPrefix(s, dataURLScheme) {
		return ""
	}
	rest := s[len(dataURLScheme):]
	idx := strings.IndexAny(rest, ";,")
	if idx < 0 {
		return ""
	}
	return rest[:idx]
}

// DetectMIME sniffs the MIME type of raw image bytes.
func DetectMIME(data []byte) string {
	return http.DetectContentType(data)
}
