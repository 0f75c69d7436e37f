package report

import (
	"strings"
	"time"
)

// Sentinel token values produced by the collector when a response yielded
// no usable token. These are part of the collector's data contract and are
// filtered out before any statistical processing.
const (
	TokenNotFound      = "Not found"
	TokenRequestFailed = "Request failed"
	ParseErrorPrefix   = "Parse Error: "
)

// TokenCapture records one token captured from one HTTP response.
// Token may be a sentinel value (see above) when the collector failed to
// obtain a token for that response.
type TokenCapture struct {
	Token            string    `json:"token"`
	ExtractedFrom    string    `json:"extractedFrom,omitempty"`
	RequestSent      time.Time `json:"requestSent"`
	ResponseReceived time.Time `json:"responseReceived"`
}

// IsFailureToken reports whether token is one of the collector's failure
// sentinels rather than a captured value.
func IsFailureToken(token string) bool {
	return token == TokenNotFound ||
		token == TokenRequestFailed ||
		strings.HasPrefix(token, ParseErrorPrefix)
}

// IsFailure reports whether this capture holds a failure sentinel.
func (c TokenCapture) IsFailure() bool {
	return IsFailureToken(c.Token)
}

// FailureCounts tallies the failure sentinels in a capture list.
type FailureCounts struct {
	NotFound      int `json:"notFound"`
	RequestFailed int `json:"requestFailed"`
	ParseErrors   int `json:"parseErrors"`
}

// Total returns the number of failed captures.
func (f FailureCounts) Total() int {
	return f.NotFound + f.RequestFailed + f.ParseErrors
}

// CountFailures tallies failure sentinels across the capture list.
func CountFailures(captures []TokenCapture) FailureCounts {
	var counts FailureCounts
	for _, c := range captures {
		switch {
		case c.Token == TokenNotFound:
			counts.NotFound++
		case c.Token == TokenRequestFailed:
			counts.RequestFailed++
		case strings.HasPrefix(c.Token, ParseErrorPrefix):
			counts.ParseErrors++
		}
	}
	return counts
}

// ValidTokens returns the non-sentinel token values in capture order.
func ValidTokens(captures []TokenCapture) []string {
	tokens := make([]string, 0, len(captures))
	for _, c := range captures {
		if !c.IsFailure() {
			tokens = append(tokens, c.Token)
		}
	}
	return tokens
}
