// Package decode infers the byte representation underlying a printable
// token. Statistical conclusions about the token generator are only
// meaningful on its native output bytes; running bit-level tests on the
// printable encoding (e.g. base64 text) would measure the encoding's bit
// patterns instead. Decoding is best-effort and never fails: a token that
// matches no known encoding is analyzed as its raw UTF-8 bytes.
package decode

import (
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"strings"
)

// Encoding identifies the byte encoding inferred for a token.
type Encoding string

const (
	EncodingHex       Encoding = "hex"
	EncodingBase64    Encoding = "base64"
	EncodingBase64URL Encoding = "base64url"
	EncodingRaw       Encoding = "raw"
)

// Decoded is a token's inferred byte representation.
type Decoded struct {
	Bytes    []byte
	Encoding Encoding
}

var hexRE = regexp.MustCompile(`^[0-9a-fA-F]+$`)

// decodeBase64Segment decodes one base64 chunk, tolerating both the
// standard and url-safe alphabets and optional padding. urlSafe reports
// whether the url-safe alphabet was needed.
func decodeBase64Segment(s string) (decoded []byte, urlSafe bool, ok bool) {
	urlSafe = strings.ContainsAny(s, "-_")
	trimmed := strings.TrimRight(s, "=")

	enc := base64.RawStdEncoding
	if urlSafe {
		enc = base64.RawURLEncoding
	}

	b, err := enc.DecodeString(trimmed)
	if err != nil {
		return nil, false, false
	}
	return b, urlSafe, true
}

// Decode infers the byte encoding of token. Attempts are ordered; the
// first one that succeeds wins:
//
//  1. dot-separated tokens (JWT-like): base64/base64url decode each
//     segment independently and concatenate,
//  2. even-length hex strings,
//  3. whole-token base64/base64url,
//  4. raw UTF-8 bytes (always succeeds).
func Decode(token string) Decoded {
	if strings.Contains(token, ".") {
		if d, ok := decodeSegmented(token); ok {
			return d
		}
	}

	if len(token) > 0 && len(token)%2 == 0 && hexRE.MatchString(token) {
		if b, err := hex.DecodeString(token); err == nil {
			return Decoded{Bytes: b, Encoding: EncodingHex}
		}
	}

	if len(token) > 0 {
		if b, urlSafe, ok := decodeBase64Segment(token); ok {
			encoding := EncodingBase64
			if urlSafe {
				encoding = EncodingBase64URL
			}
			return Decoded{Bytes: b, Encoding: encoding}
		}
	}

	return Decoded{Bytes: []byte(token), Encoding: EncodingRaw}
}

// decodeSegmented handles dot-delimited tokens where every segment is
// independently base64-encoded, as in JWTs.
func decodeSegmented(token string) (Decoded, bool) {
	segments := strings.Split(token, ".")
	if len(segments) < 2 {
		return Decoded{}, false
	}

	var all []byte
	anyURLSafe := false
	for _, seg := range segments {
		if seg == "" {
			return Decoded{}, false
		}
		b, urlSafe, ok := decodeBase64Segment(seg)
		if !ok {
			return Decoded{}, false
		}
		anyURLSafe = anyURLSafe || urlSafe
		all = append(all, b...)
	}

	encoding := EncodingBase64
	if anyURLSafe {
		encoding = EncodingBase64URL
	}
	return Decoded{Bytes: all, Encoding: encoding}, true
}
