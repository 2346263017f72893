package auth

import "strings"

// bearerPrefix is the literal, case-sensitive scheme prefix expected in the
// Authorization header. Exactly one space separates scheme and token.
const bearerPrefix = "Bearer "

// ExtractBearerToken parses the raw Authorization header value and returns
// the token portion. This is a pure parsing step with no cryptographic work:
// a missing header, a different scheme, different casing, or an empty token
// all return ErrMissingToken.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}

	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || token == "" {
		return "", ErrMissingToken
	}

	return token, nil
}
