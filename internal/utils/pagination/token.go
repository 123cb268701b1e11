package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// Tokens travel in query strings, so they use the URL-safe alphabet.
var tokenEncoding = base64.RawURLEncoding

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return tokenEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}

// EncodeKeysetToken encodes a (date, timestamp, id) keyset position. The id
// breaks ties between rows sharing both times.
func EncodeKeysetToken(date, at time.Time, id string) string {
	return EncodeMultiFieldToken(date.Format(timeFormat), at.Format(timeFormat), id)
}

// DecodeKeysetToken reverses EncodeKeysetToken.
func DecodeKeysetToken(token string) (time.Time, time.Time, string, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}
	if len(parts) != 3 {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (expected 3 fields, got %d)", len(parts))
	}
	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	at, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}
	return date, at, parts[2], nil
}
