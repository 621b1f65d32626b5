package domain

import (
	"encoding/json"
	"strings"
)

// MaxImages is the largest image list a product may carry.
const MaxImages = 5

// DecodeImageList normalizes the stored image_url column value into an
// ordered URL list. The column historically held either a JSON string
// array (current format) or one bare URL (legacy format). Decoding is
// total: a blank value yields an empty list and anything that is not a
// JSON string array is returned as a single-element list verbatim.
func DecodeImageList(stored string) []string {
	if strings.TrimSpace(stored) == "" {
		return nil
	}

	var urls []string
	if err := json.Unmarshal([]byte(stored), &urls); err == nil {
		return urls
	}
	return []string{stored}
}

// EncodeImageList serializes urls into the stored JSON array form.
// It round-trips with [DecodeImageList]: an empty list encodes to "[]",
// not to a single empty URL.
func EncodeImageList(urls []string) string {
	if len(urls) == 0 {
		return "[]"
	}
	b, err := json.Marshal(urls)
	if err != nil {
		// a string slice always marshals
		panic(err)
	}
	return string(b)
}
