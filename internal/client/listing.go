package client

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	digitsOnly      = regexp.MustCompile(`^\d+$`)
	editorPath      = regexp.MustCompile(`/listing-editor/edit/(\d+)`)
	publicPath      = regexp.MustCompile(`/listings?/(\d+)`)
	listingIDInText = regexp.MustCompile(`listing[_-]id=(\d+)`)
	digitRun        = regexp.MustCompile(`\d+`)
)

// ResolveListingID extracts a numeric marketplace listing id from a raw id,
// a public listing URL, a seller editor URL or loose text. The first
// recognised form wins; otherwise the last run of digits is used.
func ResolveListingID(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if digitsOnly.MatchString(value) {
		return value, true
	}

	if u, err := url.Parse(value); err == nil && u.Scheme != "" && u.Host != "" {
		query := u.Query()
		for _, key := range []string{"listing_id", "listingId"} {
			if v := strings.TrimSpace(query.Get(key)); digitsOnly.MatchString(v) {
				return v, true
			}
		}
	}

	for _, pattern := range []*regexp.Regexp{editorPath, publicPath, listingIDInText} {
		if m := pattern.FindStringSubmatch(value); m != nil {
			return m[1], true
		}
	}

	if runs := digitRun.FindAllString(value, -1); len(runs) > 0 {
		return runs[len(runs)-1], true
	}
	return "", false
}
