package core

import (
	"net/url"
	"regexp"
	"strings"
)

// NoProvider is the sentinel shown when no certifying authority can be inferred.
const NoProvider = "ללא ספק"

// providerToken maps a file-name token to the authority's display name.
type providerToken struct {
	token   string
	display string
}

// providerTokens is checked in order; the first token present in the name wins.
var providerTokens = []providerToken{
	{token: "landa", display: "לנדא"},
	{token: "rubin", display: "רובין"},
	{token: "badatz", display: `בד"ץ`},
	{token: "eida", display: "העדה החרדית"},
	{token: "tzohar", display: "צהר"},
}

var (
	extensionPattern  = regexp.MustCompile(`\.[^.]+$`)
	tokenSplitPattern = regexp.MustCompile(`[^a-zA-Zא-ת0-9]+`)
	separatorPattern  = regexp.MustCompile(`[-_]+`)
)

// ProviderFromOrigin infers the certifying authority from a file name, path or URL.
//
// "kosher-list-landa-filtered.csv" yields "לנדא". Names without a known token
// are humanized instead ("my_list.csv" becomes "my list"), and an empty result
// yields NoProvider.
func ProviderFromOrigin(origin string) string {
	base := strings.ToLower(baseName(origin))

	tokens := make(map[string]bool)
	for _, tok := range tokenSplitPattern.Split(base, -1) {
		if tok != "" {
			tokens[tok] = true
		}
	}

	for _, p := range providerTokens {
		if tokens[p.token] {
			return p.display
		}
	}

	humanized := strings.TrimSpace(separatorPattern.ReplaceAllString(base, " "))
	if humanized == "" {
		return NoProvider
	}
	return humanized
}

// ProviderTokens returns the known authority display names in table order.
func ProviderTokens() []string {
	names := make([]string, len(providerTokens))
	for i, p := range providerTokens {
		names[i] = p.display
	}
	return names
}

// baseName returns the last path segment of origin without its extension.
// For http(s) URLs only the path is considered, so query strings never leak
// into the provider name.
func baseName(origin string) string {
	if u, err := url.Parse(origin); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		origin = u.Path
	}
	base := origin
	if idx := strings.LastIndex(origin, "/"); idx >= 0 {
		base = origin[idx+1:]
	}
	if base == "" {
		base = origin
	}
	return extensionPattern.ReplaceAllString(base, "")
}
