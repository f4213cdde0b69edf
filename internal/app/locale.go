package app

import (
	"strings"

	"golang.org/x/text/language"

	"eyecare_site/internal/domain"
)

const (
	LocaleCookie       = "preferred-language"
	LocaleCookieMaxAge = 365 * 24 * 60 * 60 // one year, seconds
)

// Paths under these prefixes are never redirected.
var localeExcludedPrefixes = []string{"/api", "/_next", "/static", "/metrics", "/healthz"}

type LocaleOutcome string

const (
	LocaleSkip     LocaleOutcome = "skip"
	LocalePass     LocaleOutcome = "pass"
	LocaleRedirect LocaleOutcome = "redirect"
)

type LocaleRequest struct {
	Path           string
	Cookie         string // value of the preferred-language cookie, "" when absent
	AcceptLanguage string
}

type LocaleDecision struct {
	Outcome   LocaleOutcome
	Location  string // set on redirect
	SetCookie bool   // persist AlternateLocale as the preference
}

// DecideLocale decides whether a request for the site root goes to the
// alternate-locale home. A stored preference always wins over the header,
// and the cookie is only written when no preference existed yet.
func DecideLocale(r LocaleRequest) LocaleDecision {
	if skipLocale(r.Path) {
		return LocaleDecision{Outcome: LocaleSkip}
	}
	root := r.Path == "/" || r.Path == ""
	alt := domain.AlternateLocale

	if r.Cookie != "" {
		if r.Cookie == string(alt) && root {
			return LocaleDecision{Outcome: LocaleRedirect, Location: alt.Home()}
		}
		return LocaleDecision{Outcome: LocalePass}
	}

	if l, ok := PreferredLocale(r.AcceptLanguage); ok && l == alt && root {
		return LocaleDecision{Outcome: LocaleRedirect, Location: alt.Home(), SetCookie: true}
	}
	return LocaleDecision{Outcome: LocalePass}
}

func skipLocale(path string) bool {
	for _, p := range localeExcludedPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	// file-like: favicon.ico, sitemap.xml, robots.txt, assets
	if i := strings.LastIndexByte(path, '/'); i >= 0 && strings.Contains(path[i+1:], ".") {
		return true
	}
	home := domain.AlternateLocale.Home()
	return path == home || strings.HasPrefix(path, home+"/")
}

// PreferredLocale returns the highest-weighted supported locale named in an
// Accept-Language header. Malformed or empty headers yield no preference.
func PreferredLocale(acceptLanguage string) (domain.Locale, bool) {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return "", false
	}
	tags, weights, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return "", false
	}
	for i, tag := range tags {
		if weights[i] <= 0 {
			continue
		}
		base, conf := tag.Base()
		if conf == language.No {
			continue
		}
		if l, ok := domain.ParseLocale(base.String()); ok {
			return l, true
		}
	}
	return "", false
}
