package funnel

import (
	"strings"
	"unicode"

	"github.com/de-tools/umami-atlas/pkg/models/domain"
)

// NormalizeName lowercases a report name and strips every rune that is not
// a letter or a digit, so "PV -> Login" and "pv->login" compare equal.
// Scripts without case, such as CJK, pass through unchanged.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PickReport resolves a target name against the catalog. An exact
// case-insensitive match wins immediately, taking the first hit in catalog
// order. Otherwise a fuzzy pass keeps every report whose normalized name
// contains the normalized target or vice versa, and succeeds only when
// exactly one candidate remains. Ambiguity and absence both report no match.
func PickReport(target string, catalog []domain.FunnelReport) (domain.FunnelReport, bool) {
	for _, report := range catalog {
		if strings.EqualFold(report.Name, target) {
			return report, true
		}
	}

	targetNorm := NormalizeName(target)
	if targetNorm == "" {
		return domain.FunnelReport{}, false
	}

	var candidates []domain.FunnelReport
	for _, report := range catalog {
		reportNorm := NormalizeName(report.Name)
		if reportNorm == "" {
			continue
		}
		if strings.Contains(reportNorm, targetNorm) || strings.Contains(targetNorm, reportNorm) {
			candidates = append(candidates, report)
		}
	}

	if len(candidates) == 1 {
		return candidates[0], true
	}
	return domain.FunnelReport{}, false
}
