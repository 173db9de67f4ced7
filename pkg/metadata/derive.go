package metadata

import (
	"sort"
	"strings"
)

// Canonical division names.
const (
	DivisionVertebrates = "EnsemblVertebrates"
	DivisionPlants      = "EnsemblPlants"
	DivisionFungi       = "EnsemblFungi"
	DivisionMetazoa     = "EnsemblMetazoa"
	DivisionProtists    = "EnsemblProtists"
	DivisionBacteria    = "EnsemblBacteria"
	DivisionPan         = "EnsemblPan"
)

// divisionCodes maps the short codes embedded in compara database names
// to canonical division names.
var divisionCodes = map[string]string{
	"plants":       DivisionPlants,
	"fungi":        DivisionFungi,
	"metazoa":      DivisionMetazoa,
	"protists":     DivisionProtists,
	"bacteria":     DivisionBacteria,
	"pan_homology": DivisionPan,
}

// SharedDivisionSpecies are the species present in more than one
// division. Compara resolution applies a dedicated disambiguation
// policy to them.
var SharedDivisionSpecies = map[string]bool{
	"caenorhabditis_elegans":   true,
	"drosophila_melanogaster":  true,
	"saccharomyces_cerevisiae": true,
}

// PickDivision selects one division from all recorded division tags:
// the alphabetically last one, defaulting to the vertebrate division
// when none are recorded. The sort-based pick is a deliberate, if
// coarse, disambiguation policy, not a true priority order.
func PickDivision(divisions []string) string {
	var res string
	for _, d := range divisions {
		if d > res {
			res = d
		}
	}
	if res == "" {
		return DivisionVertebrates
	}
	return res
}

// DivisionFromComparaName derives the division of a compara database
// from its name: the organization prefix and trailing release numbers
// are stripped and the remaining short code mapped to a canonical
// division. Purely numeric variants ("ensembl_compara_99") belong to
// the vertebrate division.
func DivisionFromComparaName(dbName string) string {
	s := strings.TrimPrefix(dbName, "ensembl_")
	s = strings.TrimPrefix(s, ComparaMarker)
	s = strings.Trim(s, "_")

	parts := strings.Split(s, "_")
	for len(parts) > 0 && isNumeric(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}
	code := strings.Join(parts, "_")
	if code == "" {
		return DivisionVertebrates
	}
	if div, ok := divisionCodes[code]; ok {
		return div
	}
	return DivisionVertebrates
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// GenomeBuildLabel derives the genome-build label: the explicit
// genebuild version when present, otherwise the start date with the
// last update appended after a "/" when recorded.
func GenomeBuildLabel(version, startDate, lastUpdate string) string {
	if version != "" {
		return version
	}
	if lastUpdate != "" {
		return startDate + "/" + lastUpdate
	}
	return startDate
}

// LastCandidateWins is the generic disambiguation policy for persisted
// genome candidates: the last candidate encountered is taken. The scan
// order is whatever the store returned, which makes this "most recent
// wins" rather than a deterministic best match; kept and named so tests
// can pin the behavior.
func LastCandidateWins(candidates []*GenomeInfo) *GenomeInfo {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[len(candidates)-1]
}

// SortAliases sorts aliases in place for stable output.
func SortAliases(aliases []string) {
	sort.Strings(aliases)
}
