package metadata

import "strings"

// DatabaseKind is the category of a genome database. The core kind is
// authoritative: it creates the unified genome record for a species.
// All other kinds extend an existing record.
type DatabaseKind int

const (
	KindCore DatabaseKind = iota
	KindOtherFeatures
	KindRNASeq
	KindCDNA
	KindVariation
	KindFuncgen
)

// kindTags maps database-name tags to kinds. The order is significant:
// classification tries each tag in turn and the first match wins.
var kindTags = []struct {
	tag  string
	kind DatabaseKind
}{
	{"core", KindCore},
	{"otherfeatures", KindOtherFeatures},
	{"rnaseq", KindRNASeq},
	{"cdna", KindCDNA},
	{"variation", KindVariation},
	{"funcgen", KindFuncgen},
}

// Kinds returns all database kinds in classification order.
func Kinds() []DatabaseKind {
	res := make([]DatabaseKind, len(kindTags))
	for i, kt := range kindTags {
		res[i] = kt.kind
	}
	return res
}

func (k DatabaseKind) String() string {
	for _, kt := range kindTags {
		if kt.kind == k {
			return kt.tag
		}
	}
	return "unknown"
}

const (
	// AncestralMarker excludes ancestral-allele databases from
	// classification altogether.
	AncestralMarker = "ancestral"

	// ComparaMarker identifies comparative-analysis databases.
	ComparaMarker = "compara"
)

// ClassifyName matches a database name against the fixed ordered list of
// kind tags. Substring matching is deliberately loose: database names
// follow the <species>_<kind>_<release> convention and this mirrors the
// long-standing best-effort behavior of the loaders.
func ClassifyName(dbName string) (DatabaseKind, bool) {
	for _, kt := range kindTags {
		if strings.Contains(dbName, kt.tag) {
			return kt.kind, true
		}
	}
	return 0, false
}

// IsAncestral reports whether a database holds ancestral alleles and
// must be excluded from classification.
func IsAncestral(dbName string) bool {
	return strings.Contains(dbName, AncestralMarker)
}

// IsCompara reports whether a database holds comparative analyses.
func IsCompara(dbName string) bool {
	return strings.Contains(dbName, ComparaMarker)
}
