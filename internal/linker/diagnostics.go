package linker

import (
	"github.com/xrash/smetrics"

	"github.com/roadlink/conflate/internal/types"
)

// jaroWinklerBoostThreshold and jaroWinklerPrefixSize match smetrics'
// documented defaults for name-like strings.
const (
	jaroWinklerBoostThreshold = 0.7
	jaroWinklerPrefixSize     = 4
)

// JaroWinklerScore reports the Jaro-Winkler similarity between two names'
// tokenized forms. It plays no part in Link's own scoring; callers use it
// to explain, after the fact, why strict mode rejected a candidate that
// would otherwise have scored well.
func JaroWinklerScore(a, b types.Name) float64 {
	return smetrics.JaroWinkler(a.TokenizedString(), b.TokenizedString(), jaroWinklerBoostThreshold, jaroWinklerPrefixSize)
}
