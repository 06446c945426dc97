package keysynth

import (
	"github.com/KromDaniel/keysynth/internal/pattern"
)

// AnalysisResult describes what a pattern can produce without generating keys.
type AnalysisResult = pattern.Analysis

// Analyze compiles the pattern and reports its key length bounds, how many
// distinct keys incremental generation yields, and its feature labels.
//
// Example:
//
//	result, err := keysynth.Analyze("[0-9]{3}")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Cardinality) // 1000
//	fmt.Println(result.Labels)      // [CharClass Quantifiers]
func Analyze(p string) (*AnalysisResult, error) {
	compiled, err := pattern.Parse(p)
	if err != nil {
		return nil, err
	}
	a := pattern.Analyze(compiled)
	return &a, nil
}
