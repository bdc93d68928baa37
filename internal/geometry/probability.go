package geometry

import "math"

// Physical constants for the reception probability functions
// (spec.md §6 "Physical constants").
const (
	vBit = 10.0
	pN   = 6.71
)

// Beta computes β(f), a frequency-dependent attenuation coefficient shared
// by both probability functions.
func Beta(f float64) float64 {
	return 0.1*f*f/(1+f*f) +
		40*f*f/(4100+f*f) +
		2.75e-4*f*f +
		3e-4
}

// xFactor computes x(r, f), the erf-function argument used by P1.
func xFactor(r, f float64) float64 {
	return (math.Sqrt(f/vBit) * pN / r) * math.Pow(10, -0.05*Beta(f)*r)
}

// P1 is the erf-based reception probability function.
func P1(r, f float64) float64 {
	return math.Erf(xFactor(r, f))
}

// gamma computes γ(r, f), the SNR-like term used by P2.
func gamma(r, f float64) float64 {
	return (f * 100 / (r * r)) * math.Pow(10, -0.1*Beta(f)*r)
}

// qError computes q_e(r, f), the symbol error probability used by P2.
func qError(r, f float64) float64 {
	g := gamma(r, f)
	return 0.5 * (1 - math.Sqrt(g/(1+g)))
}

// P2 is the symbol-error-based reception probability function (256-bit
// symbol acceptance).
func P2(r, f float64) float64 {
	return math.Pow(1-qError(r, f), 256)
}

// ProbabilityFunc is a reception probability function of distance r and
// frequency parameter f.
type ProbabilityFunc func(r, f float64) float64

// ProbabilityFuncType selects between the two reception probability models
// (spec.md §6 "probabilityFuncType").
type ProbabilityFuncType int

const (
	// ProbabilityFuncErf selects P1 (erf-based).
	ProbabilityFuncErf ProbabilityFuncType = 1
	// ProbabilityFuncSymbolError selects P2 (symbol-error-based).
	ProbabilityFuncSymbolError ProbabilityFuncType = 2
)

// Resolve returns the ProbabilityFunc for t, or an error for an unknown
// code (spec.md §7: "unknown probabilityFuncType ... fails fast at
// construction").
func (t ProbabilityFuncType) Resolve() (ProbabilityFunc, error) {
	switch t {
	case ProbabilityFuncErf:
		return P1, nil
	case ProbabilityFuncSymbolError:
		return P2, nil
	default:
		return nil, errUnknownProbabilityFuncType(t)
	}
}
