// Package circuit scrambles raw mine probabilities into the hints players see.
package circuit

import (
	"fmt"
	"math"
)

type GateKind uint8

const (
	Compress GateKind = iota // pull toward 0.5
	Invert
	Rotate
)

type Gate struct {
	Kind  GateKind
	Theta float64 // Rotate only
}

func CompressGate() Gate { return Gate{Kind: Compress} }

func InvertGate() Gate { return Gate{Kind: Invert} }

func RotateGate(theta float64) Gate { return Gate{Kind: Rotate, Theta: theta} }

// [Gate] implements [fmt.Stringer]
func (g Gate) String() string {
	switch g.Kind {
	case Compress:
		return "compress"
	case Invert:
		return "invert"
	case Rotate:
		return fmt.Sprintf("rotate(%.4f)", g.Theta)
	default:
		return "?"
	}
}

func (g Gate) apply(p float64) float64 {
	switch g.Kind {
	case Compress:
		return 0.5 + (p-0.5)*0.5
	case Invert:
		return 1 - p
	case Rotate:
		c := math.Cos(g.Theta / 2)
		s := math.Sin(g.Theta / 2)
		return p*c*c + (1-p)*s*s
	default:
		return p
	}
}

// Circuit is an ordered gate pipeline. It holds no state besides its gates
// and knows nothing about the grid it serves.
type Circuit struct {
	Gates []Gate
}

func (c Circuit) With(g Gate) Circuit {
	gates := make([]Gate, len(c.Gates), len(c.Gates)+1)
	copy(gates, c.Gates)
	return Circuit{Gates: append(gates, g)}
}

// Apply runs p through every gate left to right, clamping into [0, 1] on
// the way in and after each gate.
func (c Circuit) Apply(p float64) float64 {
	p = Clamp(p, 0, 1)
	for _, g := range c.Gates {
		p = Clamp(g.apply(p), 0, 1)
	}
	return p
}

// [Circuit] implements [fmt.Stringer]
func (c Circuit) String() string {
	s := "["
	for i, g := range c.Gates {
		if i > 0 {
			s += " "
		}
		s += g.String()
	}
	return s + "]"
}

func ForDifficulty(label string) Circuit {
	switch ParseDifficulty(label) {
	case Observer:
		return Circuit{}.With(RotateGate(math.Pi / 6))
	case Theorist:
		return Circuit{}.
			With(CompressGate()).
			With(RotateGate(math.Pi / 3)).
			With(CompressGate())
	default:
		return Circuit{}.
			With(CompressGate()).
			With(RotateGate(math.Pi / 4))
	}
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
