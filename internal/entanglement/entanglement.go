// Package entanglement keeps the correlation links between grid cells.
//
// Links address cells by index into the grid's flat cell slice, never by
// pointer, so cyclic link topologies need no special ownership handling.
package entanglement

import (
	"github.com/vancomm/quantum-mines/internal/circuit"
)

type Kind uint8

const (
	// Weak links blend a partner's displayed probability.
	Weak Kind = iota
	// Hard links force the partner to resolve (perfect anti-correlation).
	Hard
)

// [Kind] implements [fmt.Stringer]
func (k Kind) String() string {
	if k == Hard {
		return "hard"
	}
	return "weak"
}

type Link struct {
	Left, Right int
	Strength    float64
	Kind        Kind
}

// Other returns the endpoint opposite to index.
func (l Link) Other(index int) int {
	if l.Left == index {
		return l.Right
	}
	return l.Left
}

func (l Link) Touches(index int) bool {
	return l.Left == index || l.Right == index
}

type Partner struct {
	Link
	Index int
}

type Registry struct {
	links []Link
}

func New() *Registry {
	return &Registry{}
}

// FromLinks rebuilds a registry from previously exported links.
func FromLinks(links []Link) *Registry {
	r := &Registry{links: make([]Link, 0, len(links))}
	for _, l := range links {
		r.AddLink(l.Left, l.Right, l.Strength, l.Kind)
	}
	return r
}

func (r *Registry) AddLink(left, right int, strength float64, kind Kind) {
	r.links = append(r.links, Link{
		Left:     left,
		Right:    right,
		Strength: circuit.Clamp(strength, 0, 1),
		Kind:     kind,
	})
}

// Links returns a copy of every link in insertion order.
func (r *Registry) Links() []Link {
	out := make([]Link, len(r.links))
	copy(out, r.links)
	return out
}

func (r *Registry) Len() int {
	return len(r.links)
}

// PartnerOf returns the first link touching index and its other endpoint.
func (r *Registry) PartnerOf(index int) (Link, int, bool) {
	for _, l := range r.links {
		if l.Touches(index) {
			return l, l.Other(index), true
		}
	}
	return Link{}, 0, false
}

// PartnersOf returns every link touching index in insertion order.
func (r *Registry) PartnersOf(index int) []Partner {
	var out []Partner
	for _, l := range r.links {
		if l.Touches(index) {
			out = append(out, Partner{Link: l, Index: l.Other(index)})
		}
	}
	return out
}

// ResolvePartner computes the partner's new displayed probability after the
// other end of link was observed.
//
// Hard links ignore strength and baseline: an observed mine forces the
// partner safe (0) and an observed safe cell forces it to be a mine (1).
func ResolvePartner(link Link, observedIsMine bool, baseline float64) float64 {
	if link.Kind == Hard {
		if observedIsMine {
			return 0
		}
		return 1
	}
	b := circuit.Clamp(baseline, 0, 1)
	target := b
	if observedIsMine {
		target = 1 - b
	}
	return circuit.Clamp(b*(1-link.Strength)+target*link.Strength, 0, 1)
}
