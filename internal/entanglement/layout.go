package entanglement

import "github.com/vancomm/quantum-mines/internal/circuit"

type layout struct {
	stride   int
	strength float64
	chains   bool
}

var layouts = map[circuit.Difficulty]layout{
	circuit.Observer:   {stride: 11, strength: 0.2},
	circuit.Researcher: {stride: 7, strength: 0.35},
	circuit.Theorist:   {stride: 5, strength: 0.5, chains: true},
}

// ForDifficulty lays out links over total cells. Every stride-th index is
// paired with the index half a stride further on. On theorist every other
// link is hard and each hard link is bridged to the next sampled index by
// another hard link, which strings hard links into chains.
func ForDifficulty(total int, label string) *Registry {
	lo := layouts[circuit.ParseDifficulty(label)]
	offset := max(lo.stride/2, 1)

	r := New()
	n := 0
	for left := 0; left < total; left += lo.stride {
		right := left + offset
		if right >= total {
			continue
		}
		kind := Weak
		if lo.chains && n%2 == 0 {
			kind = Hard
		}
		r.AddLink(left, right, lo.strength, kind)
		if kind == Hard && left+lo.stride < total {
			r.AddLink(right, left+lo.stride, lo.strength, Hard)
		}
		n++
	}
	return r
}
