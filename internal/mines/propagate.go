package mines

import (
	"github.com/sirupsen/logrus"

	"github.com/vancomm/quantum-mines/internal/entanglement"
)

// propagate lets every unresolved partner of i react to i being observed.
// Weak partners get a new hint; hard partners collapse along their chain.
func (g *Grid) propagate(i int, observedIsMine bool) {
	for _, p := range g.links.PartnersOf(i) {
		sp, ok := g.cells[p.Index].State.(Superposition)
		if !ok {
			continue
		}
		switch p.Kind {
		case entanglement.Weak:
			g.cells[p.Index].State = Superposition{
				Probability: entanglement.ResolvePartner(p.Link, observedIsMine, sp.Probability),
			}
		case entanglement.Hard:
			g.collapseChain(p.Index, p.Link, observedIsMine, map[int]struct{}{i: {}})
		}
	}
}

type collapse struct {
	index   int
	via     entanglement.Link
	trigger bool
}

// collapseChain forces start and every cell hard-linked to it, transitively,
// out of superposition. The visited set only grows, so cyclic links end.
//
// What a cell becomes is decided by the real layout, even when the
// anti-correlation prediction says otherwise. Each resolved cell passes on
// whether it actually was a mine.
func (g *Grid) collapseChain(start int, via entanglement.Link, trigger bool, visited map[int]struct{}) {
	stack := []collapse{{index: start, via: via, trigger: trigger}}
	resolved := 0
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[c.index]; seen {
			continue
		}
		sp, ok := g.cells[c.index].State.(Superposition)
		if !ok {
			continue
		}
		visited[c.index] = struct{}{}

		isMine := g.mines[c.index]
		predicted := entanglement.ResolvePartner(c.via, c.trigger, sp.Probability) >= 0.5
		if predicted != isMine {
			Log.WithFields(logrus.Fields{
				"cell":      c.index,
				"predicted": predicted,
				"actual":    isMine,
			}).Debug("chain prediction diverged from layout")
		}

		if isMine {
			g.cells[c.index].State = Contained{}
		} else {
			g.cells[c.index].State = Revealed{AdjacentMines: g.adjacentMines(c.index)}
		}
		resolved++

		for _, p := range g.links.PartnersOf(c.index) {
			if p.Kind != entanglement.Hard {
				continue
			}
			if _, seen := visited[p.Index]; seen {
				continue
			}
			stack = append(stack, collapse{index: p.Index, via: p.Link, trigger: isMine})
		}
	}
	Log.WithFields(logrus.Fields{
		"start":    start,
		"resolved": resolved,
	}).Debug("chain collapsed")
}
