package mines

import "iter"

func (g *Grid) index(x, y int) (int, bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0, false
	}
	return y*g.width + x, true
}

func (g *Grid) coords(i int) (x, y int) {
	return i % g.width, i / g.width
}

// neighbours yields the in-bounds indices around i, excluding i itself.
func (g *Grid) neighbours(i int) iter.Seq[int] {
	x, y := g.coords(i)
	return func(yield func(int) bool) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if j, ok := g.index(x+dx, y+dy); ok {
					if !yield(j) {
						return
					}
				}
			}
		}
	}
}

// adjacentMines counts mines around i using the real layout.
func (g *Grid) adjacentMines(i int) int {
	n := 0
	for j := range g.neighbours(i) {
		if g.mines[j] {
			n++
		}
	}
	return n
}

func (g *Grid) neighbourCount(i int) int {
	n := 0
	for range g.neighbours(i) {
		n++
	}
	return n
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
