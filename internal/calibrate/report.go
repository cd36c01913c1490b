package calibrate

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// binCount splits [0,1] into equal hint ranges for the reliability table.
const binCount = 10

// CI is a confidence interval.
type CI struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Cells int     `json:"cells"`
	Mines int     `json:"mines"`
}

// MineRate is the observed share of mines among cells shown in the bin.
func (b Bin) MineRate() float64 {
	if b.Cells == 0 {
		return 0
	}
	return float64(b.Mines) / float64(b.Cells)
}

type Report struct {
	Difficulty     string        `json:"difficulty"`
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	MineCount      int           `json:"mine_count"`
	Games          int           `json:"games"`
	FirstClickSafe int           `json:"first_click_safe"`
	ChainContained int           `json:"chain_contained"`
	Cells          int           `json:"cells"`
	Mines          int           `json:"mines"`
	MineRate       float64       `json:"mine_rate"`
	MineRateCI     CI            `json:"mine_rate_ci"`
	Confidence     float64       `json:"confidence"`
	MeanHintMine   float64       `json:"mean_hint_mine"`
	StdHintMine    float64       `json:"std_hint_mine"`
	MeanHintSafe   float64       `json:"mean_hint_safe"`
	StdHintSafe    float64       `json:"std_hint_safe"`
	Correlation    float64       `json:"correlation"`
	Bins           []Bin         `json:"bins"`
	Duration       time.Duration `json:"duration"`
}

func summarize(opts Options, samples []sample) *Report {
	r := &Report{
		Difficulty: opts.Params.Difficulty,
		Width:      opts.Params.Width,
		Height:     opts.Params.Height,
		MineCount:  opts.Params.MineCount,
		Games:      len(samples),
		Confidence: opts.Confidence,
		Bins:       make([]Bin, binCount),
	}
	for i := range r.Bins {
		r.Bins[i].Lo = float64(i) / binCount
		r.Bins[i].Hi = float64(i+1) / binCount
	}

	var hints, truths, mineHints, safeHints []float64
	for _, s := range samples {
		if s.firstClickSafe {
			r.FirstClickSafe++
		}
		r.ChainContained += s.chainContained
		for i, h := range s.hints {
			bin := &r.Bins[min(int(h*binCount), binCount-1)]
			bin.Cells++
			hints = append(hints, h)
			if s.truths[i] {
				bin.Mines++
				truths = append(truths, 1)
				mineHints = append(mineHints, h)
			} else {
				truths = append(truths, 0)
				safeHints = append(safeHints, h)
			}
		}
	}

	r.Cells = len(hints)
	r.Mines = len(mineHints)
	r.MineRate, r.MineRateCI = proportionCI(r.Mines, r.Cells, r.Confidence)
	r.MeanHintMine, r.StdHintMine = meanStdDev(mineHints)
	r.MeanHintSafe, r.StdHintSafe = meanStdDev(safeHints)

	// point-biserial correlation: Pearson against the 0/1 truth, left at 0
	// when every probed cell agrees
	if r.Mines > 0 && r.Mines < r.Cells {
		if c := stat.Correlation(hints, truths, nil); !math.IsNaN(c) {
			r.Correlation = c
		}
	}
	return r
}

func meanStdDev(x []float64) (float64, float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}

// proportionCI is the Clopper-Pearson exact interval for k successes in n.
func proportionCI(k, n int, confidence float64) (float64, CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	alpha := 1 - confidence
	pHat := float64(k) / float64(n)

	var ci CI
	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return pHat, ci
}
