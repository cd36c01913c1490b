package calibrate

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// Table renders the report as two boxed tables: the summary, then the hint
// reliability per probability bin.
func (r *Report) Table() string {
	p := message.NewPrinter(lang)

	title := p.Sprintf("%s %dx%d (%d mines)", r.Difficulty, r.Width, r.Height, r.MineCount)
	keys := []string{
		"Games", "First click safe", "Chain contained", "Probed cells", "Mines",
		"Mine rate", "Mine rate CI", "Hint | mine", "Hint | safe", "Correlation", "Time",
	}
	msg := map[string]string{
		"Games":            p.Sprintf("%d", r.Games),
		"First click safe": p.Sprintf("%d / %d", r.FirstClickSafe, r.Games),
		"Chain contained":  p.Sprintf("%d", r.ChainContained),
		"Probed cells":     p.Sprintf("%d", r.Cells),
		"Mines":            p.Sprintf("%d", r.Mines),
		"Mine rate":        p.Sprintf("%.2f %%", 100*r.MineRate),
		"Mine rate CI":     p.Sprintf("[%.2f%%,%.2f%%] @ %.0f%%", 100*r.MineRateCI.Lo, 100*r.MineRateCI.Hi, 100*r.Confidence),
		"Hint | mine":      p.Sprintf("%.3f ± %.3f", r.MeanHintMine, r.StdHintMine),
		"Hint | safe":      p.Sprintf("%.3f ± %.3f", r.MeanHintSafe, r.StdHintSafe),
		"Correlation":      p.Sprintf("%.3f", r.Correlation),
		"Time":             r.Duration.Round(time.Millisecond).String(),
	}
	out := fmtTable(title, keys, msg)

	keys = keys[:0]
	msg = map[string]string{}
	for _, b := range r.Bins {
		k := fmt.Sprintf("%.1f - %.1f", b.Lo, b.Hi)
		keys = append(keys, k)
		if b.Cells == 0 {
			msg[k] = "-"
			continue
		}
		msg[k] = p.Sprintf("%d cells, %.1f %% mines", b.Cells, 100*b.MineRate())
	}
	return out + fmtTable("shown hint vs mine rate", keys, msg)
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	if titleW > totalInner {
		maxValLen += titleW - totalInner
		totalInner = titleW
	}

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", totalInner) + "+\n"

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var b strings.Builder
	b.WriteString(top)
	b.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right)))
	b.WriteString(divider)
	for _, k := range keys {
		b.WriteString(p.Sprintf("| %s%s | %s%s |\n",
			k, blank(maxKeyLen-2-runewidth.StringWidth(k)),
			msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])),
		))
	}
	b.WriteString(divider)
	return b.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
