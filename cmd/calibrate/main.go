package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/quantum-mines/internal/calibrate"
	"github.com/vancomm/quantum-mines/internal/circuit"
	"github.com/vancomm/quantum-mines/internal/mines"
)

var log = logrus.New()

func main() {
	var (
		width      = flag.Int("w", 16, "grid width")
		height     = flag.Int("h", 16, "grid height")
		mineCount  = flag.Int("m", 40, "mine count")
		difficulty = flag.String("d", "", "difficulty; every preset when empty")
		games      = flag.Int("games", 500, "games per difficulty")
		firstSeed  = flag.Uint64("seed", 1, "seed of the first game")
		workers    = flag.Int("workers", 0, "parallel games (GOMAXPROCS when 0)")
		confidence = flag.Float64("confidence", 0.95, "confidence of the mine rate interval")
		asJSON     = flag.Bool("json", false, "print reports as JSON")
		quiet      = flag.Bool("q", false, "hide the progress bar")
	)
	flag.Parse()

	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	difficulties := circuit.Difficulties()
	if *difficulty != "" {
		d := circuit.Difficulty(*difficulty)
		if !d.Valid() {
			log.Fatalf("unknown difficulty %q", *difficulty)
		}
		difficulties = []circuit.Difficulty{d}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reports []*calibrate.Report
	for _, d := range difficulties {
		opts := calibrate.Options{
			Params: mines.Params{
				Width:      *width,
				Height:     *height,
				MineCount:  *mineCount,
				Difficulty: string(d),
			},
			Games:      *games,
			FirstSeed:  *firstSeed,
			Workers:    *workers,
			Confidence: *confidence,
		}
		if !*quiet {
			opts.Progress = os.Stderr
		}

		log.WithFields(logrus.Fields{
			"difficulty": d,
			"games":      *games,
		}).Info("calibrating")

		r, err := calibrate.Run(ctx, opts)
		if err != nil {
			log.Fatal(err)
		}
		reports = append(reports, r)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			log.Fatal(err)
		}
		return
	}
	for _, r := range reports {
		fmt.Println(r.Table())
	}
}
