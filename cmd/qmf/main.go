package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/quantum-mines/internal/config"
	"github.com/vancomm/quantum-mines/internal/replay"
	"github.com/vancomm/quantum-mines/internal/rng"
	"github.com/vancomm/quantum-mines/internal/session"
)

var (
	log = logrus.New()

	configPath string
	width      int
	height     int
	mineCount  int
	difficulty string
	seed       string
	seedText   string
	shareCode  string
)

func init() {
	const usage = "config file path (.yaml, .yml or .json)"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
	flag.IntVar(&width, "w", 0, "grid width")
	flag.IntVar(&height, "h", 0, "grid height")
	flag.IntVar(&mineCount, "m", 0, "mine count")
	flag.StringVar(&difficulty, "d", "", "difficulty: observer, researcher or theorist")
	flag.StringVar(&seed, "seed", "", "numeric seed (random when empty)")
	flag.StringVar(&seedText, "seed-text", "", "seed derived from any text, e.g. a date")
	flag.StringVar(&shareCode, "replay", "", "resume the game behind a share code")
}

func loadConfig() config.Config {
	cfg := config.Default()
	if configPath != "" {
		if err := config.ReadConfig(configPath, &cfg); err != nil {
			log.Fatal(err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w":
			cfg.Game.Width = width
		case "h":
			cfg.Game.Height = height
		case "m":
			cfg.Game.MineCount = mineCount
		case "d":
			cfg.Game.Difficulty = difficulty
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config: ", err)
	}
	return cfg
}

func newSession(cfg config.Config) (*session.Session, error) {
	rnd := session.NewRand()
	if shareCode != "" {
		r, err := replay.Decode(shareCode)
		if err != nil {
			return nil, err
		}
		return session.FromReplay(r, rnd)
	}

	var s uint64
	switch {
	case seed != "":
		n, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seed must be an unsigned integer: %w", err)
		}
		s = n
	case seedText != "":
		s = rng.SeedFromString(seedText)
	default:
		s = rnd.Uint64()
	}
	return session.New(cfg.Params(s), rnd)
}

// serve answers every command line from r with one JSON document on w.
func serve(s *session.Session, r io.Reader, w io.Writer) error {
	enc := json.NewEncoder(w)
	first, err := s.Exec("g")
	if err != nil {
		return err
	}
	if err := enc.Encode(first); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		resp, err := s.Exec(line)
		if err != nil {
			log.WithField("line", line).Warn(err)
			if err := enc.Encode(map[string]string{"error": err.Error()}); err != nil {
				return err
			}
			continue
		}
		log.WithField("command", resp.Command).Debug("executed")
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func main() {
	flag.Parse()

	cfg := loadConfig()
	setupLogging(cfg)

	log.WithFields(cfg.Fields()).Debug("config")

	s, err := newSession(cfg)
	if err != nil {
		log.Fatal("unable to start game: ", err)
	}
	grid := s.Grid()
	log.WithFields(logrus.Fields{
		"seed":       grid.Seed(),
		"difficulty": grid.Difficulty(),
		"mines":      grid.MineCount(),
	}).Info("game ready")

	if err := serve(s, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}

	grid = s.Grid()
	log.WithFields(logrus.Fields{
		"won":       grid.Won(),
		"game_over": grid.GameOver(),
	}).Info("bye")
}
