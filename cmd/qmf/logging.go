package main

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/quantum-mines/internal/config"
	"github.com/vancomm/quantum-mines/internal/mines"
)

// setupLogging configures both the CLI logger and the engine's. Logs go to
// stderr so stdout carries nothing but responses.
func setupLogging(cfg config.Config) {
	logLevel, err := cfg.LogLevel()
	if err != nil {
		log.Fatal(err)
	}

	for _, l := range []*logrus.Logger{log, mines.Log} {
		l.SetOutput(os.Stderr)
		l.SetLevel(logLevel)
		l.SetFormatter(&logrus.TextFormatter{ForceColors: cfg.Development()})
	}

	if cfg.Log.File == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     28,
		Level:      logLevel,
		Formatter: &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		},
	})
	if err != nil {
		log.Fatal("unable to open log file: ", err)
	}
	log.AddHook(hook)
	mines.Log.AddHook(hook)
}
