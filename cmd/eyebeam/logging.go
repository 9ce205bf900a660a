package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/eyebeam/config"
	"github.com/lixenwraith/eyebeam/internal/log"
)

const logFileName = "eyebeam.log"

// setupLogging writes to cfg.LogDir only in debug, the terminal belongs to the renderer
// Returns the open log file, nil when logging is discarded
func setupLogging(cfg config.Config) *os.File {
	if !cfg.Debug {
		log.Discard()
		return nil
	}

	level := cfg.LogLevel
	if level == "" || level == "info" {
		level = "debug"
	}
	f, err := log.InitFile(cfg.LogDir, logFileName, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v (continuing without logs)\n", err)
		log.Discard()
		return nil
	}
	return f
}
