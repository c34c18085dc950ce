/*
Copyright 2020 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package utils

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/gravitational/detrsa/lib/defaults"

	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

// InitLogger configures the standard logger to write entries of the given
// level and above to stderr
func InitLogger(level log.Level) {
	InitLoggerTo(os.Stderr, level)
}

// InitLoggerTo configures the standard logger to write entries of the given
// level and above to w
func InitLoggerTo(w io.Writer, level log.Level) {
	log.SetLevel(level)
	log.SetOutput(w)
	log.SetFormatter(&trace.TextFormatter{})
}

// InitLogging additionally duplicates log entries of all levels into logFile
func InitLogging(level log.Level, logFile string) {
	log.StandardLogger().Hooks.Add(&Hook{
		path: logFile,
	})
	log.SetLevel(level)
}

// Hook implements log.Hook and duplicates log messages into a log file
type Hook struct {
	path string
}

// Fire writes the provided log entry to the configured log file
//
// It never returns an error to avoid default logrus behavior of spitting
// out fire hook errors into stderr.
func (r *Hook) Fire(entry *log.Entry) error {
	msg, err := entry.String()
	if err != nil {
		defaultLogger().Warnf("Failed to convert log entry: %v.", err)
		return nil
	}

	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, defaults.LogFileMask)
	if err != nil {
		defaultLogger().Warnf("Failed to open %v: %v.", r.path, err)
		return nil
	}
	defer f.Close()

	_, err = f.WriteString(msg)
	if err != nil {
		defaultLogger().Warnf("Failed to write log entry: %v.", err)
		return nil
	}

	return nil
}

// Levels returns the levels the hook fires for
func (r *Hook) Levels() []log.Level {
	return log.AllLevels
}

func defaultLogger() *log.Logger {
	logger := log.New()
	logger.Out = os.Stderr
	return logger
}

// DiscardLogs silences the standard logger
func DiscardLogs() {
	log.SetOutput(ioutil.Discard)
}
