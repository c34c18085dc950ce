package common

import (
	"github.com/fatih/color"
	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

// PrintError prints the red error message to the console
func PrintError(err error) {
	log.Debug(trace.DebugReport(err))
	color.Red("[ERROR]: %v\n", trace.UserMessage(err))
}
