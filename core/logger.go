/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
)

var shouldPrintTraceLogs = false
var logLevel log.Level

// InitializeLogger initializes the logger.
func InitializeLogger() {
	log.SetHandler(text.New(os.Stderr))

	logLevelString := GetConfigStringDefault("core.log_level", "INFO")

	var err error
	logLevel, err = log.ParseLevel(strings.ToLower(logLevelString))
	if err == nil {
		log.SetLevel(logLevel)
	} else if logLevelString == "TRACE" {
		// Apex doesn't support the TRACE level, so we have to work around that by
		// calling them DEBUG, but not printing them if not TRACE
		log.SetLevel(log.DebugLevel)
		shouldPrintTraceLogs = true
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func generateLogMessage(module interface{}, components ...interface{}) string {
	var message strings.Builder
	message.WriteString(fmt.Sprintf("[%v] ", module))
	for _, component := range components {
		message.WriteString(fmt.Sprint(component))
	}
	return message.String()
}

// LogFatal logs a message at the FATAL level. Note: Fatal will let the program exit
func LogFatal(module interface{}, components ...interface{}) {
	if logLevel <= log.FatalLevel {
		log.Fatal(generateLogMessage(module, components...))
	}
}

// LogError logs a message at the ERROR level.
func LogError(module interface{}, components ...interface{}) {
	if logLevel <= log.ErrorLevel {
		log.Error(generateLogMessage(module, components...))
	}
}

// LogWarn logs a message at the WARN level.
func LogWarn(module interface{}, components ...interface{}) {
	if logLevel <= log.WarnLevel {
		log.Warn(generateLogMessage(module, components...))
	}
}

// LogInfo logs a message at the INFO level.
func LogInfo(module interface{}, components ...interface{}) {
	if logLevel <= log.InfoLevel {
		log.Info(generateLogMessage(module, components...))
	}
}

// LogDebug logs a message at the DEBUG level.
func LogDebug(module interface{}, components ...interface{}) {
	if logLevel <= log.DebugLevel {
		log.Debug(generateLogMessage(module, components...))
	}
}

// LogTrace logs a message at the TRACE level (really just additional DEBUG messages).
func LogTrace(module interface{}, components ...interface{}) {
	if shouldPrintTraceLogs {
		log.Debug(generateLogMessage(module, components...))
	}
}
