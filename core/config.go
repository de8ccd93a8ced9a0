/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import (
	"math"

	"github.com/pelletier/go-toml"
)

var config *toml.Tree

func init() {
	// Empty tree so that the accessors work before (or without) LoadConfig.
	config, _ = toml.Load("")
}

// LoadConfig loads the tracecheck configuration from the specified configuration file.
func LoadConfig(file string) {
	var err error
	config, err = toml.LoadFile(file)
	if err != nil {
		LogFatal("Config", "Unable to load configuration file: ", err)
	}
}

// GetConfigIntDefault returns the integer configuration value at the specified key or the specified default value if it does not exist.
func GetConfigIntDefault(key string, def int) int {
	valRaw := config.Get(key)
	if valRaw == nil {
		return def
	}
	val, ok := valRaw.(int64)
	if ok && val >= math.MinInt32 && val <= math.MaxInt32 {
		return int(val)
	}
	return def
}

// GetConfigStringDefault returns the string configuration value at the specified key or the specified default value if it does not exist.
func GetConfigStringDefault(key string, def string) string {
	valRaw := config.Get(key)
	if valRaw == nil {
		return def
	}
	val, ok := valRaw.(string)
	if ok {
		return val
	}
	return def
}

// GetConfigBoolDefault returns the boolean configuration value at the specified key or the specified default value if it does not exist.
func GetConfigBoolDefault(key string, def bool) bool {
	valRaw := config.Get(key)
	if valRaw == nil {
		return def
	}
	val, ok := valRaw.(bool)
	if ok {
		return val
	}
	return def
}

// GetConfigArrayStringDefault returns the configuration array value at the specified key or the specified default if it does not exist.
func GetConfigArrayStringDefault(key string, def []string) []string {
	arrayRaw := config.Get(key)
	if arrayRaw == nil {
		return def
	}
	array, ok := arrayRaw.([]interface{})
	if !ok {
		return def
	}
	val := make([]string, 0, len(array))
	for _, entryRaw := range array {
		entry, ok := entryRaw.(string)
		if !ok {
			return def
		}
		val = append(val, entry)
	}
	return val
}
