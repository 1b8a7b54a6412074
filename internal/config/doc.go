// Package config loads the converter configuration.
//
// A configuration starts from Default, is optionally overlaid by a TOML file
// (recast.toml in the working directory unless a path is given) and by CLI
// flags, and is then normalized and validated once. Callers treat the result
// as read-only.
package config
