package logger

import "go.uber.org/zap/zapcore"

// Verbosity is the count of -v flags given to sketchflow.
const (
	VerbosityUser  = 0 // generated files, check results, errors
	VerbosityInfo  = 1 // -v: pipeline stages, watch events
	VerbosityDebug = 2 // -vv: timings, resolved parsers, config files
	VerbosityTrace = 3 // -vvv: generated file contents
)

// VerbosityToLevel picks the zap level for a -v count. Anything past -vv
// is debug; the extra output at -vvv comes from output categories.
func VerbosityToLevel(verbosity int) zapcore.Level {
	if verbosity <= VerbosityUser {
		return zapcore.WarnLevel
	}
	if verbosity == VerbosityInfo {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

// LevelName names a -v count for diagnostics.
func LevelName(verbosity int) string {
	switch {
	case verbosity <= VerbosityUser:
		return "default"
	case verbosity == VerbosityInfo:
		return "info (-v)"
	case verbosity == VerbosityDebug:
		return "debug (-vv)"
	}
	return "trace (-vvv)"
}
