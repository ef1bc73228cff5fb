package logger

// OutputCategory is a kind of CLI output that can be enabled per verbosity.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota // Written files, check results
	OutputErrors                        // Errors with hints
	OutputSummary                       // Final metadata line

	// Level 1 (-v)
	OutputProgress    // Stage-by-stage progress
	OutputWatchEvents // Input changes seen by --watch

	// Level 2 (-vv)
	OutputTiming // Per-stage durations
	OutputConfig // Resolved config values

	// Level 3 (-vvv)
	OutputDocumentDump // Validated document as JSON
	OutputFileDump     // Generated file contents
)

var categoryLevels = map[OutputCategory]int{
	OutputResults: VerbosityUser,
	OutputErrors:  VerbosityUser,
	OutputSummary: VerbosityUser,

	OutputProgress:    VerbosityInfo,
	OutputWatchEvents: VerbosityInfo,

	OutputTiming: VerbosityDebug,
	OutputConfig: VerbosityDebug,

	OutputDocumentDump: VerbosityTrace,
	OutputFileDump:     VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:      "results",
	OutputErrors:       "errors",
	OutputSummary:      "summary",
	OutputProgress:     "progress",
	OutputWatchEvents:  "watch",
	OutputTiming:       "timing",
	OutputConfig:       "config",
	OutputDocumentDump: "document-dump",
	OutputFileDump:     "file-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
