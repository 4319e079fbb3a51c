package logging

import "strings"

// FormatSubject builds the "[component] stage" prefix used in console output.
func FormatSubject(component, stage string) string {
	component = strings.TrimSpace(component)
	stage = strings.TrimSpace(stage)
	switch {
	case component != "" && stage != "":
		return "[" + component + "] " + stage
	case component != "":
		return "[" + component + "]"
	default:
		return stage
	}
}
