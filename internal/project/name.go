package project

import (
	"regexp"
	"strings"
)

// ValidationResult is the outcome of validating a proposed project name.
// Message is empty when the name is valid.
type ValidationResult struct {
	Valid   bool
	Message string
}

// namePattern accepts names that start with an ASCII letter or digit and
// continue with up to 63 letters, digits, dots, underscores or dashes.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// reservedNames are device names that Windows refuses as file or
// directory names regardless of extension.
var reservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// ValidateName checks a proposed project name against the directory-name
// rules the scaffolding script expects. Rules are applied in order and
// the first failure wins. The function has no side effects and is cheap
// enough to call on every keystroke.
func ValidateName(name string) ValidationResult {
	if strings.TrimSpace(name) == "" {
		return invalid("project name cannot be empty")
	}

	if !namePattern.MatchString(name) {
		return invalid("name must start with a letter or digit and contain only letters, digits, '.', '_' or '-' (1-64 characters)")
	}

	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, " ") {
		return invalid("name cannot end with a dot or a space")
	}

	if _, reserved := reservedNames[strings.ToUpper(name)]; reserved {
		return invalid("name is a reserved device name on Windows")
	}

	return ValidationResult{Valid: true}
}

func invalid(message string) ValidationResult {
	return ValidationResult{Valid: false, Message: message}
}
