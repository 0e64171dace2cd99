package cli

import "fmt"

// FormatError formats an error message for consistent CLI output display.
func FormatError(err error) string {
	return fmt.Sprintf("Error: %v", err)
}

// FormatSuccess formats a success message for CLI output with a checkmark icon.
func FormatSuccess(msg string) string {
	return fmt.Sprintf("✓ %s", msg)
}

// FormatWarning formats a warning message for CLI output with a warning icon.
func FormatWarning(msg string) string {
	return fmt.Sprintf("⚠ %s", msg)
}
