// Package display renders iconrules results for the terminal.
//
// Output comes in a few formats: styled terminal output (lipgloss styles
// with adaptive colors, pterm tables), plain text when stdout is not a
// terminal or NO_COLOR is set, and machine readable YAML or TOML.
package display
