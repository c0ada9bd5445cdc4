// Package logging builds slog loggers for cinelog.
//
// Two output formats are supported: a console format that renders
// "TIMESTAMP LEVEL component: message key=value" lines (with level colors
// when writing to a terminal), and a JSON format for machine consumption.
// Standardized field keys keep run and movie identifiers consistent across
// components.
package logging
