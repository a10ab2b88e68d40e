// Package logging builds the slog loggers used by the gif codec and its CLI.
//
// It owns the console and JSON handlers, level parsing and output routing,
// and a no-op logger for library callers that do not want output. Codec
// components tag their lines with a component attribute so reader and writer
// output can be told apart.
package logging
