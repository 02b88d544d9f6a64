// Package logger is a standardized event logging framework for shell sessions.
//
// Events are written as newline delimited JSON so a session can be audited or
// summarized after the fact with ReadJSONLinesLog and Report.
package logger
