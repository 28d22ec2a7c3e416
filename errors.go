package rsm

import "fmt"

//Errors

// Error is the interface for errors that the core package implements. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else. The decorate slice should contain a list of functions in the calling
// stack, plus, for each function, any relevant information, or nothing. If information is to be added to an element of the slice, it should be
// in this format: "FunctionName: Extra info". If passed an empty string, Decorate should just return the current value, not add the empty
// string to the slice.
type Error interface {
	Error() string
	Decorate(string) []string
}

// ParseError signals a malformed raw-data file: a missing or misordered
// header, a missing scan axis, or an offset/count mismatch. It is always
// fatal; a file either parses completely or not at all.
type ParseError struct {
	message  string
	filename string
	deco     []string
}

func (err ParseError) Error() string {
	if err.filename != "" {
		return fmt.Sprintf("goRSM: %s (file %s)", err.message, err.filename)
	}
	return fmt.Sprintf("goRSM: %s", err.message)
}

func (err ParseError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// FileName returns the name of the offending file, if known.
func (err ParseError) FileName() string { return err.filename }

func parseErrorf(format string, args ...interface{}) ParseError {
	return ParseError{message: fmt.Sprintf(format, args...)}
}

// ConfigError signals an inconsistent set of transform options, such as a
// crop mode that requires bounds when none were supplied.
type ConfigError struct {
	message string
	deco    []string
}

func (err ConfigError) Error() string { return "goRSM: " + err.message }

func (err ConfigError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// GeometryError is reserved for scan-axis conventions the transform can
// not turn into (qx, qz). It is not reachable with the two conventions
// currently supported, but callers should still expect it.
type GeometryError struct {
	message string
	deco    []string
}

func (err GeometryError) Error() string { return "goRSM: " + err.message }

func (err GeometryError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

const (
	errHeaderNotFound = "*START, *STOP, *STEP and *OFFSET not found as consecutive header fields"
	errNoScanAxis     = "no *SCAN_AXIS field in file"
	errNoScanBlocks   = "no *COUNT scan blocks in file"
)
