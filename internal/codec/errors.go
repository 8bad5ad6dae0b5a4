package codec

import "fmt"

// ParseError reports a malformed or truncated record. Record is the 1-based
// index of the offending cue record; Token is the text that failed to parse.
type ParseError struct {
	Record int
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("record %d: %s", e.Record, e.Reason)
	}
	return fmt.Sprintf("record %d: %s: %q", e.Record, e.Reason, e.Token)
}

// UnsupportedFormatError reports an unknown format hint.
type UnsupportedFormatError struct {
	Hint string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported subtitle format %q", e.Hint)
}

// SerializeError reports a style configuration value outside its accepted
// range.
type SerializeError struct {
	Field  string
	Reason string
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("style %s: %s", e.Field, e.Reason)
}
