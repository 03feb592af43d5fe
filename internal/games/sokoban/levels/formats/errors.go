package formats

import "fmt"

// Error codes reported by the level parsers.
const (
	CodeEmptyBoard      = "EMPTY_BOARD"
	CodeNoPlayer        = "NO_PLAYER"
	CodeMultiplePlayers = "MULTIPLE_PLAYERS"
	CodeTooFewSinks     = "TOO_FEW_SINKS"
	CodeBadMetadata     = "BAD_METADATA"
	CodeBadYAML         = "BAD_YAML"
)

// ParseError describes why a level file could not be turned into a board.
// Line is 1-based and zero when the problem is not tied to a line.
type ParseError struct {
	File    string
	Line    int
	Code    string
	Message string
}

func (e *ParseError) Error() string {
	loc := e.File
	if loc == "" {
		loc = "<input>"
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	return fmt.Sprintf("%s: %s: %s", loc, e.Code, e.Message)
}

func errorf(line int, code, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Code: code, Message: fmt.Sprintf(format, args...)}
}
