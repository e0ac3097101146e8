package token

// Type is the type of a token.
type Type string

// Token represents a lexical token. Offset, Line and Column describe the
// input position right after the token was consumed.
type Token struct {
	Type    Type
	Literal string
	Offset  int
	Line    int
	Column  int
}

const (
	// Special tokens
	EOF Type = "EOF" // End of input, never part of a tokenized document

	// Structural tokens
	SEQUENCE_START Type = "["
	SEQUENCE_END   Type = "]"
	MAPPING_START  Type = "{"
	MAPPING_END    Type = "}"

	// Literals
	KEY    Type = "KEY"    // name:
	SCALAR Type = "SCALAR" // 'hello world', 8080
)

// IsStructural reports whether t opens or closes a list or a mapping.
func (t Type) IsStructural() bool {
	switch t {
	case SEQUENCE_START, SEQUENCE_END, MAPPING_START, MAPPING_END:
		return true
	}
	return false
}

// Describe returns a short human readable name of the token type, used in
// error messages.
func (t Type) Describe() string {
	switch t {
	case SEQUENCE_START:
		return "'['"
	case SEQUENCE_END:
		return "']'"
	case MAPPING_START:
		return "'{'"
	case MAPPING_END:
		return "'}'"
	case KEY:
		return "key"
	case SCALAR:
		return "scalar"
	}
	return string(t)
}
