package token

// Type is the type of a token.
type Type string

// Token represents one classified source line.
type Token struct {
	Type Type
	// Name is the header id, block name or parameter name.
	Name string
	// Value is the trimmed parameter value, or the refkey of a header.
	Value string
	// Literal is the line as read, without the line ending.
	Literal string
	Line    int
	// Indented reports whether the line starts with whitespace.
	Indented bool
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // A line matching no production
	EOF     Type = "EOF"     // End of file

	// Structure
	BEGIN Type = "BEGIN" // <name> : struct.begin [{refkey=...}]
	END   Type = "END"   // struct.end

	// Fields
	PARAM Type = "PARAM" // <name> = <value>
)

// Keywords of the struct format.
const (
	StructBegin = "struct.begin"
	StructEnd   = "struct.end"
	RefKeyOpen  = "{refkey="
)

// IsHeader reports whether t opens the outer struct of a file.
func (t Token) IsHeader() bool {
	return t.Type == BEGIN && !t.Indented
}
