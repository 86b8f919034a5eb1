package scanner

// state is the lexical state of the boundary scanner.
type state int

const (
	stateNormal state = iota
	stateSingleQuote
	stateDoubleQuote
	stateTemplate
)

// Boundary describes where an opening tag ends.
type Boundary struct {
	// Close is the offset of the '>' that terminates the opening tag.
	Close int
	// SelfClosing reports whether the tag ends with "/>".
	SelfClosing bool
}

// End returns the offset just past the terminating '>'.
func (b Boundary) End() int {
	return b.Close + 1
}

// ScanBoundary scans src starting at pos, which must be the offset
// immediately after a recognized "<Name", and returns the boundary of the
// opening tag.
//
// Quotes are honored at every brace depth, so a '}' or '>' inside a string
// literal that is itself inside an expression attribute does not end
// anything. Backslash escapes apply only to strings inside expressions.
// Newlines have no special meaning. ErrBoundaryNotFound is returned when the input ends first.
func ScanBoundary(src string, pos int) (Boundary, error) {
	if pos < 0 {
		pos = 0
	}

	st := stateNormal
	depth := 0

	for i := pos; i < len(src); i++ {
		c := src[i]

		switch st {
		case stateSingleQuote, stateDoubleQuote, stateTemplate:
			if c == '\\' && depth > 0 {
				i++
				continue
			}
			if c == quoteOf(st) {
				st = stateNormal
			}
		case stateNormal:
			switch c {
			case '\'':
				st = stateSingleQuote
			case '"':
				st = stateDoubleQuote
			case '`':
				// Template literals only occur inside expressions.
				if depth > 0 {
					st = stateTemplate
				}
			case '{':
				depth++
			case '}':
				if depth > 0 {
					depth--
				}
			case '>':
				if depth == 0 {
					return Boundary{
						Close:       i,
						SelfClosing: i > pos && src[i-1] == '/',
					}, nil
				}
			}
		}
	}

	return Boundary{}, ErrBoundaryNotFound
}

func quoteOf(st state) byte {
	switch st {
	case stateSingleQuote:
		return '\''
	case stateTemplate:
		return '`'
	default:
		return '"'
	}
}
