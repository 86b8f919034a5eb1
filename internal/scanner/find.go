package scanner

// Kind classifies a located tag.
type Kind int

const (
	// Opening is a "<Name ...>" or "<Name .../>" tag with a known boundary.
	Opening Kind = iota
	// Closing is a "</Name>" tag.
	Closing
	// Unterminated is a "<Name" opening whose boundary could not be found.
	Unterminated
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Opening:
		return "opening"
	case Closing:
		return "closing"
	case Unterminated:
		return "unterminated"
	default:
		return "unknown"
	}
}

// Tag is one located occurrence of a target tag.
type Tag struct {
	Kind Kind
	Name string
	// Start is the offset of the leading '<'.
	Start int
	// End is the offset just past the terminating '>'. For Unterminated
	// tags it is the offset just past the name.
	End int
	// SelfClosing is set for opening tags ending in "/>".
	SelfClosing bool
	// Attrs is the raw text between the name and the terminating '>' or
	// "/>", with no trimming.
	Attrs string
}

// Close returns the offset of the terminating '>' of an opening tag.
func (t Tag) Close() int {
	return t.End - 1
}

// Find returns every opening and closing tag in src whose name is in
// names, in source order. An opening "<Name" must be followed by
// whitespace, '>' or '/' to match, so "<BoxGroup" never matches "Box".
//
// Openings that cannot be scanned are reported as Unterminated and the
// search resumes right after their name. Openings nested inside the
// expression attributes of another opening are reported as well.
func Find(src string, names TagSet) []Tag {
	if names.Len() == 0 {
		return nil
	}

	var tags []Tag
	for i := 0; i < len(src); i++ {
		if src[i] != '<' {
			continue
		}

		if i+1 < len(src) && src[i+1] == '/' {
			if tag, ok := closingAt(src, i, names); ok {
				tags = append(tags, tag)
				i = tag.End - 1
			}
			continue
		}

		name, nameEnd := readName(src, i+1)
		if name == "" || !names.Has(name) {
			continue
		}
		if nameEnd < len(src) && !isDelimiter(src[nameEnd]) {
			continue
		}

		b, err := ScanBoundary(src, nameEnd)
		if err != nil {
			tags = append(tags, Tag{
				Kind:  Unterminated,
				Name:  name,
				Start: i,
				End:   nameEnd,
			})
			i = nameEnd - 1
			continue
		}

		attrEnd := b.Close
		if b.SelfClosing {
			attrEnd--
		}
		tags = append(tags, Tag{
			Kind:        Opening,
			Name:        name,
			Start:       i,
			End:         b.End(),
			SelfClosing: b.SelfClosing,
			Attrs:       src[nameEnd:attrEnd],
		})
		i = nameEnd - 1
	}
	return tags
}

// closingAt matches "</Name>" with optional whitespace before '>'.
func closingAt(src string, at int, names TagSet) (Tag, bool) {
	name, j := readName(src, at+2)
	if name == "" || !names.Has(name) {
		return Tag{}, false
	}
	for j < len(src) && isSpace(src[j]) {
		j++
	}
	if j >= len(src) || src[j] != '>' {
		return Tag{}, false
	}
	return Tag{
		Kind:  Closing,
		Name:  name,
		Start: at,
		End:   j + 1,
	}, true
}

// readName reads a tag name starting at pos. Names may contain letters,
// digits, '_', '$', '.', ':' and '-' and must not start with a digit or
// punctuation other than '_' and '$'.
func readName(src string, pos int) (string, int) {
	if pos >= len(src) || !isNameStart(src[pos]) {
		return "", pos
	}
	j := pos + 1
	for j < len(src) && isNameChar(src[j]) {
		j++
	}
	return src[pos:j], j
}

func isNameStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9') || c == '.' || c == ':' || c == '-'
}

func isDelimiter(c byte) bool {
	return isSpace(c) || c == '>' || c == '/'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
