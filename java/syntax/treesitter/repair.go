package treesitter

import "bytes"

// placeholder is the member name inserted after a dangling '.'.
const placeholder = "x"

// closeDanglingAccess inserts placeholder after every '.' that ends an
// operand and is followed, past blanks and comments, by a closing
// delimiter or the end of input. This is the shape of a file being edited
// at "this." and without it tree-sitter reads the next line as the member
// name. Columns after an insertion shift on that line; lines do not.
func closeDanglingAccess(src []byte) ([]byte, bool) {
	var out []byte
	last := 0
	for i := range src {
		if src[i] != '.' || !danglingDot(src, i) {
			continue
		}
		out = append(out, src[last:i+1]...)
		out = append(out, placeholder...)
		last = i + 1
	}
	if out == nil {
		return src, false
	}
	return append(out, src[last:]...), true
}

func danglingDot(src []byte, i int) bool {
	if i+1 < len(src) && src[i+1] == '.' {
		return false
	}
	j := i - 1
	for j >= 0 && isBlank(src[j]) {
		j--
	}
	if j < 0 {
		return false
	}
	switch c := src[j]; {
	case c == ')' || c == ']':
	case isIdentByte(c):
		// "1." is a floating point literal.
		start := j
		for start > 0 && isIdentByte(src[start-1]) {
			start--
		}
		if src[start] >= '0' && src[start] <= '9' {
			return false
		}
	default:
		return false
	}

	k := skipBlanksAndComments(src, i+1)
	if k == len(src) {
		return true
	}
	switch src[k] {
	case '}', ')', ']', ';', ',':
		return true
	}
	return false
}

func skipBlanksAndComments(src []byte, k int) int {
	for k < len(src) {
		switch {
		case isBlank(src[k]):
			k++
		case bytes.HasPrefix(src[k:], []byte("//")):
			nl := bytes.IndexByte(src[k:], '\n')
			if nl < 0 {
				return len(src)
			}
			k += nl + 1
		case bytes.HasPrefix(src[k:], []byte("/*")):
			end := bytes.Index(src[k+2:], []byte("*/"))
			if end < 0 {
				return len(src)
			}
			k += end + 4
		default:
			return k
		}
	}
	return k
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// isIdentByte accepts any non-ASCII byte as part of a Unicode identifier.
func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
