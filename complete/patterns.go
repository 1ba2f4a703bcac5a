package complete

import "regexp"

// Identifier matches a Java identifier.
const Identifier = `[\p{L}_$][\p{L}\p{N}_$]*`

// notIdent guards "this" against being the tail of a longer name.
const notIdent = `(?:^|[^\p{L}\p{N}_$])`

var (
	thisDot     = regexp.MustCompile(notIdent + `this\s*\.\s*$`)
	thisDotExpr = regexp.MustCompile(notIdent + `this\s*\.\s*(` + Identifier + `)$`)
)

// MatchThis reports whether statement ends in "this." or
// "this.<partial>", and returns the typed partial identifier.
func MatchThis(statement string) (prefix string, ok bool) {
	if thisDot.MatchString(statement) {
		return "", true
	}
	if m := thisDotExpr.FindStringSubmatch(statement); m != nil {
		return m[1], true
	}
	return "", false
}
