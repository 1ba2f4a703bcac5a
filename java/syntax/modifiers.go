package syntax

import "strings"

// Modifiers is the set of modifiers written on a declaration. The low bits
// reuse the JVM access flag values; source-only modifiers live above them.
type Modifiers uint32

const (
	ModPublic       Modifiers = 0x0001
	ModPrivate      Modifiers = 0x0002
	ModProtected    Modifiers = 0x0004
	ModStatic       Modifiers = 0x0008
	ModFinal        Modifiers = 0x0010
	ModSynchronized Modifiers = 0x0020
	ModVolatile     Modifiers = 0x0040
	ModTransient    Modifiers = 0x0080
	ModNative       Modifiers = 0x0100
	ModInterface    Modifiers = 0x0200
	ModAbstract     Modifiers = 0x0400
	ModStrict       Modifiers = 0x0800
	ModAnnotation   Modifiers = 0x2000
	ModEnum         Modifiers = 0x4000

	ModDefault   Modifiers = 0x10000
	ModSealed    Modifiers = 0x20000
	ModNonSealed Modifiers = 0x40000
	ModRecord    Modifiers = 0x80000
)

func (m Modifiers) IsPublic() bool       { return m&ModPublic != 0 }
func (m Modifiers) IsPrivate() bool      { return m&ModPrivate != 0 }
func (m Modifiers) IsProtected() bool    { return m&ModProtected != 0 }
func (m Modifiers) IsStatic() bool       { return m&ModStatic != 0 }
func (m Modifiers) IsFinal() bool        { return m&ModFinal != 0 }
func (m Modifiers) IsSynchronized() bool { return m&ModSynchronized != 0 }
func (m Modifiers) IsVolatile() bool     { return m&ModVolatile != 0 }
func (m Modifiers) IsTransient() bool    { return m&ModTransient != 0 }
func (m Modifiers) IsNative() bool       { return m&ModNative != 0 }
func (m Modifiers) IsAbstract() bool     { return m&ModAbstract != 0 }
func (m Modifiers) IsEnum() bool         { return m&ModEnum != 0 }
func (m Modifiers) IsDefault() bool      { return m&ModDefault != 0 }

// keywordModifiers lists keyword modifiers in canonical source order.
var keywordModifiers = []struct {
	keyword string
	mod     Modifiers
}{
	{"public", ModPublic},
	{"protected", ModProtected},
	{"private", ModPrivate},
	{"abstract", ModAbstract},
	{"static", ModStatic},
	{"final", ModFinal},
	{"sealed", ModSealed},
	{"non-sealed", ModNonSealed},
	{"default", ModDefault},
	{"transient", ModTransient},
	{"volatile", ModVolatile},
	{"synchronized", ModSynchronized},
	{"native", ModNative},
	{"strictfp", ModStrict},
}

// ModifierFromKeyword returns the modifier bit for a Java modifier keyword.
func ModifierFromKeyword(keyword string) (Modifiers, bool) {
	for _, km := range keywordModifiers {
		if km.keyword == keyword {
			return km.mod, true
		}
	}
	return 0, false
}

// Visibility returns "public", "protected", "private" or "package".
func (m Modifiers) Visibility() string {
	switch {
	case m.IsPublic():
		return "public"
	case m.IsProtected():
		return "protected"
	case m.IsPrivate():
		return "private"
	}
	return "package"
}

// Keywords returns the keyword modifiers in canonical order. Marker bits
// such as ModEnum and ModRecord have no keyword and are not included.
func (m Modifiers) Keywords() []string {
	var out []string
	for _, km := range keywordModifiers {
		if m&km.mod != 0 {
			out = append(out, km.keyword)
		}
	}
	return out
}

func (m Modifiers) String() string {
	return strings.Join(m.Keywords(), " ")
}
