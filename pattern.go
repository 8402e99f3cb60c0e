package wad

import "strings"

// Wildcard is the pattern character that stands for any byte.
const Wildcard = 'x'

// ElemKind says how a pattern position is compared.
type ElemKind uint8

const (
	// Literal positions must equal the name byte exactly (case-sensitive).
	Literal ElemKind = iota
	// AnyByte positions accept every byte value, not only digits, so "MAPxx"
	// matches "MAP!!" as well as "MAP01".
	AnyByte
)

// Elem is one position of a Pattern.
type Elem struct {
	Kind ElemKind
	Byte byte
}

func (e Elem) matches(c byte) bool {
	return e.Kind == AnyByte || e.Byte == c
}

// Pattern is an eight position template for lump names. Positions past the
// end of the source string are literal NULs.
type Pattern [8]Elem

// CompilePattern builds a Pattern from s. Each Wildcard becomes AnyByte and
// every other byte a literal. Bytes beyond the eighth are ignored.
func CompilePattern(s string) Pattern {
	var p Pattern
	for i := 0; i < len(p) && i < len(s); i++ {
		if s[i] == Wildcard {
			p[i] = Elem{Kind: AnyByte}
		} else {
			p[i] = Elem{Kind: Literal, Byte: s[i]}
		}
	}
	return p
}

// Match walks name up to its first NUL and compares each byte against the
// pattern. The walk ends successfully at the name's terminator even when
// pattern positions remain, so a name matches any pattern it is a prefix of:
// "MAP1" matches "MAPxx".
func (p Pattern) Match(name String8) bool {
	for i, c := range name {
		if c == 0 {
			break
		}
		if !p[i].matches(c) {
			return false
		}
	}
	return true
}

// MatchString is Match for a name given as a string.
func (p Pattern) MatchString(name string) bool {
	return p.Match(NewString8(name))
}

func (p Pattern) String() string {
	var b strings.Builder
	for _, e := range p {
		if e.Kind == AnyByte {
			b.WriteByte(Wildcard)
			continue
		}
		if e.Byte == 0 {
			break
		}
		b.WriteByte(e.Byte)
	}
	return b.String()
}

// Map marker lumps: MAPxx in Doom II style archives, ExMx in Doom 1 style.
var mapMarkers = []Pattern{
	CompilePattern("MAPxx"),
	CompilePattern("ExMx"),
}

// Lumps that follow a map marker and carry that map's data.
var mapDataLumps = []Pattern{
	CompilePattern("THINGS"),
	CompilePattern("LINEDEFS"),
	CompilePattern("SIDEDEFS"),
	CompilePattern("VERTEXES"),
	CompilePattern("SEGS"),
	CompilePattern("SSECTORS"),
	CompilePattern("NODES"),
	CompilePattern("SECTORS"),
	CompilePattern("REJECT"),
	CompilePattern("BLOCKMAP"),
	CompilePattern("BEHAVIOR"),
	CompilePattern("SCRIPTS"),
	CompilePattern("LEAFS"),
	CompilePattern("LIGHTS"),
	CompilePattern("MACROS"),
	CompilePattern("GL_VERT"),
	CompilePattern("GL_SEGS"),
	CompilePattern("GL_SSECT"),
	CompilePattern("GL_NODES"),
	CompilePattern("GL_PVS"),
}

// IsMapMarker reports whether name starts a map (MAPxx or ExMx).
func IsMapMarker(name String8) bool {
	return matchAny(mapMarkers, name)
}

// IsMapData reports whether name is one of the known map data lumps.
func IsMapData(name String8) bool {
	return matchAny(mapDataLumps, name)
}

func matchAny(patterns []Pattern, name String8) bool {
	for _, p := range patterns {
		if p.Match(name) {
			return true
		}
	}
	return false
}
