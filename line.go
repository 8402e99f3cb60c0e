package wad

// Linedef is one 14 byte entry of a LINEDEFS lump. A sidedef number of -1
// means the line has no side there.
type Linedef struct {
	StartVertex  int16
	EndVertex    int16
	Flags        int16
	Special      int16
	Tag          int16
	FrontSidedef int16
	BackSidedef  int16
}

// Linedef flag bits
const (
	LineBlockPlayersAndMonsters = 0x001
	LineBlockMonsters           = 0x002
	LineTwoSided                = 0x004
	LineUpperTextureUnpegged    = 0x008
	LineLowerTextureUnpegged    = 0x010
	LineSecret                  = 0x020 // Shown as one-sided on the automap
	LineBlocksSound             = 0x040
	LineNeverMap                = 0x080
	LineAlwaysMap               = 0x100
)

func (l Linedef) has(bit int16) bool { return l.Flags&bit != 0 }

func (l Linedef) BlocksPlayersAndMonsters() bool { return l.has(LineBlockPlayersAndMonsters) }
func (l Linedef) BlocksMonsters() bool           { return l.has(LineBlockMonsters) }
func (l Linedef) TwoSided() bool                 { return l.has(LineTwoSided) }
func (l Linedef) UpperTextureUnpegged() bool     { return l.has(LineUpperTextureUnpegged) }
func (l Linedef) LowerTextureUnpegged() bool     { return l.has(LineLowerTextureUnpegged) }
func (l Linedef) Secret() bool                   { return l.has(LineSecret) }
func (l Linedef) BlocksSound() bool              { return l.has(LineBlocksSound) }
func (l Linedef) NeverMap() bool                 { return l.has(LineNeverMap) }
func (l Linedef) AlwaysMap() bool                { return l.has(LineAlwaysMap) }

// HasBackSide reports whether the line references a back sidedef.
func (l Linedef) HasBackSide() bool {
	return l.BackSidedef >= 0
}
