package wad

import (
	"bytes"
	"encoding/binary"
	"math"

	"golang.org/x/exp/constraints"
)

// Thing is one 10 byte entry of a THINGS lump.
type Thing struct {
	X     int16
	Y     int16
	Angle int16 // Degrees, 0 is east
	Type  int16
	Flags uint16
}

// Thing option bits
const (
	ThingSkill1and2      = 0x01
	ThingSkill3          = 0x02
	ThingSkill4and5      = 0x04
	ThingAmbush          = 0x08
	ThingMultiplayerOnly = 0x10
)

func (t Thing) Skill1and2() bool      { return t.Flags&ThingSkill1and2 != 0 }
func (t Thing) Skill3() bool          { return t.Flags&ThingSkill3 != 0 }
func (t Thing) Skill4and5() bool      { return t.Flags&ThingSkill4and5 != 0 }
func (t Thing) Ambush() bool          { return t.Flags&ThingAmbush != 0 }
func (t Thing) MultiplayerOnly() bool { return t.Flags&ThingMultiplayerOnly != 0 }

// Radians returns the facing angle in radians.
func (t Thing) Radians() float64 {
	return degreesToRadians(t.Angle)
}

// Sidedef is one 30 byte entry of a SIDEDEFS lump. Texture names are the raw
// eight bytes from the lump and need not be NUL terminated or printable.
type Sidedef struct {
	XOffset       int16
	YOffset       int16
	UpperTexture  String8
	LowerTexture  String8
	MiddleTexture String8
	Sector        int16
}

// Vertex is one 4 byte entry of a VERTEXES lump.
type Vertex struct {
	X, Y int16
}

// Sector is one 26 byte entry of a SECTORS lump.
type Sector struct {
	FloorHeight    int16
	CeilingHeight  int16
	FloorTexture   String8
	CeilingTexture String8
	LightLevel     int16
	Special        int16
	Tag            int16
}

// Record is any fixed-width map lump entry.
type Record interface {
	Thing | Linedef | Sidedef | Vertex | Sector
}

// Stride returns the on-disk size of one record of type T.
func Stride[T Record]() int {
	var zero T
	return binary.Size(zero)
}

// Decoder decodes map lumps into records. The zero Decoder drops any
// trailing bytes that do not make up a whole record. A Strict decoder
// rejects such lumps with a FormatError instead.
type Decoder struct {
	Strict bool
}

func (d Decoder) Things(lump []byte) ([]Thing, error)     { return decodeRecords[Thing](lump, d.Strict) }
func (d Decoder) Linedefs(lump []byte) ([]Linedef, error) { return decodeRecords[Linedef](lump, d.Strict) }
func (d Decoder) Sidedefs(lump []byte) ([]Sidedef, error) { return decodeRecords[Sidedef](lump, d.Strict) }
func (d Decoder) Vertexes(lump []byte) ([]Vertex, error)  { return decodeRecords[Vertex](lump, d.Strict) }
func (d Decoder) Sectors(lump []byte) ([]Sector, error)   { return decodeRecords[Sector](lump, d.Strict) }

// DecodeThings decodes a THINGS lump, dropping any partial trailing record.
func DecodeThings(lump []byte) []Thing {
	things, _ := Decoder{}.Things(lump)
	return things
}

// DecodeLinedefs decodes a LINEDEFS lump, dropping any partial trailing record.
func DecodeLinedefs(lump []byte) []Linedef {
	lines, _ := Decoder{}.Linedefs(lump)
	return lines
}

// DecodeSidedefs decodes a SIDEDEFS lump, dropping any partial trailing record.
func DecodeSidedefs(lump []byte) []Sidedef {
	sides, _ := Decoder{}.Sidedefs(lump)
	return sides
}

// DecodeVertexes decodes a VERTEXES lump, dropping any partial trailing record.
func DecodeVertexes(lump []byte) []Vertex {
	vertexes, _ := Decoder{}.Vertexes(lump)
	return vertexes
}

// DecodeSectors decodes a SECTORS lump, dropping any partial trailing record.
func DecodeSectors(lump []byte) []Sector {
	sectors, _ := Decoder{}.Sectors(lump)
	return sectors
}

func decodeRecords[T Record](lump []byte, strict bool) ([]T, error) {
	stride := Stride[T]()
	count := recordCount(len(lump), stride)
	if rem := len(lump) - count*stride; rem != 0 {
		if strict {
			return nil, FormatError.New("lump of %d bytes is not a multiple of %d byte records", len(lump), stride)
		}
		logger.Printf("Dropping %v trailing bytes", rem)
	}

	records := make([]T, count)
	if err := binary.Read(bytes.NewReader(lump[:count*stride]), binary.LittleEndian, records); err != nil {
		return nil, readError(&TruncatedRead, err)
	}
	return records, nil
}

// recordCount returns the number of whole records of the given stride in size bytes.
func recordCount[T constraints.Integer](size T, stride int) int {
	if size <= 0 {
		return 0
	}
	return int(size) / stride
}

// degreesToRadians
func degreesToRadians[T constraints.Integer | constraints.Float](n T) float64 {
	return float64(n) * (math.Pi / 180)
}
