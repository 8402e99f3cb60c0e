package wad

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, v any) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
	return buf.Bytes()
}

func TestStride(t *testing.T) {
	require.Equal(t, 10, Stride[Thing]())
	require.Equal(t, 14, Stride[Linedef]())
	require.Equal(t, 30, Stride[Sidedef]())
	require.Equal(t, 4, Stride[Vertex]())
	require.Equal(t, 26, Stride[Sector]())
}

func TestDecodeThingsTruncates(t *testing.T) {
	things := []Thing{
		{X: 1, Y: 2, Angle: 90, Type: 1, Flags: 7},
		{X: -1024, Y: 3072, Angle: 270, Type: 3004, Flags: 0x0c},
		{X: 0, Y: 0, Angle: 0, Type: 2001, Flags: 0x10},
	}
	lump := encode(t, things)

	for r := 0; r < 10; r++ {
		data := append(append([]byte{}, lump...), make([]byte, r)...)
		require.Equal(t, things, DecodeThings(data), "remainder %d", r)
	}

	require.Empty(t, DecodeThings(nil))
	require.Empty(t, DecodeThings(make([]byte, 9)))
}

func TestDecodeStrict(t *testing.T) {
	d := Decoder{Strict: true}

	things, err := d.Things(make([]byte, 20))
	require.NoError(t, err)
	require.Len(t, things, 2)

	_, err = d.Things(make([]byte, 21))
	require.Error(t, err)
	require.True(t, FormatError.Has(err))

	_, err = d.Sectors(make([]byte, 25))
	require.True(t, FormatError.Has(err))

	vertexes, err := Decoder{}.Vertexes(make([]byte, 7))
	require.NoError(t, err)
	require.Len(t, vertexes, 1)
}

func TestDecodeSignedness(t *testing.T) {
	lump := []byte{
		0xff, 0xff, // x
		0x00, 0x80, // y
		0x5a, 0x00, // angle
		0xd9, 0x07, // type
		0xff, 0xff, // flags
	}
	require.Equal(t, []Thing{{X: -1, Y: math.MinInt16, Angle: 90, Type: 2009, Flags: math.MaxUint16}}, DecodeThings(lump))

	lines := DecodeLinedefs([]byte{
		0x01, 0x00, 0x02, 0x00, 0x04, 0x00, 0x0b, 0x00, 0x07, 0x00, 0x00, 0x00, 0xff, 0xff,
	})
	require.Equal(t, []Linedef{{StartVertex: 1, EndVertex: 2, Flags: 4, Special: 11, Tag: 7, FrontSidedef: 0, BackSidedef: -1}}, lines)
	require.True(t, lines[0].TwoSided())
	require.False(t, lines[0].HasBackSide())

	require.Equal(t, []Vertex{{X: -32, Y: 256}}, DecodeVertexes([]byte{0xe0, 0xff, 0x00, 0x01}))
}

func TestDecodeTextures(t *testing.T) {
	sides := []Sidedef{{
		XOffset:       -8,
		YOffset:       16,
		UpperTexture:  NewString8("STARTAN3"),
		LowerTexture:  String8{'-'},
		MiddleTexture: String8{'B', 'R', 0x01, 0xff, 'X', 'Y', 'Z', '!'},
		Sector:        42,
	}}
	got := DecodeSidedefs(encode(t, sides))
	require.Equal(t, sides, got)
	require.Equal(t, "STARTAN3", got[0].UpperTexture.String())
	require.Equal(t, "-", got[0].LowerTexture.String())
	require.Equal(t, "BR\x01\xffXYZ!", got[0].MiddleTexture.String())

	sectors := []Sector{{
		FloorHeight:    -16,
		CeilingHeight:  128,
		FloorTexture:   NewString8("FLOOR4_8"),
		CeilingTexture: NewString8("F_SKY1"),
		LightLevel:     160,
		Special:        9,
		Tag:            3,
	}}
	require.Equal(t, sectors, DecodeSectors(encode(t, sectors)))
}

func TestThingFlags(t *testing.T) {
	thing := Thing{Angle: 180, Flags: ThingSkill3 | ThingAmbush}
	require.False(t, thing.Skill1and2())
	require.True(t, thing.Skill3())
	require.False(t, thing.Skill4and5())
	require.True(t, thing.Ambush())
	require.False(t, thing.MultiplayerOnly())
	require.InDelta(t, math.Pi, thing.Radians(), 1e-9)
}

func TestLinedefFlags(t *testing.T) {
	line := Linedef{Flags: LineBlockPlayersAndMonsters | LineSecret | LineAlwaysMap, BackSidedef: 3}
	require.True(t, line.BlocksPlayersAndMonsters())
	require.False(t, line.BlocksMonsters())
	require.False(t, line.TwoSided())
	require.False(t, line.UpperTextureUnpegged())
	require.False(t, line.LowerTextureUnpegged())
	require.True(t, line.Secret())
	require.False(t, line.BlocksSound())
	require.False(t, line.NeverMap())
	require.True(t, line.AlwaysMap())
	require.True(t, line.HasBackSide())
}

func TestRecordCount(t *testing.T) {
	require.Equal(t, 0, recordCount(-10, 10))
	require.Equal(t, 0, recordCount(int32(9), 10))
	require.Equal(t, 3, recordCount(int64(39), 10))
}
