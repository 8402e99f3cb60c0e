package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/zeebo/errs"

	"github.com/stuarthighley/wadcat"
)

// printer renders scan output as text tables. It implements wad.Handler.
type printer struct {
	w     io.Writer
	short bool // Names only, no headers
	sep   byte // Row separator
	multi bool // Several files; print a banner per file
	err   error

	opened string // Last file whose header was printed
}

func newPrinter(w io.Writer, short bool, sep byte, multi bool) *printer {
	return &printer{w: w, short: short, sep: sep, multi: multi}
}

// printf writes a formatted row followed by the row separator.
func (p *printer) printf(format string, args ...any) {
	p.write(p.sep, format, args...)
}

// println writes a formatted line that always ends in a newline, whatever
// the row separator is.
func (p *printer) println(format string, args ...any) {
	p.write('\n', format, args...)
}

func (p *printer) write(end byte, format string, args ...any) {
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintf(p.w, format, args...); err != nil {
		p.err = errs.Wrap(err)
		return
	}
	_, err := p.w.Write([]byte{end})
	p.err = errs.Wrap(err)
}

// flush returns and clears the first write error since the last flush.
func (p *printer) flush() error {
	err := p.err
	p.err = nil
	return err
}

func (p *printer) File(name string, h wad.Header) error {
	p.opened = name
	if p.short {
		return nil
	}
	if p.multi {
		p.println("File: %s", name)
	}
	magic := h.Magic[:]
	if i := bytes.IndexByte(magic, 0); i >= 0 {
		magic = magic[:i]
	}
	p.println("Header: %s", magic)
	p.println("%s | Lumps: %d | Diroffs: %08x", h.Kind, h.NumLumps, uint32(h.InfoTableOfs))
	return p.flush()
}

// Fail reports a file that could not be opened or scanned inline, so it
// lands between the output of its neighbours.
func (p *printer) Fail(name string, err error) {
	if p.short {
		return
	}
	if p.opened != name {
		if p.multi {
			p.println("File: %s", name)
		}
		p.println("Error opening %s", name)
	} else {
		p.println("Error reading %s: %v", name, err)
	}
	// The scan error is returned by ScanFiles; only a write failure is lost.
	_ = p.flush()
}

func (p *printer) Emit(_ string, e wad.Emission) error {
	switch e.Mode {
	case wad.ModeList, wad.ModeMaps:
		p.lump(e)
	case wad.ModeRaw:
		if _, err := p.w.Write(e.Raw); err != nil {
			return errs.Wrap(err)
		}
	case wad.ModeThings:
		p.things(e)
	case wad.ModeLinedefs:
		p.linedefs(e)
	case wad.ModeSidedefs:
		p.sidedefs(e)
	case wad.ModeVertexes:
		p.vertexes(e)
	case wad.ModeSectors:
		p.sectors(e)
	}
	return p.flush()
}

func (p *printer) lump(e wad.Emission) {
	if p.short {
		p.printf("%s", e.Lump.Name)
		return
	}
	if e.First {
		p.printf("Pos      | Size     | Name")
		p.printf("------------------------------")
	}
	p.printf("%08X | %08X | %s", uint32(e.Lump.Filepos), uint32(e.Lump.Size), e.Lump.Name)
}

func (p *printer) things(e wad.Emission) {
	if e.First {
		p.printf("%-6s | %-6s | %-6s | %-6s | %-6s | %-6s", "Thing", "X pos", "Y pos", "Angle", "Type", "Flags")
	}
	for i, t := range e.Things {
		p.printf("% 6d | % 6d | % 6d | % 6d | % 6d | %06x", i, t.X, t.Y, t.Angle, t.Type, t.Flags)
	}
}

func (p *printer) linedefs(e wad.Emission) {
	if e.First {
		p.printf("%-7s | %-6s | %-6s | %-4s | %-6s | %-6s | %-6s | %-6s", "Linedef", "Start", "End", "Flag", "Spc", "Tag", "Front", "Back")
	}
	for i, l := range e.Linedefs {
		p.printf("%-7d | %-6d | %-6d | %04x | %-6d | %-6d | %-6d | %-6d",
			i, l.StartVertex, l.EndVertex, uint16(l.Flags), l.Special, l.Tag, l.FrontSidedef, l.BackSidedef)
	}
}

func (p *printer) sidedefs(e wad.Emission) {
	if e.First {
		p.printf("%-7s | %-6s | %-6s | %-8s | %-8s | %-8s | %-6s", "Sidedef", "X", "Y", "Upper", "Lower", "Middle", "Sector")
	}
	for i, s := range e.Sidedefs {
		p.printf("%-7d | %-6d | %-6d | %-8s | %-8s | %-8s | %-6d",
			i, s.XOffset, s.YOffset, s.UpperTexture, s.LowerTexture, s.MiddleTexture, s.Sector)
	}
}

func (p *printer) vertexes(e wad.Emission) {
	if e.First {
		p.printf("%-6s | %-6s | %-6s", "Vertex", "X", "Y")
	}
	for i, v := range e.Vertexes {
		p.printf("% 6d | % 6d | % 6d", i, v.X, v.Y)
	}
}

func (p *printer) sectors(e wad.Emission) {
	if e.First {
		p.printf("%-6s | %-6s | %-6s | %-8s | %-8s | %-6s | %-6s | %-6s", "Sector", "Floor", "Ceil", "FTex", "CTex", "Light", "Spc", "Tag")
	}
	for i, s := range e.Sectors {
		p.printf("% 6d | % 6d | % 6d | %-8s | %-8s | % 6d | % 6d | % 6d",
			i, s.FloorHeight, s.CeilingHeight, s.FloorTexture, s.CeilingTexture, s.LightLevel, s.Special, s.Tag)
	}
}
