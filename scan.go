package wad

import (
	"github.com/zeebo/errs"
)

// Mode selects what a scan emits.
type Mode int

const (
	ModeList     Mode = iota // Every lump's directory entry
	ModeMaps                 // Only map marker lumps
	ModeRaw                  // Raw contents of lumps matching Selector.Lump
	ModeThings               // Decoded THINGS lumps
	ModeLinedefs             // Decoded LINEDEFS lumps
	ModeSidedefs             // Decoded SIDEDEFS lumps
	ModeVertexes             // Decoded VERTEXES lumps
	ModeSectors              // Decoded SECTORS lumps
)

var modeNames = map[Mode]string{
	ModeList:     "list",
	ModeMaps:     "maps",
	ModeRaw:      "raw",
	ModeThings:   "THINGS",
	ModeLinedefs: "LINEDEFS",
	ModeSidedefs: "SIDEDEFS",
	ModeVertexes: "VERTEXES",
	ModeSectors:  "SECTORS",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// Decodes reports whether the mode decodes map lumps.
func (m Mode) Decodes() bool {
	return m >= ModeThings && m <= ModeSectors
}

// Selector is the read-only configuration of a scan.
type Selector struct {
	Mode Mode

	// Lump is the name pattern for ModeRaw. Matching is case-sensitive.
	Lump string

	// Map, when set, restricts the scan to the lumps of the map it names.
	// It may contain wildcards.
	Map string

	// Strict rejects map lumps that are not a whole number of records.
	Strict bool
}

// Validate checks the selector for combinations a scan cannot honor.
func (s Selector) Validate() error {
	if _, ok := modeNames[s.Mode]; !ok {
		return errs.New("unknown mode %d", s.Mode)
	}
	if s.Mode == ModeRaw && s.Lump == "" {
		return errs.New("raw mode needs a lump name")
	}
	return nil
}

// Emission is one unit of scan output. Exactly one of the payload fields is
// set in the decode and raw modes; the listing modes carry only the lump.
type Emission struct {
	Mode  Mode
	Index int      // Position of the lump in the directory
	Lump  LumpInfo // Directory entry
	First bool     // First emission of the scan; renderers print headers here

	Raw      []byte
	Things   []Thing
	Linedefs []Linedef
	Sidedefs []Sidedef
	Vertexes []Vertex
	Sectors  []Sector
}

// emitContext is the per-scan state of the dispatcher.
type emitContext struct {
	emitted int
}

// dispatcher decides for each lump whether and how it is emitted.
type dispatcher struct {
	sel     Selector
	lump    Pattern
	decoder Decoder
	ctx     emitContext
}

func newDispatcher(sel Selector) *dispatcher {
	return &dispatcher{
		sel:     sel,
		lump:    CompilePattern(sel.Lump),
		decoder: Decoder{Strict: sel.Strict},
	}
}

// selects reports whether the lump is emitted in the active mode.
func (d *dispatcher) selects(l LumpInfo) bool {
	switch d.sel.Mode {
	case ModeList:
		return true
	case ModeMaps:
		return IsMapMarker(l.Name)
	case ModeRaw:
		return d.lump.Match(l.Name)
	case ModeThings, ModeLinedefs, ModeSidedefs, ModeVertexes, ModeSectors:
		return l.Name.String() == d.sel.Mode.String()
	}
	return false
}

// process builds the emission for one lump. ok is false when the lump is
// skipped in this mode.
func (d *dispatcher) process(w *WAD, index int, l LumpInfo) (e Emission, ok bool, err error) {
	if !d.selects(l) {
		return e, false, nil
	}
	e = Emission{Mode: d.sel.Mode, Index: index, Lump: l}

	if d.sel.Mode == ModeRaw || d.sel.Mode.Decodes() {
		lump, err := w.ReadLump(l)
		if err != nil {
			return e, false, err
		}
		switch d.sel.Mode {
		case ModeRaw:
			e.Raw = lump
		case ModeThings:
			e.Things, err = d.decoder.Things(lump)
		case ModeLinedefs:
			e.Linedefs, err = d.decoder.Linedefs(lump)
		case ModeSidedefs:
			e.Sidedefs, err = d.decoder.Sidedefs(lump)
		case ModeVertexes:
			e.Vertexes, err = d.decoder.Vertexes(lump)
		case ModeSectors:
			e.Sectors, err = d.decoder.Sectors(lump)
		}
		if err != nil {
			return e, false, err
		}
	}

	e.First = d.ctx.emitted == 0
	d.ctx.emitted++
	return e, true, nil
}

// Scan walks the directory in order and calls fn for every lump the selector
// emits. Each scan starts with fresh map tracking and header state. Scan
// stops at the first error from reading a lump or from fn.
func (w *WAD) Scan(sel Selector, fn func(Emission) error) error {
	if err := sel.Validate(); err != nil {
		return err
	}
	logger.Printf("Scanning %v lumps (mode %v)", len(w.Lumps), sel.Mode)

	d := newDispatcher(sel)
	tracker := NewMapTracker(sel.Map)
	for i, l := range w.Lumps {
		if tracker.Next(l.Name) != Inside {
			continue
		}
		e, ok, err := d.process(w, i, l)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	logger.Printf("Emitted %v lumps", d.ctx.emitted)
	return nil
}

// Emissions runs Scan and collects its output.
func (w *WAD) Emissions(sel Selector) ([]Emission, error) {
	var out []Emission
	err := w.Scan(sel, func(e Emission) error {
		out = append(out, e)
		return nil
	})
	return out, err
}

// Handler receives the output of ScanFiles.
type Handler interface {
	// File is called once per successfully opened file, before its emissions.
	File(name string, h Header) error
	// Emit is called for each emission of the file.
	Emit(name string, e Emission) error
	// Fail is called when a file cannot be opened or its scan stops with
	// an error, before the next file is started.
	Fail(name string, err error)
}

// ScanFile opens one file, reports its header to h and scans it.
func ScanFile(name string, sel Selector, h Handler) (err error) {
	w, err := Open(name)
	if err != nil {
		return err
	}
	defer func() { err = errs.Combine(err, w.Close()) }()

	if err := h.File(name, w.Header); err != nil {
		return err
	}
	return w.Scan(sel, func(e Emission) error {
		return h.Emit(name, e)
	})
}

// ScanFiles scans the named files one after another. A failure in one file
// is recorded and does not stop the files after it. The returned error
// combines every per-file failure.
func ScanFiles(names []string, sel Selector, h Handler) error {
	if err := sel.Validate(); err != nil {
		return err
	}
	var group errs.Group
	for _, name := range names {
		if err := ScanFile(name, sel, h); err != nil {
			logger.Printf("Err: %v: %v", name, err)
			h.Fail(name, err)
			group.Add(FileError{Name: name, Err: err})
		}
	}
	return group.Err()
}

// FileError ties a scan failure to the file it happened in.
type FileError struct {
	Name string
	Err  error
}

func (e FileError) Error() string { return e.Name + ": " + e.Err.Error() }
func (e FileError) Unwrap() error { return e.Err }
