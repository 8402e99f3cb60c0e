package wad

// MapState says whether the lump just seen belongs to the selected map.
type MapState int

const (
	Outside MapState = iota
	Inside
)

func (s MapState) String() string {
	if s == Inside {
		return "inside"
	}
	return "outside"
}

// MapTracker follows a directory scan one lump at a time and reports which
// lumps belong to the selected map. A map is its marker lump followed by the
// contiguous run of map data lumps after it; the run ends at the next marker
// or at the first lump that is not map data.
//
// A tracker with no target map is always Inside.
type MapTracker struct {
	target     Pattern
	restricted bool
	state      MapState
}

// NewMapTracker returns a tracker for the map named by target, which may
// contain wildcards. An empty target selects every lump.
func NewMapTracker(target string) *MapTracker {
	if target == "" {
		return &MapTracker{state: Inside}
	}
	return &MapTracker{
		target:     CompilePattern(target),
		restricted: true,
		state:      Outside,
	}
}

// Next advances the tracker past the lump called name and returns the
// resulting state. Lumps must be passed in directory order.
func (t *MapTracker) Next(name String8) MapState {
	if !t.restricted {
		return t.state
	}
	switch {
	case t.target.Match(name):
		t.state = Inside
	case IsMapMarker(name) || !IsMapData(name):
		t.state = Outside
	}
	return t.state
}

// State returns the state after the last call to Next.
func (t *MapTracker) State() MapState {
	return t.state
}
