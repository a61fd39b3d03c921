package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names one of the debug overlays drawn over the stage.
type OverlayID int

const (
	OverlayOutlines OverlayID = iota
	OverlayJoints
	OverlayStretch
	OverlayPerf
	OverlayHelp

	numOverlays
)

// Overlay describes a toggleable overlay.
type Overlay struct {
	ID       OverlayID
	Name     string
	Key      int32
	KeyLabel string
	Debug    bool      // listed under "Debug" rather than "View"
	Replaces OverlayID // switched off when this one turns on; numOverlays for none
}

// overlayTable is indexed by OverlayID. None of the keys clash with the
// sing, dance and rebuild keys.
var overlayTable = [numOverlays]Overlay{
	OverlayOutlines: {ID: OverlayOutlines, Name: "Body Outlines", Key: rl.KeyO, KeyLabel: "O", Replaces: numOverlays},
	OverlayJoints:   {ID: OverlayJoints, Name: "Joint Gaps", Key: rl.KeyJ, KeyLabel: "J", Replaces: numOverlays},
	OverlayStretch:  {ID: OverlayStretch, Name: "Stretch Panel", Key: rl.KeyS, KeyLabel: "S", Debug: true, Replaces: OverlayPerf},
	OverlayPerf:     {ID: OverlayPerf, Name: "Perf Panel", Key: rl.KeyF, KeyLabel: "F", Debug: true, Replaces: OverlayStretch},
	OverlayHelp:     {ID: OverlayHelp, Name: "Overlay List", Key: rl.KeyH, KeyLabel: "H", Debug: true, Replaces: numOverlays},
}

func (id OverlayID) String() string {
	if id < 0 || id >= numOverlays {
		return "unknown"
	}
	return overlayTable[id].Name
}

// Overlays lists every overlay in drawing order.
func Overlays() []Overlay {
	return overlayTable[:]
}

// OverlaySet tracks which overlays are on. The two side panels share a
// screen corner, so turning one on turns the other off.
type OverlaySet struct {
	on [numOverlays]bool
}

// NewOverlaySet starts with every overlay off.
func NewOverlaySet() *OverlaySet {
	return &OverlaySet{}
}

// Toggle flips id and returns its new state.
func (s *OverlaySet) Toggle(id OverlayID) bool {
	if id < 0 || id >= numOverlays {
		return false
	}
	s.on[id] = !s.on[id]
	if r := overlayTable[id].Replaces; s.on[id] && r != numOverlays {
		s.on[r] = false
	}
	return s.on[id]
}

// On reports whether id is shown.
func (s *OverlaySet) On(id OverlayID) bool {
	return id >= 0 && id < numOverlays && s.on[id]
}

// Enabled returns the shown overlays in drawing order.
func (s *OverlaySet) Enabled() []OverlayID {
	var ids []OverlayID
	for id := OverlayID(0); id < numOverlays; id++ {
		if s.on[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// HandleKey toggles the overlay bound to key. ok is false when key is not
// an overlay key.
func (s *OverlaySet) HandleKey(key int32) (id OverlayID, on, ok bool) {
	for _, o := range overlayTable {
		if o.Key == key {
			return o.ID, s.Toggle(o.ID), true
		}
	}
	return numOverlays, false, false
}
