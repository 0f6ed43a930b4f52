package model

type Note struct {
	String uint8 `json:"string"`
	Fret   uint8 `json:"fret"`

	// Tied marks the note as tied to the previous note on the same string;
	// no new attack is played for it. TieWrap marks a tie that continues
	// past the last available successor, suppressing the stop event.
	Tied    bool `json:"tied,omitempty"`
	TieWrap bool `json:"tieWrap,omitempty"`

	Muted bool `json:"muted,omitempty"`
	Ghost bool `json:"ghost,omitempty"`

	NaturalHarmonic    bool                `json:"naturalHarmonic,omitempty"`
	TappedHarmonicFret *uint8              `json:"tappedHarmonicFret,omitempty"`
	ArtificialHarmonic *ArtificialHarmonic `json:"artificialHarmonic,omitempty"`

	Bend *Bend `json:"bend,omitempty"`

	SlideInto       SlideIntoType  `json:"slideInto,omitempty"`
	SlideOutOf      SlideOutOfType `json:"slideOutOf,omitempty"`
	SlideOutOfSteps int8           `json:"slideOutOfSteps,omitempty"` // half steps; signed

	TrillFret *uint8 `json:"trillFret,omitempty"`
}

func (n *Note) HasSlide() bool {
	return n.SlideInto != SlideIntoNone || n.SlideOutOf != SlideOutOfNone
}

type ArtificialHarmonic struct {
	Key        uint8 `json:"key"` // pitch class 0-11
	OctaveDiff uint8 `json:"octaveDiff"`
}

type BendType int

const (
	NormalBend BendType = iota
	BendAndRelease
	BendAndHold
	PreBend
	PreBendAndRelease
	PreBendAndHold
	GradualRelease
	ImmediateRelease
)

// Bend pitches are measured in quarter-of-a-semitone steps above the
// fretted pitch, matching the playback pitch bend scale.
type Bend struct {
	Type         BendType `json:"type"`
	BentPitch    uint8    `json:"bentPitch"`
	ReleasePitch uint8    `json:"releasePitch"`
	// Duration selects the window for a gradual bend: 0 bends over a 32nd
	// note, 1 bends over the full note duration.
	Duration uint8 `json:"duration,omitempty"`
}

type SlideIntoType int

const (
	SlideIntoNone SlideIntoType = iota
	SlideIntoFromBelow
	SlideIntoFromAbove
)

type SlideOutOfType int

const (
	SlideOutOfNone SlideOutOfType = iota
	SlideOutOfShiftSlide
	SlideOutOfLegatoSlide
	SlideOutOfDownwards
	SlideOutOfUpwards
)
