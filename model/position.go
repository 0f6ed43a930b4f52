package model

import "sort"

type DurationType uint8

// Duration types are encoded as the divisor of a whole note.
const (
	WholeNote        DurationType = 1
	HalfNote         DurationType = 2
	QuarterNote      DurationType = 4
	EighthNote       DurationType = 8
	SixteenthNote    DurationType = 16
	ThirtySecondNote DurationType = 32
	SixtyFourthNote  DurationType = 64
)

// Position is one rhythmic slot in a staff voice. All notes at a position
// share its duration.
type Position struct {
	// Index is the anchor index within the staff, shared with barlines,
	// directions and tempo markers.
	Index        int          `json:"index"`
	DurationType DurationType `json:"durationType"`

	Rest           bool `json:"rest,omitempty"`
	Vibrato        bool `json:"vibrato,omitempty"`
	WideVibrato    bool `json:"wideVibrato,omitempty"`
	ArpeggioUp     bool `json:"arpeggioUp,omitempty"`
	ArpeggioDown   bool `json:"arpeggioDown,omitempty"`
	Staccato       bool `json:"staccato,omitempty"`
	PalmMuting     bool `json:"palmMuting,omitempty"`
	TremoloPicking bool `json:"tremoloPicking,omitempty"`
	LetRing        bool `json:"letRing,omitempty"`
	Acciaccatura   bool `json:"acciaccatura,omitempty"`

	// Notes is ordered, and the order is significant: arpeggio rendering
	// reorders it in place by string.
	Notes []Note `json:"notes,omitempty"`
}

func (p *Position) HasArpeggio() bool {
	return p.ArpeggioUp || p.ArpeggioDown
}

// SortNotesUp orders the notes from the lowest-sounding string upward.
// Higher string indices are lower-sounding, so this is a descending sort
// on the string index.
func (p *Position) SortNotesUp() {
	sort.SliceStable(p.Notes, func(i, j int) bool {
		return p.Notes[i].String > p.Notes[j].String
	})
}

// SortNotesDown orders the notes from the highest-sounding string downward.
func (p *Position) SortNotesDown() {
	sort.SliceStable(p.Notes, func(i, j int) bool {
		return p.Notes[i].String < p.Notes[j].String
	})
}

// PrevNoteOnString walks backward from the position at index idx and
// returns the note on the given string from the closest earlier position
// that has one, or nil. Used to resolve tie chains; ties do not span
// systems.
func PrevNoteOnString(positions []Position, idx int, str uint8) *Note {
	for i := idx - 1; i >= 0; i-- {
		if n := positions[i].NoteOnString(str); n != nil {
			return n
		}
	}
	return nil
}

// NextNoteOnString is the forward counterpart of PrevNoteOnString.
func NextNoteOnString(positions []Position, idx int, str uint8) *Note {
	for i := idx + 1; i < len(positions); i++ {
		if n := positions[i].NoteOnString(str); n != nil {
			return n
		}
	}
	return nil
}

func (p *Position) NoteOnString(str uint8) *Note {
	for i := range p.Notes {
		if p.Notes[i].String == str {
			return &p.Notes[i]
		}
	}
	return nil
}
