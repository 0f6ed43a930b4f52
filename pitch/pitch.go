package pitch

import (
	"fmt"

	"github.com/jsphweid/tabplay/model"
)

// harmonicOffsets maps a fret to the offset in half steps above the open
// string for the natural harmonic at that fret. e.g. the harmonic at the
// 7th fret sounds an octave and a fifth (19 half steps) above the open
// string.
var harmonicOffsets = map[uint8]uint8{
	3:  31,
	4:  28,
	9:  28,
	16: 28,
	28: 28,
	5:  24,
	24: 24,
	7:  19,
	19: 19,
	12: 12,
}

func harmonicOffset(fret uint8) uint8 {
	offset, ok := harmonicOffsets[fret]
	if !ok {
		panic(fmt.Sprintf("no harmonic pitch defined for fret %v", fret))
	}
	return offset
}

// midiNoteOctave returns the octave of a MIDI pitch; middle C (60) is in
// octave 4.
func midiNoteOctave(pitch uint8) uint8 {
	return pitch/12 - 1
}

// Resolve returns the sounding MIDI pitch for a note on the given guitar,
// applying tuning, capo and harmonics. An artificial harmonic overrides any
// natural or tapped harmonic pitch.
func Resolve(note *model.Note, guitar *model.Guitar) uint8 {
	openString := guitar.OpenStringPitch(note.String)
	pitch := openString + note.Fret

	if note.NaturalHarmonic {
		pitch = openString + harmonicOffset(note.Fret)
	}

	if note.TappedHarmonicFret != nil {
		pitch += harmonicOffset(*note.TappedHarmonicFret - note.Fret)
	}

	if ah := note.ArtificialHarmonic; ah != nil {
		pitch = (midiNoteOctave(pitch)+ah.OctaveDiff+2)*12 + ah.Key
	}

	return pitch
}
