package constants

import (
	"os"
	"strconv"
)

// GetPreferredMidiPort returns the MIDI output port to use when the
// --port flag is not given.
func GetPreferredMidiPort() int {
	raw := os.Getenv("TABPLAY_MIDI_PORT")
	if raw == "" {
		return 0
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		panic("TABPLAY_MIDI_PORT is not a number: " + raw)
	}
	return port
}

const NumMidiChannels = 16

// The metronome plays on its own channel so instrument staves map 1:1 to
// channels 0..14.
const MetronomeChannel = 15
const MetronomePitch = 60

const StrongAccentVelocity = 127
const WeakAccentVelocity = 64

// Pitch bend scale: DefaultBend is the "no bend" center, one unit is a
// quarter of a semitone. The sink maps this scale onto the 14-bit MIDI
// pitch wheel with a range of PitchBendRange semitones per channel.
const DefaultBend uint8 = 64
const BendStepsPerSemitone = 4
const PitchBendRange = 12

// Note velocities by articulation.
const DefaultVelocity = 127
const PalmMutedVelocity = 112
const MutedVelocity = 60
const GhostVelocity = 50

// Modulation wheel widths for vibrato.
const VibratoWidth = 64
const WideVibratoWidth = 127

// Grace notes (acciaccatura) sound for a fixed short duration, stealing
// time from before their anchor position. Milliseconds.
const GraceNoteDuration = 60.0

// Arpeggiated notes within a position are staggered by this much.
// Milliseconds.
const ArpeggioOffset = 30.0
