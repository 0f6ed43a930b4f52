package event

import (
	"github.com/jsphweid/tabplay/constants"
	"github.com/jsphweid/tabplay/util"
)

// BendWheelValue maps a bend amount on the quarter-semitone scale (center
// 64) onto the signed 14-bit MIDI pitch wheel, assuming channels are
// configured with a bend range of constants.PitchBendRange semitones.
func BendWheelValue(amount uint8) int16 {
	semitones := (float64(amount) - float64(constants.DefaultBend)) / constants.BendStepsPerSemitone
	value := semitones / constants.PitchBendRange * 8192.0
	return int16(util.Clamp(value, -8192, 8191))
}
