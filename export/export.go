package export

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/tabplay/constants"
	"github.com/jsphweid/tabplay/event"
	"github.com/jsphweid/tabplay/util"
)

const ticksPerQuarter = 480

// Event timestamps are absolute milliseconds, so the file is written at a
// fixed tempo and the millisecond timeline is mapped onto ticks directly.
// At 120 BPM a quarter note is 500ms.
const exportBeatsPerMinute = 120.0
const msPerQuarter = 500.0

// ToSMF renders a generated timeline as a single-track standard MIDI file.
// Repeats and directions are not expanded: the file contains each system
// once, like the timeline itself.
func ToSMF(events []event.Event) *smf.SMF {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var track smf.Track
	track.Add(0, smf.MetaTempo(exportBeatsPerMinute))

	lastTicks := uint32(0)
	for i := range events {
		e := &events[i]
		msg, ok := message(e)
		if !ok {
			continue
		}
		// a grace note at the very start of the score sits before zero
		start := util.Max(e.Start, 0)
		abs := uint32(start * ticksPerQuarter / msPerQuarter)
		track.Add(abs-lastTicks, msg)
		lastTicks = abs
	}

	track.Close(0)
	s.Add(track)
	return s
}

// WriteFile writes the timeline to path as a standard MIDI file.
func WriteFile(path string, events []event.Event) error {
	if err := ToSMF(events).WriteFile(path); err != nil {
		return fmt.Errorf("writing midi file %v: %w", path, err)
	}
	return nil
}

func message(e *event.Event) (midi.Message, bool) {
	switch e.Kind {
	case event.PlayNote, event.Metronome:
		return midi.NoteOn(e.Channel, e.Pitch, e.Velocity), true

	case event.StopNote:
		return midi.NoteOff(e.Channel, e.Pitch), true

	case event.Bend:
		return midi.Pitchbend(e.Channel, event.BendWheelValue(e.BendAmount)), true

	case event.Vibrato:
		var width uint8
		if e.On {
			width = constants.VibratoWidth
			if e.Vibrato == event.WideVibrato {
				width = constants.WideVibratoWidth
			}
		}
		return midi.ControlChange(e.Channel, 1, width), true

	case event.LetRing:
		value := uint8(0)
		if e.On {
			value = 127
		}
		return midi.ControlChange(e.Channel, 64, value), true
	}
	return nil, false
}
