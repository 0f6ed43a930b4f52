package generate

import (
	"github.com/jsphweid/tabplay/constants"
	"github.com/jsphweid/tabplay/event"
	"github.com/jsphweid/tabplay/model"
	"github.com/jsphweid/tabplay/pitch"
)

// generateMetronome emits the click track for one system and returns the
// time at which its last measure ends: one pulse run per measure, with a
// strong accent on the first pulse. Metronome events are always generated;
// muting the metronome is a playback-time decision.
func (g *Generator) generateMetronome(systemIndex int, systemStartTime float64, events *[]event.Event) float64 {
	system := &g.score.Systems[systemIndex]
	startTime := systemStartTime

	// the end bar closes the last measure and gets no pulses of its own
	for i := 0; i < len(system.Barlines)-1; i++ {
		barline := &system.Barlines[i]
		timeSig := barline.TimeSig
		loc := model.SystemLocation{System: systemIndex, Position: barline.Position}

		tempo := pitch.Tempo(g.score, loc)
		measureDuration := tempo * 4.0 / float64(timeSig.BeatValue) * float64(timeSig.BeatsPerMeasure)

		if timeSig.Pulses == 0 {
			// keep a marker so repeats and directions anchored at this bar
			// still fire during playback
			*events = append(*events, event.Event{
				Kind:     event.StopNote,
				Channel:  constants.MetronomeChannel,
				Start:    startTime,
				Location: loc,
				Pitch:    constants.MetronomePitch,
			})
			startTime += measureDuration
			continue
		}

		duration := measureDuration / float64(timeSig.Pulses)
		for j := uint8(0); j < timeSig.Pulses; j++ {
			velocity := uint8(constants.WeakAccentVelocity)
			if j == 0 {
				velocity = constants.StrongAccentVelocity
			}

			*events = append(*events, event.Event{
				Kind:     event.Metronome,
				Channel:  constants.MetronomeChannel,
				Start:    startTime,
				Duration: duration,
				Location: loc,
				Pitch:    constants.MetronomePitch,
				Velocity: velocity,
			})

			startTime += duration

			*events = append(*events, event.Event{
				Kind:     event.StopNote,
				Channel:  constants.MetronomeChannel,
				Start:    startTime,
				Location: loc,
				Pitch:    constants.MetronomePitch,
			})
		}
	}

	// marker at the end bar so repeats and directions anchored there are
	// still reached during playback
	*events = append(*events, event.Event{
		Kind:     event.StopNote,
		Channel:  constants.MetronomeChannel,
		Start:    startTime,
		Location: model.SystemLocation{System: systemIndex, Position: system.EndBarline().Position},
		Pitch:    constants.MetronomePitch,
	})

	return startTime
}
