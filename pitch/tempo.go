package pitch

import (
	"github.com/jsphweid/tabplay/model"
)

const DefaultBeatsPerMinute = 120.0
const DefaultBeatType = 4.0

const quarterNote = 4.0

// Tempo returns the duration of a quarter note in milliseconds at the given
// location. The last tempo marker at or before the location wins; markers
// flagged as alterations of pace are not supported and are skipped.
func Tempo(score *model.Score, loc model.SystemLocation) float64 {
	var marker *model.TempoMarker
	for i := range score.TempoMarkers {
		m := &score.TempoMarkers[i]
		if m.AlterationOfPace {
			continue
		}
		if !loc.Less(m.Location()) {
			marker = m
		}
	}

	bpm := DefaultBeatsPerMinute
	beatType := DefaultBeatType
	if marker != nil {
		if marker.BeatsPerMinute == 0 {
			panic("tempo marker with zero beats per minute")
		}
		bpm = marker.BeatsPerMinute
		beatType = float64(marker.BeatType)
	}

	return 60.0 / bpm * 1000.0 * (quarterNote / beatType)
}

// Duration returns the length in milliseconds of a position's notated
// duration. A quarter note lasts exactly tempoMs.
func Duration(pos *model.Position, tempoMs float64) float64 {
	return 1.0 / float64(pos.DurationType) * tempoMs * 4.0
}

// WholeRestDuration handles the whole-rest special case: a whole rest that
// is the only position in its measure lasts for the entire measure
// regardless of the time signature. Any other rest keeps originalDuration.
func WholeRestDuration(system *model.System, voice []model.Position, pos *model.Position,
	tempoMs float64, originalDuration float64) float64 {

	if !isOnlyPositionInBar(system, voice, pos) {
		return originalDuration
	}

	bar := system.PrecedingBarline(pos.Index)
	if bar == nil {
		return originalDuration
	}

	timeSig := bar.TimeSig
	duration := tempoMs * 4.0 / float64(timeSig.BeatValue)
	return duration * float64(timeSig.BeatsPerMeasure)
}

func isOnlyPositionInBar(system *model.System, voice []model.Position, pos *model.Position) bool {
	barStart := -1
	if bar := system.PrecedingBarline(pos.Index); bar != nil {
		barStart = bar.Position
	}
	barEnd := system.EndBarline().Position + 1
	if next := system.NextBarline(pos.Index); next != nil {
		barEnd = next.Position
	}

	count := 0
	for i := range voice {
		if voice[i].Index >= barStart && voice[i].Index < barEnd {
			count++
		}
	}
	return count == 1
}
