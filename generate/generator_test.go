package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/tabplay/constants"
	"github.com/jsphweid/tabplay/event"
	"github.com/jsphweid/tabplay/model"
)

// singleStaffScore builds a one-system, one-guitar score in standard tuning
// with a silent metronome, so tests see only note events plus the end-of-
// system marker.
func singleStaffScore(positions ...model.Position) *model.Score {
	return &model.Score{
		Guitars: []model.Guitar{{Tuning: []uint8{64, 59, 55, 50, 45, 40}}},
		Systems: []model.System{{
			Staves: []model.Staff{{
				Voices: [model.NumVoices][]model.Position{positions, nil},
			}},
			Barlines: []model.Barline{
				{Position: 0, TimeSig: model.TimeSignature{BeatsPerMeasure: 4, BeatValue: 4}},
				{Position: 100},
			},
		}},
	}
}

func ofKind(events []event.Event, kind event.Kind) []event.Event {
	var out []event.Event
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// noteStops filters out the metronome channel's stop and marker events.
func noteStops(events []event.Event) []event.Event {
	var out []event.Event
	for _, e := range ofKind(events, event.StopNote) {
		if e.Channel != constants.MetronomeChannel {
			out = append(out, e)
		}
	}
	return out
}

func quarterNote(index int, str uint8, fret uint8) model.Position {
	return model.Position{
		Index:        index,
		DurationType: model.QuarterNote,
		Notes:        []model.Note{{String: str, Fret: fret}},
	}
}

func TestSingleNote(t *testing.T) {
	score := singleStaffScore(quarterNote(0, 0, 5))
	events := NewGenerator(score).Generate()

	plays := ofKind(events, event.PlayNote)
	assert.Len(t, plays, 1)
	assert.Equal(t, 0.0, plays[0].Start)
	assert.Equal(t, 500.0, plays[0].Duration)
	assert.Equal(t, uint8(69), plays[0].Pitch)
	assert.Equal(t, uint8(constants.DefaultVelocity), plays[0].Velocity)
	assert.Equal(t, uint8(0), plays[0].Channel)

	stops := noteStops(events)
	assert.Len(t, stops, 1)
	assert.Equal(t, uint8(69), stops[0].Pitch)
	assert.Equal(t, 500.0, stops[0].Start)
}

func TestTieChainPlaysOnce(t *testing.T) {
	tied := quarterNote(1, 0, 5)
	tied.Notes[0].Tied = true
	tiedAgain := quarterNote(2, 0, 5)
	tiedAgain.Notes[0].Tied = true

	score := singleStaffScore(quarterNote(0, 0, 5), tied, tiedAgain)
	events := NewGenerator(score).Generate()

	plays := ofKind(events, event.PlayNote)
	assert.Len(t, plays, 1)
	assert.Equal(t, 0.0, plays[0].Start)

	stops := noteStops(events)
	assert.Len(t, stops, 1)
	assert.Equal(t, uint8(69), stops[0].Pitch)
	assert.Equal(t, 1500.0, stops[0].Start)
}

func TestTiedHarmonicStopsWithStartingPitch(t *testing.T) {
	first := quarterNote(0, 0, 12)
	first.Notes[0].NaturalHarmonic = true
	tied := quarterNote(1, 0, 12)
	tied.Notes[0].Tied = true

	score := singleStaffScore(first, tied)
	events := NewGenerator(score).Generate()

	plays := ofKind(events, event.PlayNote)
	assert.Len(t, plays, 1)
	assert.Equal(t, uint8(76), plays[0].Pitch)

	stops := noteStops(events)
	assert.Equal(t, uint8(76), stops[0].Pitch)
}

func TestStaccatoHalvesTheNote(t *testing.T) {
	pos := quarterNote(0, 0, 0)
	pos.Staccato = true

	events := NewGenerator(singleStaffScore(pos)).Generate()
	stops := noteStops(events)
	assert.Equal(t, 250.0, stops[0].Start)
}

func TestPalmMuting(t *testing.T) {
	pos := quarterNote(0, 0, 0)
	pos.PalmMuting = true

	events := NewGenerator(singleStaffScore(pos)).Generate()

	plays := ofKind(events, event.PlayNote)
	assert.Equal(t, uint8(constants.PalmMutedVelocity), plays[0].Velocity)

	stops := noteStops(events)
	assert.InDelta(t, 500.0/1.15, stops[0].Start, 0.001)
}

func TestMutedAndGhostVelocities(t *testing.T) {
	pos := model.Position{
		Index:        0,
		DurationType: model.QuarterNote,
		Notes: []model.Note{
			{String: 0, Fret: 0, Muted: true},
			{String: 1, Fret: 0, Ghost: true},
		},
	}

	events := NewGenerator(singleStaffScore(pos)).Generate()
	plays := ofKind(events, event.PlayNote)
	assert.Len(t, plays, 2)

	byPitch := map[uint8]event.Event{}
	for _, p := range plays {
		byPitch[p.Pitch] = p
	}
	assert.Equal(t, uint8(constants.MutedVelocity), byPitch[64].Velocity)
	assert.True(t, byPitch[64].Muted)
	assert.Equal(t, uint8(constants.GhostVelocity), byPitch[59].Velocity)
}

func TestArpeggioStaggersLowToHigh(t *testing.T) {
	pos := model.Position{
		Index:        0,
		DurationType: model.QuarterNote,
		ArpeggioUp:   true,
		Notes: []model.Note{
			{String: 0, Fret: 0}, // 64
			{String: 2, Fret: 0}, // 55
			{String: 1, Fret: 0}, // 59
		},
	}

	events := NewGenerator(singleStaffScore(pos)).Generate()
	plays := ofKind(events, event.PlayNote)
	assert.Len(t, plays, 3)

	// lowest-sounding string first, every note staggered
	assert.Equal(t, uint8(55), plays[0].Pitch)
	assert.Equal(t, 30.0, plays[0].Start)
	assert.Equal(t, uint8(59), plays[1].Pitch)
	assert.Equal(t, 60.0, plays[1].Start)
	assert.Equal(t, uint8(64), plays[2].Pitch)
	assert.Equal(t, 90.0, plays[2].Start)
	assert.Equal(t, 410.0, plays[2].Duration)
}

func TestGraceNoteStealsTimeFromBefore(t *testing.T) {
	grace := model.Position{
		Index:        1,
		DurationType: model.QuarterNote,
		Acciaccatura: true,
		Notes:        []model.Note{{String: 0, Fret: 2}},
	}

	score := singleStaffScore(quarterNote(0, 0, 0), grace, quarterNote(2, 0, 3))
	events := NewGenerator(score).Generate()

	plays := ofKind(events, event.PlayNote)
	assert.Len(t, plays, 3)
	assert.Equal(t, 0.0, plays[0].Start)
	assert.Equal(t, 440.0, plays[1].Start)
	assert.Equal(t, constants.GraceNoteDuration, plays[1].Duration)
	assert.Equal(t, 500.0, plays[2].Start)
}

func TestVibratoWrapsNote(t *testing.T) {
	pos := quarterNote(0, 0, 0)
	pos.WideVibrato = true

	events := NewGenerator(singleStaffScore(pos)).Generate()
	vibratos := ofKind(events, event.Vibrato)
	assert.Len(t, vibratos, 2)
	assert.True(t, vibratos[0].On)
	assert.Equal(t, event.WideVibrato, vibratos[0].Vibrato)
	assert.Equal(t, 0.0, vibratos[0].Start)
	assert.False(t, vibratos[1].On)
	assert.Equal(t, 500.0, vibratos[1].Start)
}

func TestLetRingSpansPositions(t *testing.T) {
	first := quarterNote(0, 0, 0)
	first.LetRing = true
	second := quarterNote(1, 0, 2)
	second.LetRing = true
	third := quarterNote(2, 0, 3)

	score := singleStaffScore(first, second, third)
	events := NewGenerator(score).Generate()

	letRings := ofKind(events, event.LetRing)
	assert.Len(t, letRings, 2)
	assert.True(t, letRings[0].On)
	assert.Equal(t, 0.0, letRings[0].Start)
	assert.False(t, letRings[1].On)
	assert.Equal(t, 1000.0, letRings[1].Start)
}

func TestLetRingClosedAtEndOfVoice(t *testing.T) {
	first := quarterNote(0, 0, 0)
	first.LetRing = true
	second := quarterNote(1, 0, 2)
	second.LetRing = true

	events := NewGenerator(singleStaffScore(first, second)).Generate()

	letRings := ofKind(events, event.LetRing)
	assert.Len(t, letRings, 2)
	assert.False(t, letRings[1].On)
	assert.Equal(t, 1000.0, letRings[1].Start)
}

func TestLetRingStartingOnLastPositionStillCloses(t *testing.T) {
	only := quarterNote(0, 0, 0)
	only.LetRing = true

	events := NewGenerator(singleStaffScore(only)).Generate()

	letRings := ofKind(events, event.LetRing)
	assert.Len(t, letRings, 2)
	assert.True(t, letRings[0].On)
	assert.Equal(t, 0.0, letRings[0].Start)
	assert.False(t, letRings[1].On)
	assert.Equal(t, 500.0, letRings[1].Start)
}

func TestTremoloPickingSubdivides(t *testing.T) {
	pos := quarterNote(0, 0, 5)
	pos.TremoloPicking = true

	events := NewGenerator(singleStaffScore(pos)).Generate()

	// a quarter note holds eight 32nds, all restating the same pitch
	plays := ofKind(events, event.PlayNote)
	assert.Len(t, plays, 9)
	for _, p := range plays {
		assert.Equal(t, uint8(69), p.Pitch)
	}
	assert.Equal(t, 62.5, plays[2].Duration)
}

func TestTrillAlternatesPitches(t *testing.T) {
	trillFret := uint8(7)
	pos := model.Position{
		Index:        0,
		DurationType: model.QuarterNote,
		Notes:        []model.Note{{String: 0, Fret: 5, TrillFret: &trillFret}},
	}

	events := NewGenerator(singleStaffScore(pos)).Generate()

	var subPlays []event.Event
	for _, e := range ofKind(events, event.PlayNote) {
		if e.Duration == 62.5 {
			subPlays = append(subPlays, e)
		}
	}
	assert.Len(t, subPlays, 8)
	for i, p := range subPlays {
		if i%2 == 0 {
			assert.Equal(t, uint8(71), p.Pitch)
		} else {
			assert.Equal(t, uint8(69), p.Pitch)
		}
	}
}

func TestWholeRestAdvancesFullMeasure(t *testing.T) {
	rest := model.Position{Index: 0, DurationType: model.WholeNote, Rest: true}

	// put the note in the next bar
	score := &model.Score{
		Guitars: []model.Guitar{{Tuning: []uint8{64, 59, 55, 50, 45, 40}}},
		Systems: []model.System{{
			Staves: []model.Staff{{
				Voices: [model.NumVoices][]model.Position{
					{rest, quarterNote(3, 0, 0)}, nil,
				},
			}},
			Barlines: []model.Barline{
				{Position: 0, TimeSig: model.TimeSignature{BeatsPerMeasure: 3, BeatValue: 4}},
				{Position: 2, TimeSig: model.TimeSignature{BeatsPerMeasure: 3, BeatValue: 4}},
				{Position: 100},
			},
		}},
	}

	events := NewGenerator(score).Generate()
	plays := ofKind(events, event.PlayNote)
	assert.Len(t, plays, 1)
	assert.Equal(t, 1500.0, plays[0].Start)
}

func TestBendEventsAttached(t *testing.T) {
	pos := model.Position{
		Index:        0,
		DurationType: model.QuarterNote,
		Notes: []model.Note{{
			String: 0,
			Fret:   5,
			Bend:   &model.Bend{Type: model.PreBend, BentPitch: 8},
		}},
	}

	events := NewGenerator(singleStaffScore(pos)).Generate()

	bends := ofKind(events, event.Bend)
	assert.Len(t, bends, 2)
	assert.Equal(t, uint8(72), bends[0].BendAmount)
	assert.Equal(t, 0.0, bends[0].Start)
	assert.Equal(t, uint8(72), bends[1].BendAmount)
	assert.Equal(t, 500.0, bends[1].Start)
}

func TestMetronome(t *testing.T) {
	score := singleStaffScore(quarterNote(0, 0, 0))
	score.Systems[0].Barlines[0].TimeSig.Pulses = 4

	events := NewGenerator(score).Generate()

	ticks := ofKind(events, event.Metronome)
	assert.Len(t, ticks, 4)
	assert.Equal(t, uint8(constants.StrongAccentVelocity), ticks[0].Velocity)
	for _, tick := range ticks[1:] {
		assert.Equal(t, uint8(constants.WeakAccentVelocity), tick.Velocity)
	}
	assert.Equal(t, 0.0, ticks[0].Start)
	assert.Equal(t, 500.0, ticks[1].Start)
	assert.Equal(t, uint8(constants.MetronomeChannel), ticks[0].Channel)
	assert.Equal(t, uint8(constants.MetronomePitch), ticks[0].Pitch)
}

func TestSecondSystemStartsAfterFirst(t *testing.T) {
	single := singleStaffScore(quarterNote(0, 0, 0))
	system := single.Systems[0]
	score := &model.Score{
		Guitars: single.Guitars,
		Systems: []model.System{system, system},
	}
	score.Systems[1].Staves = []model.Staff{{
		Voices: [model.NumVoices][]model.Position{{quarterNote(0, 0, 2)}, nil},
	}}

	events := NewGenerator(score).Generate()

	// the first system's 4/4 measure spans 2000ms even though its one
	// voice only fills the first beat
	plays := ofKind(events, event.PlayNote)
	assert.Len(t, plays, 2)
	assert.Equal(t, 1, plays[1].Location.System)
	assert.Equal(t, 2000.0, plays[1].Start)
}

func TestTimelineSorted(t *testing.T) {
	score := singleStaffScore(
		quarterNote(0, 0, 0), quarterNote(1, 1, 2), quarterNote(2, 2, 3),
	)
	score.Systems[0].Barlines[0].TimeSig.Pulses = 4

	events := NewGenerator(score).Generate()
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, events[i-1].Start, events[i].Start)
	}
}
