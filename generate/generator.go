package generate

import (
	"github.com/jsphweid/tabplay/constants"
	"github.com/jsphweid/tabplay/event"
	"github.com/jsphweid/tabplay/model"
	"github.com/jsphweid/tabplay/pitch"
	"github.com/jsphweid/tabplay/util"
)

// Generator turns a score into a flat, sorted playback timeline. Repeats
// and directions are not expanded here: the timeline covers each system
// once and navigation happens at playback time.
type Generator struct {
	score *model.Score
}

func NewGenerator(score *model.Score) *Generator {
	return &Generator{score: score}
}

// Generate walks every system and returns the merged, sorted event
// timeline. Event start times are absolute milliseconds from the start of
// the score.
func (g *Generator) Generate() []event.Event {
	var events []event.Event
	var timestamp float64

	for i := range g.score.Systems {
		// a voice can underfill its bars, so the system lasts until the
		// later of the metronome's last measure and the slowest voice
		metronomeEnd := g.generateMetronome(i, timestamp, &events)
		voicesEnd := g.generateSystem(i, timestamp, &events)
		timestamp = util.Max(metronomeEnd, voicesEnd)
	}

	event.Sort(events)
	return events
}

// generateSystem emits the note events for one system and returns the time
// at which the next system starts. Each staff voice advances on its own
// cursor; the system ends when the slowest voice does.
func (g *Generator) generateSystem(systemIndex int, systemStartTime float64, events *[]event.Event) float64 {
	system := &g.score.Systems[systemIndex]
	endTime := systemStartTime

	for staffIndex := range system.Staves {
		staff := &system.Staves[staffIndex]
		guitar := &g.score.Guitars[staffIndex]
		channel := uint8(staffIndex)

		for voice := 0; voice < model.NumVoices; voice++ {
			voiceEnd := g.generateVoice(systemIndex, system, staff.Voices[voice],
				guitar, channel, systemStartTime, events)
			endTime = util.Max(endTime, voiceEnd)
		}
	}

	return endTime
}

func (g *Generator) generateVoice(systemIndex int, system *model.System, positions []model.Position,
	guitar *model.Guitar, channel uint8, systemStartTime float64, events *[]event.Event) float64 {

	startTime := systemStartTime
	endTime := systemStartTime

	// bend value carried across positions by and-hold bends
	activeBend := constants.DefaultBend
	letRingActive := false

	for j := range positions {
		pos := &positions[j]
		loc := model.SystemLocation{System: systemIndex, Position: pos.Index}

		tempo := pitch.Tempo(g.score, loc)
		duration := pitch.Duration(pos, tempo)

		if pos.Rest {
			// a whole rest alone in its bar fills the whole measure
			if pos.DurationType == model.WholeNote {
				duration = pitch.WholeRestDuration(system, positions, pos, tempo, duration)
			}
			startTime += duration
			endTime = util.Max(endTime, startTime)
			continue
		}

		if pos.Acciaccatura {
			// grace notes steal time from before their anchor position
			duration = constants.GraceNoteDuration
			startTime -= duration
		}

		if pos.ArpeggioDown {
			pos.SortNotesDown()
		} else if pos.ArpeggioUp {
			pos.SortNotesUp()
		}

		if pos.Vibrato || pos.WideVibrato {
			vibratoType := event.NormalVibrato
			if pos.WideVibrato {
				vibratoType = event.WideVibrato
			}
			*events = append(*events, event.Event{
				Kind:     event.Vibrato,
				Channel:  channel,
				Start:    startTime,
				Location: loc,
				On:       true,
				Vibrato:  vibratoType,
			})
			*events = append(*events, event.Event{
				Kind:     event.Vibrato,
				Channel:  channel,
				Start:    startTime + duration,
				Location: loc,
			})
		}

		if pos.LetRing && !letRingActive {
			letRingActive = true
			*events = append(*events, event.Event{
				Kind:     event.LetRing,
				Channel:  channel,
				Start:    startTime,
				Location: loc,
				On:       true,
			})
		} else if !pos.LetRing && letRingActive {
			letRingActive = false
			*events = append(*events, event.Event{
				Kind:     event.LetRing,
				Channel:  channel,
				Start:    startTime,
				Location: loc,
			})
		}
		// close out a let ring that runs to the end of the voice, even one
		// that only just switched on
		if letRingActive && j == len(positions)-1 {
			letRingActive = false
			*events = append(*events, event.Event{
				Kind:     event.LetRing,
				Channel:  channel,
				Start:    startTime + duration,
				Location: loc,
			})
		}

		for k := range pos.Notes {
			// arpeggiated chords stagger every note, including the first
			if pos.HasArpeggio() {
				startTime += constants.ArpeggioOffset
				duration -= constants.ArpeggioOffset
			}

			note := &pos.Notes[k]
			notePitch := pitch.Resolve(note, guitar)
			velocity := noteVelocity(pos, note)

			if !note.Tied {
				*events = append(*events, event.Event{
					Kind:     event.PlayNote,
					Channel:  channel,
					Start:    startTime,
					Duration: duration,
					Location: loc,
					Pitch:    notePitch,
					Velocity: velocity,
					Muted:    note.Muted,
				})
			} else if prev := model.PrevNoteOnString(positions, j, note.String); prev != nil {
				// a tied note extends the note that started the tie, so the
				// eventual stop event must use that note's pitch (the two can
				// differ, e.g. with harmonics)
				notePitch = pitch.Resolve(prev, guitar)
			}

			if note.HasSlide() {
				for _, p := range generateSlides(note, startTime, duration, tempo) {
					*events = append(*events, event.Event{
						Kind:       event.Bend,
						Channel:    channel,
						Start:      p.timestamp,
						Location:   loc,
						BendAmount: p.amount,
					})
				}
			}

			if note.Bend != nil {
				points, newActive := generateBends(note.Bend, startTime, duration, tempo, activeBend)
				activeBend = newActive
				for _, p := range points {
					*events = append(*events, event.Event{
						Kind:       event.Bend,
						Channel:    channel,
						Start:      p.timestamp,
						Location:   loc,
						BendAmount: p.amount,
					})
				}
			}

			// tremolo picking and trills subdivide the note into 32nds; a
			// trill alternates between the written pitch and the trill pitch
			if pos.TremoloPicking || note.TrillFret != nil {
				subNoteDuration := tempo / 8.0
				numNotes := int(duration / subNoteDuration)

				otherPitch := notePitch
				if note.TrillFret != nil {
					otherPitch = uint8(int(notePitch) + int(*note.TrillFret) - int(note.Fret))
				}

				for n := 0; n < numNotes; n++ {
					subStart := startTime + float64(n)*subNoteDuration
					*events = append(*events, event.Event{
						Kind:     event.StopNote,
						Channel:  channel,
						Start:    subStart,
						Location: loc,
						Pitch:    notePitch,
					})
					notePitch, otherPitch = otherPitch, notePitch
					*events = append(*events, event.Event{
						Kind:     event.PlayNote,
						Channel:  channel,
						Start:    subStart,
						Duration: subNoteDuration,
						Location: loc,
						Pitch:    notePitch,
						Velocity: velocity,
						Muted:    note.Muted,
					})
				}
			}

			tiedToNext := false
			if next := model.NextNoteOnString(positions, j, note.String); next != nil && next.Tied {
				tiedToNext = true
			}

			if !note.TieWrap && !tiedToNext {
				noteLength := duration
				if pos.Staccato {
					noteLength /= 2.0
				} else if pos.PalmMuting {
					noteLength /= 1.15
				}
				*events = append(*events, event.Event{
					Kind:     event.StopNote,
					Channel:  channel,
					Start:    startTime + noteLength,
					Location: loc,
					Pitch:    notePitch,
				})
			}
		}

		// for a grace note this restores the anchor's start time; for an
		// arpeggio it accounts for the per-note stagger taken out above
		startTime += duration
		endTime = util.Max(endTime, startTime)
	}

	return endTime
}

func noteVelocity(pos *model.Position, note *model.Note) uint8 {
	switch {
	case note.Ghost:
		return constants.GhostVelocity
	case note.Muted:
		return constants.MutedVelocity
	case pos.PalmMuting:
		return constants.PalmMutedVelocity
	}
	return constants.DefaultVelocity
}
