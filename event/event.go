package event

import (
	"sort"

	"github.com/jsphweid/tabplay/model"
)

// Kind tags the closed set of performance event variants. The declaration
// order doubles as the tie-break rank when sorting: at equal timestamps,
// stop/off events must come before play/on events so a re-attacked pitch is
// released before it sounds again.
type Kind int

const (
	StopNote Kind = iota
	Bend
	LetRing
	Vibrato
	Metronome
	PlayNote
)

type VibratoType int

const (
	NormalVibrato VibratoType = iota
	WideVibrato
)

// Event is one timestamped performance event. Every event carries the
// channel (staff index), an absolute start time in milliseconds from the
// start of the score, and the score location it was generated from.
// Events are immutable once generated.
type Event struct {
	Kind     Kind
	Channel  uint8
	Start    float64
	Duration float64
	Location model.SystemLocation

	// PlayNote, StopNote, Metronome
	Pitch    uint8
	Velocity uint8
	Muted    bool

	// Bend
	BendAmount uint8

	// Vibrato, LetRing
	On      bool
	Vibrato VibratoType
}

// Less is the total order for the playback timeline: start time, then score
// location, then kind (off before on), then channel. Playback correctness
// depends on the off-before-on rank at identical timestamps.
func Less(a *Event, b *Event) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	if cmp := a.Location.Compare(b.Location); cmp != 0 {
		return cmp < 0
	}
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Channel < b.Channel
}

// Sort orders the merged event collection into the playback timeline.
func Sort(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return Less(&events[i], &events[j])
	})
}
