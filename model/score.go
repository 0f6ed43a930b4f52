package model

// Score is a read-only snapshot of a tablature document, stable for the
// duration of one playback run. Guitars line up with staff indices: staff i
// of every system is played by Guitars[i].
type Score struct {
	Systems          []System          `json:"systems"`
	Guitars          []Guitar          `json:"guitars"`
	TempoMarkers     []TempoMarker     `json:"tempoMarkers,omitempty"`
	AlternateEndings []AlternateEnding `json:"alternateEndings,omitempty"`
}

type Guitar struct {
	// Tuning holds the MIDI pitch of each open string. String 0 is the
	// highest-sounding string, matching tablature convention.
	Tuning []uint8 `json:"tuning"`
	Capo   uint8   `json:"capo,omitempty"`
}

// OpenStringPitch returns the sounding pitch of an open string with the
// capo applied.
func (g *Guitar) OpenStringPitch(str uint8) uint8 {
	return g.Tuning[str] + g.Capo
}

type TempoMarker struct {
	System           int     `json:"system"`
	Position         int     `json:"position"`
	BeatsPerMinute   float64 `json:"beatsPerMinute"`
	BeatType         uint8   `json:"beatType"` // beat unit, 4 = quarter note
	AlterationOfPace bool    `json:"alterationOfPace,omitempty"`
}

func (t *TempoMarker) Location() SystemLocation {
	return SystemLocation{System: t.System, Position: t.Position}
}

type System struct {
	Staves []Staff `json:"staves"`
	// Barlines are ordered by position; the last entry is the system's end
	// bar.
	Barlines   []Barline   `json:"barlines"`
	Directions []Direction `json:"directions,omitempty"`
}

// PrecedingBarline returns the last barline at or before the given position.
func (s *System) PrecedingBarline(position int) *Barline {
	var prev *Barline
	for i := range s.Barlines {
		if s.Barlines[i].Position <= position {
			prev = &s.Barlines[i]
		}
	}
	return prev
}

// NextBarline returns the first barline strictly after the given position,
// or nil if the position is past every barline.
func (s *System) NextBarline(position int) *Barline {
	for i := range s.Barlines {
		if s.Barlines[i].Position > position {
			return &s.Barlines[i]
		}
	}
	return nil
}

func (s *System) EndBarline() *Barline {
	return &s.Barlines[len(s.Barlines)-1]
}

// PositionCount returns the number of position slots in the system, i.e.
// one past the largest anchor index in use.
func (s *System) PositionCount() int {
	count := s.EndBarline().Position + 1
	for i := range s.Staves {
		for voice := 0; voice < NumVoices; voice++ {
			positions := s.Staves[i].Voices[voice]
			if len(positions) > 0 {
				last := positions[len(positions)-1].Index + 1
				if last > count {
					count = last
				}
			}
		}
	}
	return count
}

type Barline struct {
	Position    int           `json:"position"`
	TimeSig     TimeSignature `json:"timeSig"`
	RepeatStart bool          `json:"repeatStart,omitempty"`
	RepeatEnd   bool          `json:"repeatEnd,omitempty"`
	RepeatCount int           `json:"repeatCount,omitempty"`
}

type TimeSignature struct {
	BeatsPerMeasure uint8 `json:"beatsPerMeasure"`
	BeatValue       uint8 `json:"beatValue"` // denominator: 4 = quarter note beat
	Pulses          uint8 `json:"pulses"`    // metronome pulses per measure
}

// NumVoices is the number of independent voices per staff. Voices run on
// separate timelines that both start at the system's start time.
const NumVoices = 2

type Staff struct {
	Voices [NumVoices][]Position `json:"voices"`
}

type AlternateEnding struct {
	System   int   `json:"system"`
	Position int   `json:"position"`
	Numbers  []int `json:"numbers"` // 1-based repeat passes this ending applies to
}

func (a *AlternateEnding) Location() SystemLocation {
	return SystemLocation{System: a.System, Position: a.Position}
}

func (a *AlternateEnding) AppliesTo(pass int) bool {
	for _, n := range a.Numbers {
		if n == pass {
			return true
		}
	}
	return false
}
