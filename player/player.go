package player

import (
	"log"
	"sync"
	"time"

	"github.com/jsphweid/tabplay/constants"
	"github.com/jsphweid/tabplay/event"
	"github.com/jsphweid/tabplay/generate"
	"github.com/jsphweid/tabplay/model"
	"github.com/jsphweid/tabplay/repeats"
)

// Sink receives the performance as it happens. midiout.Port implements it
// against a real MIDI device; tests substitute a recorder.
type Sink interface {
	PlayNote(channel uint8, pitch uint8, velocity uint8, muted bool) error
	StopNote(channel uint8, pitch uint8) error
	SetPitchBend(channel uint8, amount uint8) error
	SetVibrato(channel uint8, width uint8) error
	SetLetRing(channel uint8, on bool) error
}

type Options struct {
	// Speed is the playback speed percentage; 100 plays at notated tempo.
	Speed int
	// NoMetronome mutes the click track. The metronome events are still
	// generated and walked, only their performance is suppressed.
	NoMetronome bool

	OnSystemChanged   func(system int)
	OnPositionChanged func(position int)
}

// Player walks a generated event timeline in real time against a Sink,
// following repeat bars and directions as it goes. Stop and SetSpeed are
// safe to call from other goroutines.
type Player struct {
	score *model.Score
	sink  Sink
	opts  Options

	mu      sync.Mutex
	playing bool
	speed   int
	done    chan struct{}
}

func New(score *model.Score, sink Sink, opts Options) *Player {
	if opts.Speed <= 0 {
		opts.Speed = 100
	}
	return &Player{
		score: score,
		sink:  sink,
		opts:  opts,
		speed: opts.Speed,
	}
}

// Play starts playback at the given location in a new goroutine. Events
// before the location are skipped without delay. Calling Play while already
// playing does nothing.
func (p *Player) Play(start model.SystemLocation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		return
	}
	p.playing = true
	p.done = make(chan struct{})
	go p.run(start, p.done)
}

// Stop cancels playback. The playback goroutine notices before its next
// event; Wait blocks until it has exited.
func (p *Player) Stop() {
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
}

// Wait blocks until the current playback run finishes, either by reaching
// the end of the score or by Stop.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// SetSpeed changes the playback speed percentage. It takes effect from the
// next event onward.
func (p *Player) SetSpeed(speed int) {
	if speed < 1 {
		speed = 1
	}
	p.mu.Lock()
	p.speed = speed
	p.mu.Unlock()
}

func (p *Player) run(start model.SystemLocation, done chan struct{}) {
	defer func() {
		p.mu.Lock()
		p.playing = false
		p.mu.Unlock()
		close(done)
	}()

	events := generate.NewGenerator(p.score).Generate()
	controller := repeats.NewController(p.score)

	startLocation := start
	current := model.SystemLocation{}
	started := false

	var lastChecked model.SystemLocation
	checked := false

	i := 0
	for i < len(events) {
		p.mu.Lock()
		playing := p.playing
		speed := p.speed
		p.mu.Unlock()
		if !playing {
			return
		}

		e := &events[i]

		// seek to the start location without delay
		if e.Location.Less(startLocation) {
			i++
			continue
		}
		// disarm the guard once the start point is reached, so later events
		// at earlier locations (stops for notes sustained across a backward
		// jump) are still performed
		startLocation = model.SystemLocation{}

		if !started || e.Location.System != current.System {
			started = true
			// a new system starts a fresh position count
			current = model.SystemLocation{System: e.Location.System}
			p.notifySystemChanged(current.System)
			p.notifyPositionChanged(current.Position)
		}
		if e.Location.Position > current.Position {
			current.Position = e.Location.Position
			p.notifyPositionChanged(current.Position)
		}

		// navigation is decided once per location, before performing any of
		// its events
		if !checked || e.Location != lastChecked {
			checked = true
			lastChecked = e.Location
			if to, ok := controller.CheckForRepeat(e.Location); ok {
				startLocation = to
				started = false
				checked = false
				i = firstEventAt(events, to)
				continue
			}
		}

		if err := p.perform(e); err != nil {
			log.Printf("error performing event: %v", err)
		}

		if i+1 < len(events) {
			p.sleep(events[i+1].Start-e.Start, speed)
		} else {
			// let the final event ring out
			p.sleep(e.Duration, speed)
		}
		i++
	}
}

// firstEventAt returns the index of the first event at or after loc, or
// len(events) if the jump target is past the end of the score.
func firstEventAt(events []event.Event, loc model.SystemLocation) int {
	for i := range events {
		if !events[i].Location.Less(loc) {
			return i
		}
	}
	return len(events)
}

func (p *Player) perform(e *event.Event) error {
	switch e.Kind {
	case event.PlayNote:
		return p.sink.PlayNote(e.Channel, e.Pitch, e.Velocity, e.Muted)

	case event.Metronome:
		if p.opts.NoMetronome {
			return nil
		}
		return p.sink.PlayNote(e.Channel, e.Pitch, e.Velocity, false)

	case event.StopNote:
		return p.sink.StopNote(e.Channel, e.Pitch)

	case event.Bend:
		return p.sink.SetPitchBend(e.Channel, e.BendAmount)

	case event.Vibrato:
		var width uint8
		if e.On {
			width = constants.VibratoWidth
			if e.Vibrato == event.WideVibrato {
				width = constants.WideVibratoWidth
			}
		}
		return p.sink.SetVibrato(e.Channel, width)

	case event.LetRing:
		return p.sink.SetLetRing(e.Channel, e.On)
	}
	return nil
}

func (p *Player) sleep(ms float64, speed int) {
	if ms <= 0 {
		return
	}
	scaled := ms * 100.0 / float64(speed)
	time.Sleep(time.Duration(scaled * float64(time.Millisecond)))
}

func (p *Player) notifySystemChanged(system int) {
	if p.opts.OnSystemChanged != nil {
		p.opts.OnSystemChanged(system)
	}
}

func (p *Player) notifyPositionChanged(position int) {
	if p.opts.OnPositionChanged != nil {
		p.opts.OnPositionChanged(position)
	}
}
