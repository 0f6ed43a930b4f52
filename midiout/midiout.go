package midiout

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/jsphweid/tabplay/constants"
	"github.com/jsphweid/tabplay/event"
)

// MIDI controller numbers used by the sink.
const (
	ccModWheel    = 1
	ccDataEntry   = 6
	ccDataEntryLo = 38
	ccSustain     = 64
	ccRPNLo       = 100
	ccRPNHi       = 101
)

// Port is a player.Sink backed by a real MIDI output port.
type Port struct {
	out  drivers.Out
	send func(midi.Message) error
}

// Open opens the MIDI output port with the given number and configures the
// pitch bend range on every channel so bend events land on the scale the
// generator assumes.
func Open(portNumber int) (*Port, error) {
	out, err := midi.OutPort(portNumber)
	if err != nil {
		return nil, fmt.Errorf("opening midi out port %v: %w", portNumber, err)
	}

	send, err := midi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("connecting to midi out port %v: %w", portNumber, err)
	}

	p := &Port{out: out, send: send}
	for channel := uint8(0); channel < constants.NumMidiChannels; channel++ {
		if err := p.setPitchBendRange(channel, constants.PitchBendRange); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// setPitchBendRange sets the channel's pitch bend range in semitones via
// RPN 0,0.
func (p *Port) setPitchBendRange(channel uint8, semitones uint8) error {
	messages := []midi.Message{
		midi.ControlChange(channel, ccRPNHi, 0),
		midi.ControlChange(channel, ccRPNLo, 0),
		midi.ControlChange(channel, ccDataEntry, semitones),
		midi.ControlChange(channel, ccDataEntryLo, 0),
	}
	for _, msg := range messages {
		if err := p.send(msg); err != nil {
			return fmt.Errorf("setting pitch bend range on channel %v: %w", channel, err)
		}
	}
	return nil
}

// PlayNote sends a note on. Muted notes are already attenuated at
// generation time, so muted only exists to satisfy the sink contract here.
func (p *Port) PlayNote(channel uint8, pitch uint8, velocity uint8, muted bool) error {
	return p.send(midi.NoteOn(channel, pitch, velocity))
}

func (p *Port) StopNote(channel uint8, pitch uint8) error {
	return p.send(midi.NoteOff(channel, pitch))
}

func (p *Port) SetPitchBend(channel uint8, amount uint8) error {
	return p.send(midi.Pitchbend(channel, event.BendWheelValue(amount)))
}

// SetVibrato drives the modulation wheel; width 0 turns vibrato off.
func (p *Port) SetVibrato(channel uint8, width uint8) error {
	return p.send(midi.ControlChange(channel, ccModWheel, width))
}

// SetLetRing holds or releases the channel's sustain pedal.
func (p *Port) SetLetRing(channel uint8, on bool) error {
	value := uint8(0)
	if on {
		value = 127
	}
	return p.send(midi.ControlChange(channel, ccSustain, value))
}

func (p *Port) Close() error {
	return p.out.Close()
}

func (p *Port) String() string {
	return p.out.String()
}
