package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/tabplay/constants"
	"github.com/jsphweid/tabplay/model"
)

func TestGradualBendOneSamplePerStep(t *testing.T) {
	points := gradualBend(nil, 100, 400, 64, 68)

	assert.Len(t, points, 4)
	assert.Equal(t, bendPoint{200, 65}, points[0])
	assert.Equal(t, bendPoint{300, 66}, points[1])
	assert.Equal(t, bendPoint{400, 67}, points[2])
	assert.Equal(t, bendPoint{500, 68}, points[3])
}

func TestGradualBendDownward(t *testing.T) {
	points := gradualBend(nil, 0, 200, 66, 64)

	assert.Len(t, points, 2)
	assert.Equal(t, bendPoint{100, 65}, points[0])
	assert.Equal(t, bendPoint{200, 64}, points[1])
}

func TestGradualBendNoMovement(t *testing.T) {
	assert.Empty(t, gradualBend(nil, 0, 200, 64, 64))
}

func TestPreBendJumpsAndResets(t *testing.T) {
	// pre-bend two semitones up, no release target
	bend := &model.Bend{Type: model.PreBend, BentPitch: 8}
	points, active := generateBends(bend, 0, 500, 500, constants.DefaultBend)

	assert.Equal(t, []bendPoint{{0, 72}, {500, 72}}, points)
	assert.Equal(t, uint8(72), active)
}

func TestNormalBendRampsOverThirtySecond(t *testing.T) {
	bend := &model.Bend{Type: model.NormalBend, BentPitch: 4}
	points, active := generateBends(bend, 0, 500, 500, constants.DefaultBend)

	// 4 ramp samples over 500/8 ms, then the reset after the note
	assert.Len(t, points, 5)
	assert.Equal(t, bendPoint{500.0 / 8.0, 68}, points[3])
	assert.Equal(t, bendPoint{500, 68}, points[4])
	assert.Equal(t, uint8(68), active)
}

func TestNormalBendOverFullNote(t *testing.T) {
	bend := &model.Bend{Type: model.NormalBend, BentPitch: 4, Duration: 1}
	points, _ := generateBends(bend, 0, 500, 500, constants.DefaultBend)

	assert.Len(t, points, 5)
	assert.Equal(t, bendPoint{500, 68}, points[3])
}

func TestBendAndRelease(t *testing.T) {
	bend := &model.Bend{Type: model.BendAndRelease, BentPitch: 4, ReleasePitch: 0}
	points, active := generateBends(bend, 0, 500, 500, constants.DefaultBend)

	// up over the first half, back down over the second, no trailing reset
	assert.Len(t, points, 8)
	assert.Equal(t, bendPoint{250, 68}, points[3])
	assert.Equal(t, bendPoint{500, 64}, points[7])
	assert.Equal(t, uint8(64), active)
}

func TestBendAndHoldCarriesBendForward(t *testing.T) {
	bend := &model.Bend{Type: model.BendAndHold, BentPitch: 8, Duration: 1}
	points, active := generateBends(bend, 0, 500, 500, constants.DefaultBend)

	assert.Len(t, points, 8)
	assert.Equal(t, bendPoint{500, 72}, points[7])
	assert.Equal(t, uint8(72), active)
}

func TestGradualReleaseStartsFromHeldBend(t *testing.T) {
	bend := &model.Bend{Type: model.GradualRelease, ReleasePitch: 0}
	points, active := generateBends(bend, 0, 400, 500, 72)

	assert.Len(t, points, 8)
	assert.Equal(t, bendPoint{400, 64}, points[7])
	assert.Equal(t, uint8(64), active)
}

func TestSlideOutOfDownwards(t *testing.T) {
	note := &model.Note{SlideOutOf: model.SlideOutOfDownwards}
	points := generateSlides(note, 0, 500, 500)

	// 5 semitones over the last half of the note, then the wheel reset
	assert.Len(t, points, 21)
	assert.Equal(t, bendPoint{500, 44}, points[19])
	assert.Equal(t, bendPoint{500, 64}, points[20])
}

func TestShiftSlideTargetsNextFret(t *testing.T) {
	note := &model.Note{SlideOutOf: model.SlideOutOfShiftSlide, SlideOutOfSteps: 2}
	points := generateSlides(note, 0, 500, 500)

	assert.Len(t, points, 9)
	assert.Equal(t, bendPoint{500, 72}, points[7])
	assert.Equal(t, bendPoint{500, 64}, points[8])
}

func TestSlideIntoFromBelow(t *testing.T) {
	note := &model.Note{SlideInto: model.SlideIntoFromBelow}
	points := generateSlides(note, 0, 500, 500)

	// ramps up to center over a 16th note
	assert.Len(t, points, 20)
	assert.Equal(t, bendPoint{125, 64}, points[19])
}

func TestNoSlideNoPoints(t *testing.T) {
	assert.Empty(t, generateSlides(&model.Note{}, 0, 500, 500))
}
