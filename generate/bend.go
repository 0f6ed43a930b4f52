package generate

import (
	"log"

	"github.com/jsphweid/tabplay/constants"
	"github.com/jsphweid/tabplay/model"
)

// bendPoint is an intermediate (timestamp, bend amount) sample produced by
// the bend/slide generator before it becomes a Bend event.
type bendPoint struct {
	timestamp float64
	amount    uint8
}

// gradualBend appends one sample per integer step between from and to,
// evenly spaced across duration and moving monotonically toward to: one
// pitch bend message per scale step, not per unit of time.
func gradualBend(points []bendPoint, start float64, duration float64, from uint8, to uint8) []bendPoint {
	numSteps := int(to) - int(from)
	if numSteps < 0 {
		numSteps = -numSteps
	}
	if numSteps == 0 {
		return points
	}

	stepDuration := duration / float64(numSteps)
	for i := 1; i <= numSteps; i++ {
		timestamp := start + stepDuration*float64(i)
		if from < to {
			points = append(points, bendPoint{timestamp, from + uint8(i)})
		} else {
			points = append(points, bendPoint{timestamp, from - uint8(i)})
		}
	}
	return points
}

// generateBends renders a note's bend as a series of bend samples and
// returns the bend value carried forward to the next note in the voice.
// activeBend is the carried-in value from a previous and-hold bend.
func generateBends(bend *model.Bend, start float64, duration float64, tempoMs float64,
	activeBend uint8) ([]bendPoint, uint8) {

	var points []bendPoint

	bendAmount := constants.DefaultBend + bend.BentPitch
	releaseAmount := constants.DefaultBend + bend.ReleasePitch

	switch bend.Type {
	case model.PreBend, model.NormalBend, model.BendAndHold, model.PreBendAndHold:
		// these types carry no explicit release target: the release value
		// is the bent pitch itself
		releaseAmount = bendAmount
	}

	// pre-bends jump straight to the bent pitch at note start
	if bend.Type == model.PreBend || bend.Type == model.PreBendAndRelease || bend.Type == model.PreBendAndHold {
		points = append(points, bendPoint{start, bendAmount})
	}

	// gradual bend up, over a 32nd note by default or over the whole note
	if bend.Type == model.NormalBend || bend.Type == model.BendAndHold {
		if bend.Duration == 0 {
			points = gradualBend(points, start, tempoMs/8.0, constants.DefaultBend, bendAmount)
		} else {
			points = gradualBend(points, start, duration, constants.DefaultBend, bendAmount)
		}
	}

	// for a bend and release, bend up over the first half of the note
	if bend.Type == model.BendAndRelease {
		points = gradualBend(points, start, duration/2, constants.DefaultBend, bendAmount)
	}

	// ramp back down to the release pitch
	switch bend.Type {
	case model.PreBendAndRelease:
		points = gradualBend(points, start, duration, bendAmount, releaseAmount)
	case model.BendAndRelease:
		points = gradualBend(points, start+duration/2, duration/2, bendAmount, releaseAmount)
	case model.GradualRelease:
		points = gradualBend(points, start, duration, activeBend, releaseAmount)
	}

	// restore the release pitch bend value after the note
	if bend.Type == model.PreBend || bend.Type == model.ImmediateRelease || bend.Type == model.NormalBend {
		points = append(points, bendPoint{start + duration, releaseAmount})
	}

	// and-hold variants persist the bend into the next note in the voice
	if bend.Type == model.BendAndHold || bend.Type == model.PreBendAndHold {
		return points, bendAmount
	}
	return points, releaseAmount
}

// slideOutOfSteps is the half-step span used for undirected slides below or
// above the fretted pitch.
const slideOutOfSteps = 5

const slideBelowBend = constants.DefaultBend - slideOutOfSteps*constants.BendStepsPerSemitone
const slideAboveBend = constants.DefaultBend + slideOutOfSteps*constants.BendStepsPerSemitone

// generateSlides renders a note's slide-into and slide-out-of gestures as
// bend samples. The two directions are independent and may both be present.
func generateSlides(note *model.Note, start float64, noteDuration float64, tempoMs float64) []bendPoint {
	var points []bendPoint

	if note.SlideOutOf != model.SlideOutOfNone {
		bendAmount := constants.DefaultBend

		switch note.SlideOutOf {
		case model.SlideOutOfShiftSlide, model.SlideOutOfLegatoSlide:
			bendAmount = uint8(int(constants.DefaultBend) +
				int(note.SlideOutOfSteps)*constants.BendStepsPerSemitone)
		case model.SlideOutOfDownwards:
			bendAmount = slideBelowBend
		case model.SlideOutOfUpwards:
			bendAmount = slideAboveBend
		}

		// slide through the last half of the note, which sounds more
		// natural than sliding for the whole duration
		slideDuration := noteDuration / 2.0
		points = gradualBend(points, start+slideDuration, slideDuration,
			constants.DefaultBend, bendAmount)

		// reset the pitch wheel after the note
		points = append(points, bendPoint{start + noteDuration, constants.DefaultBend})
	}

	if note.SlideInto != model.SlideIntoNone {
		bendAmount := constants.DefaultBend

		switch note.SlideInto {
		case model.SlideIntoFromBelow:
			bendAmount = slideBelowBend
		case model.SlideIntoFromAbove:
			bendAmount = slideAboveBend
		default:
			log.Printf("unsupported slide into type: %v", note.SlideInto)
		}

		// slide in over a 16th note
		slideDuration := tempoMs / 4.0
		points = gradualBend(points, start, slideDuration, bendAmount, constants.DefaultBend)
	}

	return points
}
