package repeats

import (
	"log"

	"github.com/jsphweid/tabplay/model"
)

// Repeat is one repeat group: a start bar, the end bars that jump back to
// it, and any alternate endings inside the group. The pass counter starts
// at zero and each repeated end bar sends playback back to the start until
// its count is exhausted.
type Repeat struct {
	start model.SystemLocation
	// remaining jumps per repeat end bar
	ends      map[model.SystemLocation]int
	endings   []model.AlternateEnding
	passCount int
}

func newRepeat(start model.SystemLocation) *Repeat {
	return &Repeat{
		start: start,
		ends:  make(map[model.SystemLocation]int),
	}
}

func (r *Repeat) addRepeatEnd(loc model.SystemLocation, repeatCount int) {
	r.ends[loc] = repeatCount
}

func (r *Repeat) addAlternateEnding(ending model.AlternateEnding) {
	r.endings = append(r.endings, ending)
}

func (r *Repeat) Start() model.SystemLocation {
	return r.start
}

// CurrentPass is the 1-based number of the pass currently being played.
func (r *Repeat) CurrentPass() int {
	return r.passCount + 1
}

func (r *Repeat) Reset() {
	r.passCount = 0
}

// PerformRepeat decides whether reaching loc triggers a jump within this
// repeat group, either back to the start bar or sideways to the alternate
// ending for the current pass.
func (r *Repeat) PerformRepeat(loc model.SystemLocation) (model.SystemLocation, bool) {
	if count, ok := r.ends[loc]; ok && r.passCount < count {
		r.passCount++
		return r.start, true
	}

	// entering an alternate ending that is not for this pass skips ahead
	// to the one that is
	for i := range r.endings {
		ending := &r.endings[i]
		if ending.Location() != loc || ending.AppliesTo(r.CurrentPass()) {
			continue
		}
		if next := r.nextAlternateEnding(); next != nil {
			return next.Location(), true
		}
		log.Printf("no alternate ending for pass %v at %v", r.CurrentPass(), loc)
		return model.SystemLocation{}, false
	}

	return model.SystemLocation{}, false
}

func (r *Repeat) nextAlternateEnding() *model.AlternateEnding {
	for i := range r.endings {
		if r.endings[i].AppliesTo(r.CurrentPass()) {
			return &r.endings[i]
		}
	}
	return nil
}
