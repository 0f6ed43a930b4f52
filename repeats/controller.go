package repeats

import (
	"log"
	"sort"

	"github.com/jsphweid/tabplay/model"
)

// Controller drives score navigation during playback: repeat bars,
// alternate endings and musical directions (D.C., D.S., Coda, Fine). The
// player asks it at every location whether to jump somewhere else.
type Controller struct {
	score *model.Score

	// repeats ordered by start location; repeats[0] is the implicit group
	// anchored at the start of the score
	repeats []*Repeat

	// pending jump directions by location, consumed as they are performed
	directions map[model.SystemLocation][]model.DirectionSymbol

	// first occurrence of each marker symbol (Segno, Coda, ...)
	symbolLocations map[model.DirectionSymbolType]model.SystemLocation

	activeSymbol model.ActiveSymbol
}

func NewController(score *model.Score) *Controller {
	c := &Controller{score: score}
	c.Reset()
	return c
}

// Reset restores the controller to the state before any playback: repeat
// passes back to zero, consumed directions restored, no active symbol.
func (c *Controller) Reset() {
	c.activeSymbol = model.ActiveNone
	c.indexRepeats()
	c.indexDirections()
}

func (c *Controller) indexRepeats() {
	// an unmatched repeat end bar repeats from the start of the score
	current := newRepeat(model.SystemLocation{})
	c.repeats = []*Repeat{current}

	for systemIndex := range c.score.Systems {
		system := &c.score.Systems[systemIndex]
		for i := range system.Barlines {
			barline := &system.Barlines[i]
			loc := model.SystemLocation{System: systemIndex, Position: barline.Position}

			if barline.RepeatStart {
				current = newRepeat(loc)
				c.repeats = append(c.repeats, current)
			}
			if barline.RepeatEnd {
				current.addRepeatEnd(loc, barline.RepeatCount)
			}
		}
	}

	for _, ending := range c.score.AlternateEndings {
		if r := c.previousRepeatGroup(ending.Location()); r != nil {
			r.addAlternateEnding(ending)
		}
	}
}

func (c *Controller) indexDirections() {
	c.directions = make(map[model.SystemLocation][]model.DirectionSymbol)
	c.symbolLocations = make(map[model.DirectionSymbolType]model.SystemLocation)

	for systemIndex := range c.score.Systems {
		system := &c.score.Systems[systemIndex]
		for _, direction := range system.Directions {
			loc := model.SystemLocation{System: systemIndex, Position: direction.Position}
			for _, symbol := range direction.Symbols {
				if isMarker(symbol.SymbolType) {
					if _, ok := c.symbolLocations[symbol.SymbolType]; !ok {
						c.symbolLocations[symbol.SymbolType] = loc
					}
					continue
				}
				c.directions[loc] = append(c.directions[loc], symbol)
			}
		}
	}
}

// isMarker reports whether a symbol is a jump target rather than a jump.
// Fine is a jump: it sends playback to the end once a D.C. or D.S. is
// active.
func isMarker(t model.DirectionSymbolType) bool {
	switch t {
	case model.Coda, model.DoubleCoda, model.Segno, model.SegnoSegno:
		return true
	}
	return false
}

// previousRepeatGroup returns the innermost repeat group governing loc: the
// last repeat whose start bar is at or before it.
func (c *Controller) previousRepeatGroup(loc model.SystemLocation) *Repeat {
	i := sort.Search(len(c.repeats), func(i int) bool {
		return loc.Less(c.repeats[i].start)
	})
	if i == 0 {
		return nil
	}
	return c.repeats[i-1]
}

// CheckForRepeat decides whether reaching loc triggers a jump. Directions
// are checked before repeat bars; only the first pending direction at a
// location is considered, and a performed direction is consumed.
func (c *Controller) CheckForRepeat(loc model.SystemLocation) (model.SystemLocation, bool) {
	if symbols := c.directions[loc]; len(symbols) > 0 {
		symbol := symbols[0]
		if c.shouldPerform(&symbol, loc) {
			c.directions[loc] = symbols[1:]
			// navigating away from a repeat group starts its count over
			if r := c.previousRepeatGroup(loc); r != nil {
				r.Reset()
			}
			// a target equal to the current location is not a jump, e.g. a
			// missing-Segno fallback to the score start when already there
			if to := c.performDirection(&symbol); to != loc {
				return to, true
			}
			return model.SystemLocation{}, false
		}
	}

	if r := c.previousRepeatGroup(loc); r != nil {
		if to, ok := r.PerformRepeat(loc); ok && to != loc {
			return to, true
		}
	}

	return model.SystemLocation{}, false
}

func (c *Controller) shouldPerform(symbol *model.DirectionSymbol, loc model.SystemLocation) bool {
	if symbol.ActiveSymbol != model.ActiveNone && symbol.ActiveSymbol != c.activeSymbol {
		return false
	}
	if symbol.RepeatNumber != 0 {
		r := c.previousRepeatGroup(loc)
		if r == nil || r.CurrentPass() != symbol.RepeatNumber {
			return false
		}
	}
	return true
}

func (c *Controller) performDirection(symbol *model.DirectionSymbol) model.SystemLocation {
	switch symbol.SymbolType {
	case model.DaCapo, model.DaCapoAlCoda, model.DaCapoAlDoubleCoda, model.DaCapoAlFine:
		c.activeSymbol = model.ActiveDaCapo
		c.resetRepeats()
		return model.SystemLocation{}

	case model.DalSegno, model.DalSegnoAlCoda, model.DalSegnoAlDoubleCoda, model.DalSegnoAlFine:
		c.activeSymbol = model.ActiveDalSegno
		c.resetRepeats()
		return c.symbolLocation(model.Segno)

	case model.DalSegnoSegno, model.DalSegnoSegnoAlCoda, model.DalSegnoSegnoAlDoubleCoda,
		model.DalSegnoSegnoAlFine:
		c.activeSymbol = model.ActiveDalSegnoSegno
		c.resetRepeats()
		return c.symbolLocation(model.SegnoSegno)

	case model.ToCoda:
		return c.symbolLocation(model.Coda)

	case model.ToDoubleCoda:
		return c.symbolLocation(model.DoubleCoda)

	case model.Fine:
		return c.endLocation()
	}

	log.Printf("unexpected direction symbol: %v", symbol.SymbolType)
	return model.SystemLocation{}
}

// symbolLocation returns where a marker symbol sits. A jump to a marker the
// score never placed falls back to the start of the score.
func (c *Controller) symbolLocation(t model.DirectionSymbolType) model.SystemLocation {
	loc, ok := c.symbolLocations[t]
	if !ok {
		log.Printf("direction target %v does not exist in the score", t)
		return model.SystemLocation{}
	}
	return loc
}

// endLocation is one past the last position of the last system, so jumping
// there ends playback.
func (c *Controller) endLocation() model.SystemLocation {
	last := len(c.score.Systems) - 1
	if last < 0 {
		return model.SystemLocation{}
	}
	return model.SystemLocation{
		System:   last,
		Position: c.score.Systems[last].PositionCount(),
	}
}

// resetRepeats starts every repeat group over. Da Capo and Dal Segno jumps
// replay repeated sections in full.
func (c *Controller) resetRepeats() {
	for _, r := range c.repeats {
		r.Reset()
	}
}
