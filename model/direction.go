package model

type DirectionSymbolType int

const (
	Coda DirectionSymbolType = iota
	DoubleCoda
	Segno
	SegnoSegno
	Fine
	DaCapo
	DalSegno
	DalSegnoSegno
	ToCoda
	ToDoubleCoda
	DaCapoAlCoda
	DaCapoAlDoubleCoda
	DalSegnoAlCoda
	DalSegnoAlDoubleCoda
	DalSegnoSegnoAlCoda
	DalSegnoSegnoAlDoubleCoda
	DaCapoAlFine
	DalSegnoAlFine
	DalSegnoSegnoAlFine
	NumDirectionSymbolTypes
)

var directionText = [NumDirectionSymbolTypes]string{
	"Coda", "Double Coda", "Segno", "Segno Segno",
	"Fine", "D.C.", "D.S.", "D.S.S.", "To Coda",
	"To Dbl. Coda", "D.C. al Coda", "D.C. al Dbl. Coda",
	"D.S. al Coda", "D.S. al Dbl. Coda", "D.S.S. al Coda",
	"D.S.S. al Dbl. Coda", "D.C. al Fine", "D.S. al Fine",
	"D.S.S. al Fine",
}

func (t DirectionSymbolType) String() string {
	if t < 0 || t >= NumDirectionSymbolTypes {
		return "Unknown"
	}
	return directionText[t]
}

// ActiveSymbol is the navigation state a direction may require before it
// fires, e.g. "Fine" is only honored once a Da Capo or Dal Segno jump has
// been taken.
type ActiveSymbol int

const (
	ActiveNone ActiveSymbol = iota
	ActiveDaCapo
	ActiveDalSegno
	ActiveDalSegnoSegno
)

type DirectionSymbol struct {
	SymbolType DirectionSymbolType `json:"symbolType"`
	// ActiveSymbol is the navigation state required for this symbol to
	// trigger; ActiveNone means unconditional.
	ActiveSymbol ActiveSymbol `json:"activeSymbol,omitempty"`
	// RepeatNumber is the repeat pass required for this symbol to trigger;
	// 0 means any pass.
	RepeatNumber int `json:"repeatNumber,omitempty"`
}

// Direction anchors one or more symbols to a position within a system.
type Direction struct {
	Position int               `json:"position"`
	Symbols  []DirectionSymbol `json:"symbols"`
}
