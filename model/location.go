package model

import "fmt"

// SystemLocation identifies a spot in the score. Locations order by system
// first, then by position within the system; this is the universal key for
// events, repeats, directions and the playback cursor.
type SystemLocation struct {
	System   int `json:"system"`
	Position int `json:"position"`
}

func (l SystemLocation) Compare(other SystemLocation) int {
	if l.System != other.System {
		if l.System < other.System {
			return -1
		}
		return 1
	}
	if l.Position != other.Position {
		if l.Position < other.Position {
			return -1
		}
		return 1
	}
	return 0
}

func (l SystemLocation) Less(other SystemLocation) bool {
	return l.Compare(other) < 0
}

func (l SystemLocation) String() string {
	return fmt.Sprintf("(%v, %v)", l.System, l.Position)
}
