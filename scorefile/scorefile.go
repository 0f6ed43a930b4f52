package scorefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jsphweid/tabplay/constants"
	"github.com/jsphweid/tabplay/model"
)

// Load reads a score from a JSON file and checks it is playable.
func Load(path string) (*model.Score, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading score file %v: %w", path, err)
	}

	var score model.Score
	if err := json.Unmarshal(raw, &score); err != nil {
		return nil, fmt.Errorf("parsing score file %v: %w", path, err)
	}

	if err := validate(&score); err != nil {
		return nil, fmt.Errorf("invalid score file %v: %w", path, err)
	}
	return &score, nil
}

func validate(score *model.Score) error {
	if len(score.Systems) == 0 {
		return errors.New("score has no systems")
	}
	if len(score.Guitars) == 0 {
		return errors.New("score has no guitars")
	}

	// channel 15 is reserved for the metronome
	if len(score.Guitars) > constants.NumMidiChannels-1 {
		return fmt.Errorf("score has %v guitars, at most %v are supported",
			len(score.Guitars), constants.NumMidiChannels-1)
	}

	for i := range score.Guitars {
		if len(score.Guitars[i].Tuning) == 0 {
			return fmt.Errorf("guitar %v has no tuning", i)
		}
	}

	for i := range score.Systems {
		system := &score.Systems[i]
		if len(system.Staves) != len(score.Guitars) {
			return fmt.Errorf("system %v has %v staves for %v guitars",
				i, len(system.Staves), len(score.Guitars))
		}
		if len(system.Barlines) < 2 {
			return fmt.Errorf("system %v needs at least a start and an end barline", i)
		}
	}

	return nil
}
