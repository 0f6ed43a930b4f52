package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jsphweid/tabplay/event"
	"github.com/jsphweid/tabplay/generate"
	"github.com/jsphweid/tabplay/scorefile"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [score file]",
	Short: "Print a score's generated event timeline",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		score, err := scorefile.Load(args[0])
		if err != nil {
			log.Fatal(err)
		}

		events := generate.NewGenerator(score).Generate()
		for i := range events {
			e := &events[i]
			fmt.Printf("%10.1fms %v ch=%v %v\n", e.Start, e.Location, e.Channel, describeEvent(e))
		}
	},
}

func describeEvent(e *event.Event) string {
	switch e.Kind {
	case event.PlayNote:
		return fmt.Sprintf("play pitch=%v vel=%v dur=%.1fms", e.Pitch, e.Velocity, e.Duration)
	case event.StopNote:
		return fmt.Sprintf("stop pitch=%v", e.Pitch)
	case event.Metronome:
		return fmt.Sprintf("tick vel=%v dur=%.1fms", e.Velocity, e.Duration)
	case event.Bend:
		return fmt.Sprintf("bend amount=%v", e.BendAmount)
	case event.Vibrato:
		if e.On {
			if e.Vibrato == event.WideVibrato {
				return "vibrato on (wide)"
			}
			return "vibrato on"
		}
		return "vibrato off"
	case event.LetRing:
		if e.On {
			return "let ring on"
		}
		return "let ring off"
	}
	return "unknown"
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
