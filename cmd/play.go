package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/jsphweid/tabplay/constants"
	"github.com/jsphweid/tabplay/midiout"
	"github.com/jsphweid/tabplay/model"
	"github.com/jsphweid/tabplay/player"
	"github.com/jsphweid/tabplay/scorefile"
)

var playPort int
var playSpeed int
var playSystem int
var playPosition int
var playNoMetronome bool

var playCmd = &cobra.Command{
	Use:   "play [score file]",
	Short: "Play a score through a MIDI output port",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defer midi.CloseDriver()

		score, err := scorefile.Load(args[0])
		if err != nil {
			log.Fatal(err)
		}

		port, err := midiout.Open(playPort)
		if err != nil {
			log.Fatal(err)
		}
		defer port.Close()
		fmt.Printf("playing through %v\n", port)

		p := player.New(score, port, player.Options{
			Speed:       playSpeed,
			NoMetronome: playNoMetronome,
			OnSystemChanged: func(system int) {
				fmt.Printf("system %v\n", system)
			},
		})

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		go func() {
			<-interrupt
			p.Stop()
		}()

		p.Play(model.SystemLocation{System: playSystem, Position: playPosition})
		p.Wait()
	},
}

func init() {
	playCmd.Flags().IntVar(&playPort, "port", constants.GetPreferredMidiPort(),
		"MIDI output port number")
	playCmd.Flags().IntVar(&playSpeed, "speed", 100, "playback speed percentage")
	playCmd.Flags().IntVar(&playSystem, "system", 0, "system to start playback from")
	playCmd.Flags().IntVar(&playPosition, "position", 0, "position to start playback from")
	playCmd.Flags().BoolVar(&playNoMetronome, "no-metronome", false, "mute the metronome")
	rootCmd.AddCommand(playCmd)
}
