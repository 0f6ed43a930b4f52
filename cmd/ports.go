package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List available MIDI output ports",
	Run: func(cmd *cobra.Command, args []string) {
		defer midi.CloseDriver()

		outs := midi.GetOutPorts()
		if len(outs) == 0 {
			fmt.Println("no MIDI output ports found")
			return
		}
		for _, out := range outs {
			fmt.Printf("%v: %v\n", out.Number(), out.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
