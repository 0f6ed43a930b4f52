package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jsphweid/tabplay/export"
	"github.com/jsphweid/tabplay/generate"
	"github.com/jsphweid/tabplay/scorefile"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [score file]",
	Short: "Export a score's event timeline as a standard MIDI file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		score, err := scorefile.Load(args[0])
		if err != nil {
			log.Fatal(err)
		}

		events := generate.NewGenerator(score).Generate()
		if err := export.WriteFile(exportOut, events); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %v events to %v\n", len(events), exportOut)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "out.mid", "output file path")
	rootCmd.AddCommand(exportCmd)
}
