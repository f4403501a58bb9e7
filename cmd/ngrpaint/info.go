package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the pyramid geometry of a configured NGR slide",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	s, err := openSlide()
	if err != nil {
		return err
	}
	defer s.Close()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tWIDTH\tHEIGHT\tTILE\tDOWNSAMPLE")
	for level := int32(0); level < s.LevelCount(); level++ {
		w, h := s.Dimensions(level)
		tileW, tileH := s.TileGeometry(level)
		fmt.Fprintf(tw, "%d\t%d\t%d\t%dx%d\t%.2f\n",
			level, w, h, tileW, tileH, s.Downsample(level))
	}
	return tw.Flush()
}
