package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sbeydoun/visafill/internal/layout"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Dump or validate the form layout",
	Long: `Layout prints the embedded form geometry as YAML, or validates a
custom layout file. Dump it, adjust coordinates for a revised template, and
pass the file back with 'fill --layout'.`,
	RunE: runLayout,
}

var (
	layoutOut   string
	layoutCheck string
)

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().StringVar(&layoutOut, "out", "", "Write the embedded layout to a file instead of stdout")
	layoutCmd.Flags().StringVar(&layoutCheck, "check", "", "Validate a layout file and exit")
}

func runLayout(cmd *cobra.Command, args []string) error {
	if layoutCheck != "" {
		l, err := layout.Load(layoutCheck)
		if err != nil {
			return err
		}
		fmt.Printf("%s: OK (%d coordinates, %d text fields)\n", layoutCheck, len(l.Coordinates), len(l.TextFields))
		return nil
	}

	if layoutOut != "" {
		if err := os.WriteFile(layoutOut, layout.DefaultYAML(), 0644); err != nil {
			return fmt.Errorf("writing layout: %w", err)
		}
		fmt.Printf("Wrote embedded layout to %s\n", layoutOut)
		return nil
	}

	_, err := os.Stdout.Write(layout.DefaultYAML())
	return err
}
