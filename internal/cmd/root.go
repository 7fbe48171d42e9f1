package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "visafill",
	Short: "Fill the Lebanon visa application form from applicant JSON",
	Long: `Visafill renders the Lebanon visa application form and fills it with
data from a JSON applicant record: text fields, visa-type checkboxes, and
the right-to-left Arabic accompaniment line, which is shaped and drawn with
the first available Arabic-capable font.

Fill a form:        visafill fill --data applicant.json --output filled.pdf
Dump the geometry:  visafill layout --out layout.yml`,
}

func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}
