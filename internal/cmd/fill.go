package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sbeydoun/visafill/internal/applicant"
	"github.com/sbeydoun/visafill/internal/crypto"
	"github.com/sbeydoun/visafill/internal/form"
	"github.com/sbeydoun/visafill/internal/layout"
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill the visa form from an applicant JSON file",
	Long: `Fill renders the form, writes the applicant's values at the mapped
coordinates and saves the result as a PDF.

The Arabic accompaniment line is shaped (joined letters, right-to-left
order) and drawn with the first font that resolves from the fallback list:
macOS system fonts, then the common Linux font packages, then the embedded
builtin. If nothing resolves, the text is still drawn with Helvetica and a
warning is printed; the field is never left blank.

With --encrypt the PDF is age-encrypted with a generated passphrase, which
is printed once. Keep it: the form contains passport data.`,
	RunE: runFill,
}

var (
	fillData      string
	fillOutput    string
	fillLayout    string
	fillReference string
	fillEncrypt   bool
)

func init() {
	rootCmd.AddCommand(fillCmd)
	fillCmd.Flags().StringVarP(&fillData, "data", "d", "visa_applicant_data.json", "Path to applicant JSON file")
	fillCmd.Flags().StringVarP(&fillOutput, "output", "o", "filled_visa_form.pdf", "Output path for the filled PDF")
	fillCmd.Flags().StringVar(&fillLayout, "layout", "", "Custom form layout YAML (defaults to the embedded layout)")
	fillCmd.Flags().StringVar(&fillReference, "reference", "", "Application reference to stamp as a QR code")
	fillCmd.Flags().BoolVar(&fillEncrypt, "encrypt", false, "Age-encrypt the output with a generated passphrase")
}

func runFill(cmd *cobra.Command, args []string) error {
	l, err := loadLayout(fillLayout)
	if err != nil {
		return err
	}

	fmt.Printf("Loading applicant data from: %s\n", fillData)
	rec, err := applicant.Load(fillData)
	if err != nil {
		return err
	}

	filler := &form.Filler{Layout: l, Reference: fillReference}
	res, err := filler.Generate(rec)
	if err != nil {
		return fmt.Errorf("filling form: %w", err)
	}

	reportArabic(res.Arabic)
	fmt.Printf("Filled %d text fields, %d checkboxes\n", len(res.Fields), len(res.Checkboxes))

	if dir := filepath.Dir(fillOutput); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	output := res.PDF
	if fillEncrypt {
		passphrase, err := crypto.GeneratePassphrase(crypto.DefaultPassphraseBytes)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := crypto.Encrypt(&buf, bytes.NewReader(res.PDF), passphrase); err != nil {
			return err
		}
		output = buf.Bytes()
		fmt.Printf("Passphrase (shown once): %s\n", passphrase)
	}

	if err := os.WriteFile(fillOutput, output, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Printf("Checksum: %s\n", crypto.HashBytes(output))
	if res.FullName != "" {
		fmt.Printf("Form filled for %s: %s\n", res.FullName, fillOutput)
	} else {
		fmt.Printf("Form filled: %s\n", fillOutput)
	}
	return nil
}

// reportArabic prints one line per font candidate outcome, so deployment
// environments missing fonts are visible in the logs.
func reportArabic(res form.InsertionResult) {
	for _, a := range res.Attempts {
		fmt.Printf("Font %s unavailable: %v\n", a.Candidate.Name, a.Err)
	}
	switch res.Status {
	case form.Inserted:
		fmt.Printf("Arabic accompaniment inserted using %s\n", res.Font)
	case form.InsertedWithFallback:
		fmt.Printf("Warning: all Arabic fonts failed, accompaniment drawn with %s (letters will not join)\n", res.Font)
	case form.Skipped:
		fmt.Println("No accompaniment name provided, field left empty")
	}
}

func loadLayout(path string) (*layout.Layout, error) {
	if path == "" {
		return layout.Default()
	}
	return layout.Load(path)
}
