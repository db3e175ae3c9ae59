package envdelta

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/envdelta/envdelta/internal/rules"
)

// gendocs regenerates the rules section in README.md between the markers
// <!-- BEGIN:RULES --> and <!-- END:RULES -->.
func init() {
	cmd := &cobra.Command{
		Use:   "gendocs",
		Short: "Regenerate the README rules table",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := "README.md"
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			start := []byte("<!-- BEGIN:RULES -->")
			end := []byte("<!-- END:RULES -->")
			i := bytes.Index(b, start)
			j := bytes.Index(b, end)
			if i < 0 || j < 0 || j <= i {
				return fmt.Errorf("markers not found in README.md")
			}

			rs := rules.DefaultRules()
			var out strings.Builder
			fmt.Fprintf(&out, "\nBuilt-in rule set v%s:\n\n", rs.Version)
			out.WriteString("| ID | Severity | Scope |\n|---|---|---|\n")
			for _, r := range rs.Rules {
				scope := "key"
				switch {
				case r.KeyPattern != nil && r.ValuePattern != nil:
					scope = "key+value"
				case r.ValuePattern != nil:
					scope = "value"
				}
				fmt.Fprintf(&out, "| %s | %s | %s |\n", r.ID, r.Severity, scope)
			}

			var nb bytes.Buffer
			nb.Write(b[:i])
			nb.Write(start)
			nb.WriteString("\n")
			nb.WriteString(out.String())
			nb.Write(end)
			nb.Write(b[j+len(end):])
			return os.WriteFile(path, nb.Bytes(), 0644)
		},
	}
	rootCmd.AddCommand(cmd)
}
