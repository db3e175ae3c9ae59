package envdelta

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/envdelta/envdelta/internal/report"
	"github.com/envdelta/envdelta/internal/rules"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the built-in risk rules",
		RunE:  runRules,
	}
	rootCmd.AddCommand(cmd)
}

type ruleInfo struct {
	ID       string `json:"id"`
	Severity string `json:"severity"`
	Key      string `json:"keyPattern,omitempty"`
	Value    string `json:"valuePattern,omitempty"`
}

func runRules(_ *cobra.Command, _ []string) error {
	rs := rules.DefaultRules()
	if flagJSON {
		out := struct {
			Version string     `json:"version"`
			Rules   []ruleInfo `json:"rules"`
		}{Version: rs.Version.String()}
		for _, r := range rs.Rules {
			out.Rules = append(out.Rules, ruleInfo{
				ID:       r.ID,
				Severity: string(r.Severity),
				Key:      patternString(r.KeyPattern),
				Value:    patternString(r.ValuePattern),
			})
		}
		return report.WriteJSON(os.Stdout, out)
	}

	fmt.Printf("Rule set v%s (%d rules)\n", rs.Version, len(rs.Rules))
	for _, r := range rs.Rules {
		scope := "key"
		switch {
		case r.KeyPattern != nil && r.ValuePattern != nil:
			scope = "key+value"
		case r.ValuePattern != nil:
			scope = "value"
		}
		fmt.Printf("  %-7s %-20s matches %s\n", r.Severity, r.ID, scope)
	}
	return nil
}

func patternString(re *regexp.Regexp) string {
	if re == nil {
		return ""
	}
	return re.String()
}
