package envdelta

import (
	"fmt"
	"os"
	"path/filepath"

	semver "github.com/blang/semver/v4"
	"github.com/spf13/cobra"

	"github.com/envdelta/envdelta/internal/config"
	"github.com/envdelta/envdelta/internal/envparse"
	"github.com/envdelta/envdelta/internal/flatten"
	"github.com/envdelta/envdelta/internal/gitsrc"
	"github.com/envdelta/envdelta/internal/pipeline"
	"github.com/envdelta/envdelta/internal/redact"
	"github.com/envdelta/envdelta/internal/report"
	"github.com/envdelta/envdelta/internal/rules"
	"github.com/envdelta/envdelta/internal/types"
)

var (
	flagFormat         string
	flagProfile        string
	flagMultiline      bool
	flagInlineComments bool
	flagExpand         bool
	flagArrayMode      string
	flagStrict         bool
	flagMaxKeys        int
	flagIncludeKeys    string
	flagExcludeKeys    string
	flagNoRedact       bool
	flagShowUnchanged  bool
	flagFromRev        string
)

func init() {
	cmd := &cobra.Command{
		Use:   "compare <left> <right> | compare --from-rev <rev> <file>",
		Short: "Diff two config files and report risk findings",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runCompare,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagFormat, "format", "", "config format: env|json|yaml (default: by extension)")
	cmd.Flags().StringVar(&flagProfile, "profile", "", "env profile: dotenv|compose")
	cmd.Flags().BoolVar(&flagMultiline, "multiline", false, "env: allow quoted values to span lines")
	cmd.Flags().BoolVar(&flagInlineComments, "inline-comments", true, "env: strip unquoted trailing comments")
	cmd.Flags().BoolVar(&flagExpand, "expand", false, "env: resolve $VAR references")
	cmd.Flags().StringVar(&flagArrayMode, "array-mode", "", "json/yaml arrays: index|stringify|ignore")
	cmd.Flags().BoolVar(&flagStrict, "strict", false, "yaml: treat duplicate keys as a hard error")
	cmd.Flags().IntVar(&flagMaxKeys, "max-keys", 0, "flattened key cap (0 = default)")
	cmd.Flags().StringVar(&flagIncludeKeys, "include-keys", "", "comma-separated key globs to keep")
	cmd.Flags().StringVar(&flagExcludeKeys, "exclude-keys", "", "comma-separated key globs to drop")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "print raw values instead of masked ones")
	cmd.Flags().BoolVar(&flagShowUnchanged, "show-unchanged", false, "include unchanged entries in the table")
	cmd.Flags().StringVar(&flagFromRev, "from-rev", "", "compare the file at this git revision against the working copy")
}

func runCompare(_ *cobra.Command, args []string) error {
	var leftPath, rightPath string
	var leftText, rightText []byte
	var err error

	if flagFromRev != "" {
		if len(args) != 1 {
			return fmt.Errorf("--from-rev takes exactly one file")
		}
		rightPath = args[0]
		leftPath = fmt.Sprintf("%s:%s", flagFromRev, args[0])
		leftText, err = gitsrc.ShowFile(filepath.Dir(args[0]), flagFromRev, args[0])
		if err != nil {
			return err
		}
		rightText, err = os.ReadFile(rightPath)
		if err != nil {
			return err
		}
	} else {
		if len(args) != 2 {
			return fmt.Errorf("compare needs two files (or --from-rev with one)")
		}
		leftPath, rightPath = args[0], args[1]
		if leftText, err = os.ReadFile(leftPath); err != nil {
			return err
		}
		if rightText, err = os.ReadFile(rightPath); err != nil {
			return err
		}
	}

	cwd, _ := os.Getwd()
	lcfg, gcfg := loadConfigs(cwd)

	rs := rules.DefaultRules()
	if err := checkRulesVersion(rs, lcfg, gcfg); err != nil {
		return err
	}

	format := pipeline.Format(pickString(flagFormat, lcfg.Format, gcfg.Format))
	if format == "" {
		format = detectFormat(rightPath)
	}

	in := pipeline.CompareInput{
		Left:   string(leftText),
		Right:  string(rightText),
		Format: format,
		Env: envparse.Options{
			Profile:        envparse.Profile(pickString(flagProfile, lcfg.Profile, gcfg.Profile)),
			Multiline:      pickBool(flagMultiline, lcfg.Multiline, gcfg.Multiline),
			InlineComments: flagInlineComments,
			Expand:         pickBool(flagExpand, lcfg.Expand, gcfg.Expand),
		},
		Flatten: flatten.Options{
			ArrayMode: flatten.ArrayMode(pickString(flagArrayMode, lcfg.ArrayMode, gcfg.ArrayMode)),
			MaxKeys:   pickInt(flagMaxKeys, lcfg.MaxKeys, gcfg.MaxKeys),
			Strict:    pickBool(flagStrict, lcfg.Strict, gcfg.Strict),
		},
		Rules:       rs,
		IncludeKeys: splitList(pickString(flagIncludeKeys, lcfg.IncludeKeys, gcfg.IncludeKeys)),
		ExcludeKeys: splitList(pickString(flagExcludeKeys, lcfg.ExcludeKeys, gcfg.ExcludeKeys)),
	}

	res, err := pipeline.Compare(in)
	if err != nil {
		return err
	}

	switch {
	case flagJSON:
		if err := report.WriteJSON(os.Stdout, res); err != nil {
			return err
		}
	case flagSARIF:
		err := report.WriteSARIF(os.Stdout, report.SARIFInput{
			Version:     version,
			Findings:    res.Findings,
			LeftSource:  string(leftText),
			RightSource: string(rightText),
			LeftURI:     leftPath,
			RightURI:    rightPath,
			Format:      format,
		})
		if err != nil {
			return err
		}
	default:
		report.PrintCompare(os.Stdout, res, report.PrintOptions{
			NoColor:       colorDisabled(),
			NoRedact:      flagNoRedact,
			ShowUnchanged: flagShowUnchanged,
			Redact: redact.Options{
				PrefixLen:     pickInt(0, lcfg.RedactPrefix, gcfg.RedactPrefix),
				SuffixLen:     pickInt(0, lcfg.RedactSuffix, gcfg.RedactSuffix),
				MinMaskLength: pickInt(0, lcfg.RedactMin, gcfg.RedactMin),
			},
		})
	}

	if shouldFail(res.Findings, pickString(flagFailOn, lcfg.FailOn, gcfg.FailOn)) {
		os.Exit(1)
	}
	return nil
}

func loadConfigs(root string) (local, global config.FileConfig) {
	if c, err := config.LoadLocal(root); err == nil {
		local = c
	}
	if c, err := config.LoadGlobal(); err == nil {
		global = c
	}
	return local, global
}

// checkRulesVersion refuses to run when the config pins a minimum rule-set
// version newer than the built-in one.
func checkRulesVersion(rs rules.RuleSet, lcfg, gcfg config.FileConfig) error {
	pin := pickString("", lcfg.MinRulesVersion, gcfg.MinRulesVersion)
	if pin == "" {
		return nil
	}
	min, err := semver.ParseTolerant(pin)
	if err != nil {
		return fmt.Errorf("invalid min_rules_version %q: %w", pin, err)
	}
	if rs.Version.LT(min) {
		return fmt.Errorf("built-in rule set %s is older than required %s; upgrade envdelta", rs.Version, min)
	}
	return nil
}

func shouldFail(findings []types.Finding, failOn string) bool {
	if failOn == "" {
		failOn = "high"
	}
	threshold := types.Severity(failOn)
	if failOn == "none" || threshold.Rank() == 0 {
		return false
	}
	for _, f := range findings {
		if f.Severity.Rank() >= threshold.Rank() {
			return true
		}
	}
	return false
}
