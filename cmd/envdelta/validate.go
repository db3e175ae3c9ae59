package envdelta

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/envdelta/envdelta/internal/envparse"
	"github.com/envdelta/envdelta/internal/flatten"
	"github.com/envdelta/envdelta/internal/pipeline"
	"github.com/envdelta/envdelta/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:   "validate <file> [<file>...]",
		Short: "Parse config files and report issues without diffing",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runValidate,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagFormat, "format", "", "config format: env|json|yaml (default: by extension)")
	cmd.Flags().StringVar(&flagProfile, "profile", "", "env profile: dotenv|compose")
	cmd.Flags().BoolVar(&flagMultiline, "multiline", false, "env: allow quoted values to span lines")
	cmd.Flags().BoolVar(&flagExpand, "expand", false, "env: resolve $VAR references")
	cmd.Flags().StringVar(&flagArrayMode, "array-mode", "", "json/yaml arrays: index|stringify|ignore")
	cmd.Flags().BoolVar(&flagStrict, "strict", false, "yaml: treat duplicate keys as a hard error")
	cmd.Flags().IntVar(&flagMaxKeys, "max-keys", 0, "flattened key cap (0 = default)")
}

func runValidate(_ *cobra.Command, args []string) error {
	cwd, _ := os.Getwd()
	lcfg, gcfg := loadConfigs(cwd)

	format := pipeline.Format(pickString(flagFormat, lcfg.Format, gcfg.Format))
	if format == "" {
		format = detectFormat(args[0])
	}

	in := pipeline.ValidateInput{
		Format: format,
		Env: envparse.Options{
			Profile:        envparse.Profile(pickString(flagProfile, lcfg.Profile, gcfg.Profile)),
			Multiline:      pickBool(flagMultiline, lcfg.Multiline, gcfg.Multiline),
			InlineComments: true,
			Expand:         pickBool(flagExpand, lcfg.Expand, gcfg.Expand),
		},
		Flatten: flatten.Options{
			ArrayMode: flatten.ArrayMode(pickString(flagArrayMode, lcfg.ArrayMode, gcfg.ArrayMode)),
			MaxKeys:   pickInt(flagMaxKeys, lcfg.MaxKeys, gcfg.MaxKeys),
			Strict:    pickBool(flagStrict, lcfg.Strict, gcfg.Strict),
		},
	}
	for _, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		in.Sides = append(in.Sides, string(b))
	}

	res, err := pipeline.Validate(in)
	if err != nil {
		return err
	}
	if flagJSON {
		return report.WriteJSON(os.Stdout, res)
	}
	report.PrintValidate(os.Stdout, res, report.PrintOptions{NoColor: colorDisabled()})
	if res.Totals.Errors > 0 {
		os.Exit(1)
	}
	return nil
}
