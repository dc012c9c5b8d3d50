package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livp123/logconf/internal/config"
	"github.com/livp123/logconf/internal/schema"
)

var renderFormat string

var renderCmd = &cobra.Command{
	Use:   "render <document>",
	Short: "Resolve a document and print the result",
	Long: `Resolve every placeholder in a document from the supplied variable
mapping, validate the result strictly, and print it to stdout.
用提供的变量映射解析文档中的所有占位符，严格验证结果并输出到 stdout。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vars, err := gatherVars()
		if err != nil {
			return err
		}

		mgr := config.NewManager(args[0])
		if err := mgr.Load(); err != nil {
			return err
		}
		mgr.SetVars(vars)
		if err := mgr.Resolve(); err != nil {
			return err
		}

		resolved, err := mgr.Resolved()
		if err != nil {
			return err
		}

		format := schema.Format(renderFormat)
		if renderFormat == "" {
			format, err = schema.FormatForPath(args[0])
			if err != nil {
				return err
			}
		}

		data, err := schema.Encode(resolved, format)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "Output format: yaml or json (default: input format)")
	RootCmd.AddCommand(renderCmd)
}
