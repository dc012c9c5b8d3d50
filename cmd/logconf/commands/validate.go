package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livp123/logconf/internal/schema"
	"github.com/livp123/logconf/pkg/errors"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document>",
	Short: "Validate a configuration document",
	Long: `Validate a configuration document's schema and cross-references.
Placeholder tokens are tolerated; value checks on fields still carrying
them are deferred to resolution.
验证配置文档的模式和交叉引用。
容忍占位符；仍携带占位符的字段的取值检查推迟到解析阶段。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := schema.Load(args[0])
		if err != nil {
			return err
		}

		result := schema.NewDocumentValidator().Validate(doc)

		for _, w := range result.Warnings {
			fmt.Printf("⚠️  %s: %s\n", w.Field, w.Message)
		}
		for _, e := range result.Errors {
			fmt.Printf("❌ %s: %s\n", e.Field, e.Message)
		}

		if !result.Valid {
			return fmt.Errorf("%w: %d error(s)", errors.ErrDocumentInvalid, len(result.Errors))
		}

		fmt.Printf("✅ %s is valid (%d warning(s))\n", args[0], len(result.Warnings))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
