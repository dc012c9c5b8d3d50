package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livp123/logconf/internal/activate"
	"github.com/livp123/logconf/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check <document>",
	Short: "Dry-run a document against the logging facility",
	Long: `Load, resolve and strictly validate a document, then verify that
every formatter and filter can be constructed - without opening any sink.
加载、解析并严格验证文档，再确认每个格式化器和过滤器都能构造，
但不打开任何输出端。`,
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
		if err := activate.Check(resolved); err != nil {
			return err
		}

		fmt.Printf("✅ %s would activate cleanly\n", args[0])
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
