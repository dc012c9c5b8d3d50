package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/livp123/logconf/internal/config"
	"github.com/livp123/logconf/internal/tailer"
	"github.com/livp123/logconf/internal/utils/logger"
)

var tailHandler string

var tailCmd = &cobra.Command{
	Use:   "tail <document>",
	Short: "Follow the file sinks of a document",
	Long: `Resolve a document and follow the files its file handlers write to,
streaming new lines to stdout. Rotated files are reopened transparently.
解析文档并跟踪其文件处理器写入的文件，将新行输出到 stdout。
轮转后的文件会透明地重新打开。`,
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

		t := tailer.NewTailer()
		if err := t.WatchDocument(resolved, tailHandler); err != nil {
			return err
		}

		log := logger.Get(cmd.Context())
		log.Infow("following file handlers", "document", args[0])

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			t.Stop()
		}()

		for ev := range t.Events {
			fmt.Printf("[%s] %s\n", ev.Handler, ev.Line)
		}
		return nil
	},
}

func init() {
	tailCmd.Flags().StringVar(&tailHandler, "handler", "", "Follow only this file handler")
	RootCmd.AddCommand(tailCmd)
}
