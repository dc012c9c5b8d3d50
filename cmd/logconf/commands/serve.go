package commands

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/livp123/logconf/internal/activate"
	"github.com/livp123/logconf/internal/config"
	"github.com/livp123/logconf/internal/utils/logger"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve <document>",
	Short: "Activate a document and serve facility metrics",
	Long: `Activate a document with record instrumentation enabled and expose
Prometheus metrics over HTTP. SIGHUP reloads, re-resolves and re-activates
the document; the previous activation is flushed and closed.
激活文档（启用记录计量）并通过 HTTP 暴露 Prometheus 指标。
SIGHUP 重新加载、解析并激活文档；旧的激活会被刷新并关闭。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get(cmd.Context())

		vars, err := gatherVars()
		if err != nil {
			return err
		}

		mgr := config.NewManager(args[0])
		mgr.SetVars(vars)

		load := func() (*activate.Registry, error) {
			if err := mgr.Load(); err != nil {
				return nil, err
			}
			if err := mgr.Resolve(); err != nil {
				return nil, err
			}
			return mgr.Activate(activate.Options{InstrumentRecords: true})
		}

		registry, err := load()
		if err != nil {
			return err
		}
		log.Infow("document activated", "document", args[0], "loggers", registry.Names())

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{
			Addr:              serveListen,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorw("metrics server failed", "error", err)
			}
		}()
		log.Infow("metrics server listening", "addr", serveListen)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
		for sig := range sigCh {
			if sig != syscall.SIGHUP {
				break
			}
			// Reload keeps the old activation on any failure.
			// 重新加载失败时保留旧的激活。
			next, err := load()
			if err != nil {
				log.Errorw("reload failed, keeping previous activation", "error", err)
				continue
			}
			if err := registry.Close(); err != nil {
				log.Warnw("previous activation close reported errors", "error", err)
			}
			registry = next
			log.Infow("document reactivated", "document", args[0], "loggers", registry.Names())
		}

		server.Close()
		return registry.Close()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", ":9122", "Metrics listen address")
	RootCmd.AddCommand(serveCmd)
}
