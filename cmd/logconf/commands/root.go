package commands

import (
	"github.com/spf13/cobra"

	"github.com/livp123/logconf/internal/resolve"
	"github.com/livp123/logconf/internal/utils/logger"
)

var (
	varFlags  []string
	varsFile  string
	envPrefix string
	logLevel  string
	logFile   string
)

var RootCmd = &cobra.Command{
	Use:   "logconf",
	Short: "Load, validate and activate logging configuration documents",
	// Short: 加载、验证并激活日志配置文档
	Long: `logconf loads logging configuration documents (JSON or YAML),
validates their schema and cross-references, resolves $name placeholders
from a variable mapping, and hands the result to the logging facility.
logconf 加载日志配置文档（JSON 或 YAML），验证其模式和交叉引用，
用变量映射解析 $name 占位符，并将结果交给日志设施。`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Config{
			Level: logLevel,
			Path:  logFile,
		})

		// Inject logger into context
		// 将 Logger 注入 Context
		ctx := logger.WithContext(cmd.Context(), logger.Get(nil))
		cmd.SetContext(ctx)
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringArrayVar(&varFlags, "var", nil, "Placeholder value as name=value (repeatable)")
	RootCmd.PersistentFlags().StringVar(&varsFile, "vars-file", "", "File of name=value lines supplying placeholder values")
	RootCmd.PersistentFlags().StringVar(&envPrefix, "env-prefix", "", "Read placeholder values from environment variables with this prefix")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Diagnostic log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Diagnostic log file (default stderr)")
}

// gatherVars merges placeholder values from every configured source.
// Precedence, lowest to highest: environment, vars file, --var flags.
// gatherVars 合并所有来源的占位符取值。
// 优先级从低到高：环境变量、vars 文件、--var 标志。
func gatherVars() (resolve.Vars, error) {
	mappings := make([]resolve.Vars, 0, 3)

	if envPrefix != "" {
		mappings = append(mappings, resolve.FromEnv(envPrefix))
	}
	if varsFile != "" {
		fromFile, err := resolve.FromFile(varsFile)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, fromFile)
	}
	if len(varFlags) > 0 {
		fromFlags, err := resolve.FromPairs(varFlags)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, fromFlags)
	}

	return resolve.Merge(mappings...), nil
}
