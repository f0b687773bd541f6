package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load(".env")
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyAnalysisModel, "gpt-4o-mini")
	viper.SetDefault(KeyCommitModel, "gpt-4o-mini")
	viper.SetDefault(KeyMCPCommand, "npx")
	viper.SetDefault(KeyMCPArgs, "-y @modelcontextprotocol/server-github")
	viper.SetDefault(KeyReportDir, ".")
	viper.SetDefault(KeyLLMCallTimeout, "2m")
	viper.SetDefault(KeyToolCallTimeout, "1m")
}

func OpenAIAPIKey() string           { return viper.GetString(KeyOpenAIAPIKey) }
func LogLevel() string               { return viper.GetString(KeyLogLevel) }
func OpenAIBaseURL() string          { return viper.GetString(KeyOpenAIBaseURL) }
func AnalysisModel() string          { return viper.GetString(KeyAnalysisModel) }
func CommitModel() string            { return viper.GetString(KeyCommitModel) }
func GitHubToken() string            { return viper.GetString(KeyGitHubToken) }
func MCPCommand() string             { return viper.GetString(KeyMCPCommand) }
func MCPArgs() []string              { return viper.GetStringSlice(KeyMCPArgs) }
func CapabilityMapPath() string      { return viper.GetString(KeyCapabilityMap) }
func PostgresURL() string            { return viper.GetString(KeyPostgresURL) }
func PostgresDebug() bool            { return viper.GetBool(KeyPostgresDebug) }
func ReportDir() string              { return viper.GetString(KeyReportDir) }
func LLMCallTimeout() time.Duration  { return viper.GetDuration(KeyLLMCallTimeout) }
func ToolCallTimeout() time.Duration { return viper.GetDuration(KeyToolCallTimeout) }
