package config

const (
	KeyOpenAIAPIKey    = "openai_api_key"
	KeyOpenAIBaseURL   = "openai_base_url"
	KeyAnalysisModel   = "analysis_model"
	KeyCommitModel     = "commit_model"
	KeyGitHubToken     = "github_token"
	KeyLogLevel        = "log_level"
	KeyMCPCommand      = "mcp_command"
	KeyMCPArgs         = "mcp_args"
	KeyCapabilityMap   = "capability_map"
	KeyPostgresURL     = "postgres_url"
	KeyPostgresDebug   = "postgres_debug"
	KeyReportDir       = "report_dir"
	KeyLLMCallTimeout  = "llm_call_timeout"
	KeyToolCallTimeout = "tool_call_timeout"
)
