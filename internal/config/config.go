package config

// Config 全局配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Knowledge KnowledgeConfig `mapstructure:"knowledge"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Images    ImagesConfig    `mapstructure:"images"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
}

// HTTPConfig HTTP 监听配置
type HTTPConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
}

// LLMConfig LLM 配置
type LLMConfig struct {
	Model          string `mapstructure:"model"`
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	EmbeddingModel string `mapstructure:"embedding_model"`
	Timeout        int    `mapstructure:"timeout"`    // 秒, 上游调用超时
	MaxTokens      int    `mapstructure:"max_tokens"` // 回复最大 token 数
}

// KnowledgeConfig 知识库配置
type KnowledgeConfig struct {
	Path      string       `mapstructure:"path"`      // 知识库 markdown 文件路径
	Retrieval string       `mapstructure:"retrieval"` // "lexical" | "vector"
	Reload    string       `mapstructure:"reload"`    // "poll" | "watch", 二选一
	MaxChars  int          `mapstructure:"max_chars"` // 上下文摘录的最大字符数
	Vector    VectorConfig `mapstructure:"vector"`
}

// VectorConfig 向量检索配置
type VectorConfig struct {
	Threshold float64 `mapstructure:"threshold"` // 相似度阈值, 不同部署取 0.75~0.9
	TopK      int     `mapstructure:"top_k"`
}

// CacheConfig 回复缓存配置 (Redis)
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // 秒
}

// ImagesConfig 图片目录配置
type ImagesConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}
