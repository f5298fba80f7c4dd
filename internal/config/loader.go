package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig 加载配置文件
// 配置文件缺失时使用默认值启动, 环境变量以 CHATBOT_ 为前缀覆盖
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 设置配置文件
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// 默认配置文件搜索路径
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.chatbot")
		v.AddConfigPath("/etc/chatbot")
	}

	// 支持环境变量
	v.SetEnvPrefix("CHATBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 设置默认值
	setDefaults(v)

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 如果是找不到配置文件，则使用默认配置
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析配置
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 替换环境变量
	expandEnvVars(&config)

	return &config, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	// Server 默认配置
	v.SetDefault("server.http.port", 8080)
	v.SetDefault("server.http.debug", false)

	// LLM 默认配置
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.embedding_model", "text-embedding-3-small")
	v.SetDefault("llm.timeout", 30)
	v.SetDefault("llm.max_tokens", 500)

	// Knowledge 默认配置
	v.SetDefault("knowledge.path", "./data/knowledge.md")
	v.SetDefault("knowledge.retrieval", "lexical")
	v.SetDefault("knowledge.reload", "poll")
	v.SetDefault("knowledge.max_chars", 3000)
	v.SetDefault("knowledge.vector.threshold", 0.75)
	v.SetDefault("knowledge.vector.top_k", 4)

	// Cache 默认配置
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", "127.0.0.1:6379")
	v.SetDefault("cache.ttl", 300)

	// Images 默认配置
	v.SetDefault("images.enabled", false)
	v.SetDefault("images.dir", "./data/images")
}

// expandEnvVars 展开配置中的环境变量
func expandEnvVars(config *Config) {
	config.LLM.APIKey = os.ExpandEnv(config.LLM.APIKey)
	config.LLM.BaseURL = os.ExpandEnv(config.LLM.BaseURL)
	config.Cache.Password = os.ExpandEnv(config.Cache.Password)
}
