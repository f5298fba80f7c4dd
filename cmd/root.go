package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "chatbot",
	Short: "店铺知识库问答机器人",
	Long: `基于店铺知识库的问答机器人后端。

从本地 markdown 知识库检索相关内容, 组装提示词后调用上游大模型,
通过 HTTP 接口对外提供问答服务。`,
}

// Execute 执行根命令
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件路径 (默认搜索 ./config.yaml)")
}
