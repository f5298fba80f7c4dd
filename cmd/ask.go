package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/NathanontP/chatbot/internal/config"
	"github.com/NathanontP/chatbot/internal/knowledge"
	"github.com/NathanontP/chatbot/internal/lang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	askShowLines int
	askStrict    bool
)

// askCmd 本地调试检索效果
var askCmd = &cobra.Command{
	Use:   "ask [问题]",
	Short: "本地调试知识库检索",
	Long:  `不经过上游模型, 直接展示一条问题的检索打分结果和最终上下文摘录, 用于调试知识库内容。`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		query := strings.Join(args, " ")

		store := knowledge.NewStore(cfg.Knowledge.Path, "poll", nil, nil)
		if err := store.Reload(context.Background()); err != nil {
			return fmt.Errorf("failed to load knowledge base: %w", err)
		}

		snap := store.Current(context.Background())
		if snap.Empty() {
			fmt.Println("知识库为空:", cfg.Knowledge.Path)
			return nil
		}

		topic := knowledge.MatchTopic(query)
		code := lang.Detect(query)
		strict := askStrict || topic != knowledge.TopicNone

		fmt.Printf("问题: %s\n语言: %s  主题: %q  严格模式: %v\n\n", query, code, topic, strict)

		// 打分明细
		scored := knowledge.ScoreLines(query, snap.Content, strict)
		if len(scored) > askShowLines {
			scored = scored[:askShowLines]
		}

		rows := make([][]string, 0, len(scored))
		for _, sl := range scored {
			line := sl.Line
			if len([]rune(line)) > 60 {
				line = string([]rune(line)[:60]) + "…"
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", sl.Index+1),
				fmt.Sprintf("%.1f", sl.Score),
				line,
			})
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
			Headers("行号", "分数", "内容").
			Rows(rows...)

		fmt.Println(t)

		// 最终摘录
		window := knowledge.RetrieveLexical(query, snap, cfg.Knowledge.MaxChars, strict)
		fmt.Println("\n=== 上下文摘录 ===")
		if window == "" {
			fmt.Println("(无匹配, 将直接返回固定话术)")
		} else {
			fmt.Println(window)
		}

		return nil
	},
}

func init() {
	askCmd.Flags().IntVar(&askShowLines, "lines", 10, "展示打分最高的前 N 行")
	askCmd.Flags().BoolVar(&askStrict, "strict", false, "强制按严格模式打分")
	rootCmd.AddCommand(askCmd)
}
