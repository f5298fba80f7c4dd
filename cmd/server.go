package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/NathanontP/chatbot/internal/config"
	"github.com/NathanontP/chatbot/internal/database"
	"github.com/NathanontP/chatbot/internal/knowledge"
	"github.com/NathanontP/chatbot/internal/llm"
	"github.com/NathanontP/chatbot/internal/memory"
	"github.com/NathanontP/chatbot/internal/server"
	"github.com/spf13/cobra"
)

// serverCmd 启动 HTTP 服务
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动问答服务",
	Long:  `加载知识库并启动 HTTP 问答服务。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		llmClient := llm.NewClient(&llm.Config{
			Model:          cfg.LLM.Model,
			APIKey:         cfg.LLM.APIKey,
			BaseURL:        cfg.LLM.BaseURL,
			EmbeddingModel: cfg.LLM.EmbeddingModel,
			Timeout:        cfg.LLM.Timeout,
			MaxTokens:      cfg.LLM.MaxTokens,
		})

		db := database.GetDB()
		defer func() { _ = database.Close() }()

		// 向量检索模式下才需要向分块生成向量
		var embedder knowledge.Embedder
		var embCache *knowledge.EmbeddingCache
		if cfg.Knowledge.Retrieval == "vector" {
			embedder = llmClient
			embCache = knowledge.NewEmbeddingCache(db, cfg.LLM.EmbeddingModel)
		}

		store := knowledge.NewStore(cfg.Knowledge.Path, cfg.Knowledge.Reload, embedder, embCache)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// 启动时先加载一次, 文件缺失降级为空知识库
		if err := store.Reload(ctx); err != nil {
			logx.Warn("Initial knowledge load failed: %v", err)
		}

		// 目录监听模式下启动后台重载任务
		if cfg.Knowledge.Reload == "watch" {
			watcher, err := knowledge.NewWatcher(store)
			if err != nil {
				return fmt.Errorf("failed to create knowledge watcher: %w", err)
			}
			go func() {
				if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
					logx.Error("Knowledge watcher stopped: %v", err)
				}
			}()
		}

		// 回复缓存 (可选), 连不上只告警不阻塞启动
		var cache *memory.ReplyCache
		if cfg.Cache.Enabled {
			cache, err = memory.NewReplyCache(cfg.Cache.Addr, cfg.Cache.Password,
				cfg.Cache.DB, time.Duration(cfg.Cache.TTL)*time.Second)
			if err != nil {
				logx.Warn("Reply cache disabled: %v", err)
				cache = nil
			}
		}

		srv := server.NewHTTPGinServer(cfg, store, llmClient, cache, db)

		// 优雅关闭
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case sig := <-quit:
			logx.Info("Received signal %s, shutting down", sig)
			cancel()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			return srv.Stop(shutdownCtx)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
