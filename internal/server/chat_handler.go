package server

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/NathanontP/chatbot/internal/config"
	"github.com/NathanontP/chatbot/internal/guard"
	"github.com/NathanontP/chatbot/internal/knowledge"
	"github.com/NathanontP/chatbot/internal/lang"
	"github.com/NathanontP/chatbot/internal/llm"
	"github.com/NathanontP/chatbot/internal/memory"
	"github.com/NathanontP/chatbot/internal/model"
	"github.com/NathanontP/chatbot/internal/prompt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatHandler 处理 AI 对话请求
type ChatHandler struct {
	config    *config.Config
	store     *knowledge.Store
	llmClient *llm.Client
	cache     *memory.ReplyCache // 可选
	db        *gorm.DB           // 可选, 对话落库
}

// NewChatHandler 创建 ChatHandler
func NewChatHandler(cfg *config.Config, store *knowledge.Store, llmClient *llm.Client, cache *memory.ReplyCache, db *gorm.DB) *ChatHandler {
	return &ChatHandler{
		config:    cfg,
		store:     store,
		llmClient: llmClient,
		cache:     cache,
		db:        db,
	}
}

// ChatRequest 对话请求
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse 对话响应
type ChatResponse struct {
	Reply  string   `json:"reply"`
	Images []string `json:"images,omitempty"`
}

// Chat 处理一次对话请求
// 每个请求完全独立: 检索 -> 组装提示词 -> 调上游 -> 校验回复,
// 任何失败都只影响当前请求
func (h *ChatHandler) Chat(c *gin.Context) {
	start := time.Now()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		h.error(c, http.StatusBadRequest, "message is required")
		return
	}

	// 配置错误快速失败, 不碰上游
	if h.config.LLM.APIKey == "" {
		h.error(c, http.StatusInternalServerError, "LLM api_key is not configured")
		return
	}

	ctx := c.Request.Context()
	requestID := uuid.NewString()

	// 回复缓存命中时直接返回
	if h.cache != nil {
		if reply, ok := h.cache.Get(ctx, message); ok {
			logx.Debug("Reply cache hit: request_id=%s", requestID)
			c.JSON(http.StatusOK, ChatResponse{Reply: reply, Images: extractImages(reply)})
			return
		}
	}

	snap := h.store.Current(ctx)
	code := lang.Detect(message)
	topic := knowledge.MatchTopic(message)

	// 组装上下文摘录
	window, shortCircuit := h.buildContext(c, message, snap, topic)
	if shortCircuit {
		h.finish(c, requestID, message, guard.NoInformation, code, "fallback", "", start)
		return
	}

	system, temperature := prompt.Compose(topic, snap.Meta, window, message, code)

	raw, err := h.llmClient.Chat(ctx, system, message, temperature)
	if err != nil {
		logx.Error("Upstream completion failed: request_id=%s, %v", requestID, err)
		h.error(c, http.StatusBadGateway, "upstream error: "+err.Error())
		return
	}

	// 严格模式回复必须走 JSON 信封, 解析失败收敛为兜底话术
	var reply, mode string
	if topic != knowledge.TopicNone {
		mode = "strict"
		answer, ok := guard.Extract(raw)
		if !ok {
			reply = guard.Fallback
			mode = "fallback"
		} else {
			reply = answer
		}
	} else {
		mode = "general"
		reply = strings.TrimSpace(raw)
	}

	h.finish(c, requestID, message, reply, code, mode, window, start)
}

// buildContext 按配置的检索策略组装上下文摘录
// 返回摘录和是否短路 (知识库无匹配时直接用固定话术回复, 不调上游)
func (h *ChatHandler) buildContext(c *gin.Context, message string, snap *knowledge.Snapshot, topic knowledge.Topic) (string, bool) {
	maxChars := h.config.Knowledge.MaxChars

	if h.config.Knowledge.Retrieval == "vector" {
		window := knowledge.RetrieveVector(c.Request.Context(), message, snap,
			h.llmClient, h.config.Knowledge.Vector.Threshold, h.config.Knowledge.Vector.TopK)
		if window == "" {
			return "", true
		}
		return window, false
	}

	// 词法检索: 命中主题走严格检索, 无匹配时短路;
	// 未命中主题走通用模式, 上下文为截断后的整份文档
	if topic != knowledge.TopicNone {
		window := knowledge.RetrieveLexical(message, snap, maxChars, true)
		if window == "" {
			return "", true
		}
		return window, false
	}

	return knowledge.Truncate(snap.Content, maxChars), false
}

// finish 返回响应并完成缓存写入与对话落库
func (h *ChatHandler) finish(c *gin.Context, requestID, question, reply string, code lang.Code, mode, window string, start time.Time) {
	images := extractImages(window)

	if h.cache != nil && mode != "fallback" {
		h.cache.Set(c.Request.Context(), question, reply)
	}

	// 对话落库尽力而为, 不阻塞响应
	if h.db != nil {
		chatLog := &model.ChatLog{
			RequestID:  requestID,
			Question:   question,
			Reply:      reply,
			Language:   string(code),
			Mode:       mode,
			DurationMs: time.Since(start).Milliseconds(),
		}
		go func() {
			if err := h.db.Create(chatLog).Error; err != nil {
				logx.Warn("Failed to save chat log: %v", err)
			}
		}()
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: reply, Images: images})
}

// error 返回错误响应
func (h *ChatHandler) error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// 摘录中引用的图片: markdown 图片语法或 /images/ 开头的裸路径
var (
	markdownImagePattern = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)\)`)
	bareImagePattern     = regexp.MustCompile(`/images/[^\s)"']+`)
)

// extractImages 从上下文摘录中收集图片链接, 去重并保持出现顺序
func extractImages(text string) []string {
	if text == "" {
		return nil
	}

	var images []string
	seen := make(map[string]bool)

	add := func(link string) {
		if link == "" || seen[link] {
			return
		}
		seen[link] = true
		images = append(images, link)
	}

	for _, m := range markdownImagePattern.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range bareImagePattern.FindAllString(text, -1) {
		add(m)
	}

	return images
}
