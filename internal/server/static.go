package server

import (
	"bytes"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// 无扩展名文件按文件头签名识别格式
var magicSignatures = []struct {
	prefix      []byte
	contentType string
}{
	{[]byte{0xFF, 0xD8, 0xFF}, "image/jpeg"},
	{[]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, "image/png"},
	{[]byte("GIF8"), "image/gif"},
}

// handleImage 提供图片文件
// 优先按扩展名解析 Content-Type, 无扩展名时按文件头嗅探
func (s *HTTPGinServer) handleImage(c *gin.Context) {
	// 只取文件名, 防止路径穿越
	name := filepath.Base(c.Param("name"))
	path := filepath.Join(s.config.Images.Dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		s.error(c, http.StatusNotFound, "image not found")
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = sniffImageType(data)
	}

	c.Data(http.StatusOK, contentType, data)
}

// sniffImageType 按魔数识别 JPEG/PNG/GIF/WEBP
func sniffImageType(data []byte) string {
	for _, sig := range magicSignatures {
		if bytes.HasPrefix(data, sig.prefix) {
			return sig.contentType
		}
	}
	// WEBP: RIFF....WEBP
	if len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return "image/webp"
	}
	return "application/octet-stream"
}
