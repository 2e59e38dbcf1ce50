package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	chatUC "github.com/khoahotran/career-path/internal/application/usecase/chat"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/logger"
)

type ChatHandler struct {
	chatUseCase *chatUC.ChatUseCase
	logger      logger.Logger
}

func NewChatHandler(uc *chatUC.ChatUseCase, log logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatUseCase: uc,
		logger:      log,
	}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body", err))
		return
	}

	output, err := h.chatUseCase.Execute(c.Request.Context(), chatUC.ChatInput{Message: req.Message})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: output.Reply, Failed: output.Failed})
}

func (h *ChatHandler) QuickReplies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"greeting":      chatUC.Greeting,
		"quick_replies": chatUC.QuickReplies(),
	})
}
