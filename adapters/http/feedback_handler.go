package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	feedbackUC "github.com/khoahotran/career-path/internal/application/usecase/feedback"
	statsUC "github.com/khoahotran/career-path/internal/application/usecase/stats"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/logger"
)

type FeedbackHandler struct {
	feedbackUseCase *feedbackUC.FeedbackUseCase
	statsUseCase    *statsUC.StatsUseCase
	logger          logger.Logger
}

func NewFeedbackHandler(uc *feedbackUC.FeedbackUseCase, stats *statsUC.StatsUseCase, log logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackUseCase: uc,
		statsUseCase:    stats,
		logger:          log,
	}
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("name and message are required", err))
		return
	}

	f, err := h.feedbackUseCase.Submit(c.Request.Context(), feedbackUC.SubmitInput{
		Name:     req.Name,
		District: req.District,
		State:    req.State,
		Email:    req.Email,
		Message:  req.Message,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": f.ID, "message": "Thank you for your feedback!"})
}

func (h *FeedbackHandler) List(c *gin.Context) {
	limit, offset := pageQuery(c)
	items, err := h.feedbackUseCase.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *FeedbackHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.feedbackUseCase.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FeedbackHandler) StatsByState(c *gin.Context) {
	counts, err := h.statsUseCase.FeedbackByState(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": counts})
}
