package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/career-path/internal/application/session"
	profileUC "github.com/khoahotran/career-path/internal/application/usecase/profile"
	"github.com/khoahotran/career-path/internal/domain/profile"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.profileUseCase.GetProfile(c.Request.Context(), GetSessionFromGinContext(c))
	if err != nil {
		c.Error(err)
		return
	}

	body := gin.H{"profile": ToProfileDTO(p)}
	if p.MotivationalEnabled {
		body["motivational_message"] = profileUC.MotivationalMessage()
	}
	c.JSON(http.StatusOK, body)
}

func (h *ProfileHandler) UpdateGoals(c *gin.Context) {
	var req UpdateGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	p, err := h.profileUseCase.UpdateGoals(c.Request.Context(), GetSessionFromGinContext(c), profileUC.GoalsInput{
		CareerGoal:          req.CareerGoal,
		TargetYear:          req.TargetYear,
		CurrentClass:        req.CurrentClass,
		PreferredStream:     req.PreferredStream,
		MotivationalEnabled: req.MotivationalEnabled,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": ToProfileDTO(p)})
}

func (h *ProfileHandler) ToggleCareer(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	out, err := h.profileUseCase.ToggleSavedCareer(c.Request.Context(), GetSessionFromGinContext(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToggleResponse{Saved: out.Saved, Profile: ToProfileDTO(out.Profile)})
}

func (h *ProfileHandler) RemoveCareer(c *gin.Context) {
	h.remove(c, h.profileUseCase.RemoveSavedCareer)
}

func (h *ProfileHandler) ToggleScholarship(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	out, err := h.profileUseCase.ToggleSavedScholarship(c.Request.Context(), GetSessionFromGinContext(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToggleResponse{Saved: out.Saved, Profile: ToProfileDTO(out.Profile)})
}

func (h *ProfileHandler) RemoveScholarship(c *gin.Context) {
	h.remove(c, h.profileUseCase.RemoveSavedScholarship)
}

type removeFunc = func(ctx context.Context, sess *session.Session, id int) (*profile.UserProfile, error)

func (h *ProfileHandler) remove(c *gin.Context, fn removeFunc) {
	id, err := intParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	p, err := fn(c.Request.Context(), GetSessionFromGinContext(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": ToProfileDTO(p)})
}

func (h *ProfileHandler) ToggleStep(c *gin.Context) {
	courseID, err := intParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	step, err := intParam(c, "step")
	if err != nil {
		c.Error(err)
		return
	}
	var req ToggleStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("timeline is required", err))
		return
	}

	out, err := h.profileUseCase.ToggleRoadmapStep(c.Request.Context(), GetSessionFromGinContext(c), profileUC.ToggleStepInput{
		CourseID:  courseID,
		StepIndex: step,
		Timeline:  req.Timeline,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToggleStepResponse{
		CourseID:  courseID,
		Progress:  out.Progress,
		Completed: out.Completed,
		Percent:   out.Percent,
	})
}

func (h *ProfileHandler) CourseProgress(c *gin.Context) {
	courseID, err := intParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	pct, err := h.profileUseCase.CompletionPercentage(c.Request.Context(), GetSessionFromGinContext(c), courseID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, CourseProgressResponse{CourseID: courseID, Percent: pct})
}

func (h *ProfileHandler) ProgressSummary(c *gin.Context) {
	summary, err := h.profileUseCase.ProgressSummary(c.Request.Context(), GetSessionFromGinContext(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
