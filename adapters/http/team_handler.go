package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	teamUC "github.com/khoahotran/career-path/internal/application/usecase/team"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/logger"
)

const maxPhotoSize = 5 << 20

type TeamHandler struct {
	teamUseCase *teamUC.TeamUseCase
	logger      logger.Logger
}

func NewTeamHandler(uc *teamUC.TeamUseCase, log logger.Logger) *TeamHandler {
	return &TeamHandler{teamUseCase: uc, logger: log}
}

func (req TeamMemberRequest) toInput() teamUC.MemberInput {
	return teamUC.MemberInput{
		Name:        req.Name,
		Role:        req.Role,
		Bio:         req.Bio,
		LinkedInURL: req.LinkedInURL,
		Email:       req.Email,
		SortOrder:   req.SortOrder,
	}
}

func (h *TeamHandler) List(c *gin.Context) {
	members, err := h.teamUseCase.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	out := make([]TeamMemberDTO, len(members))
	for i, m := range members {
		out[i] = ToTeamMemberDTO(m)
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *TeamHandler) Create(c *gin.Context) {
	var req TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	m, err := h.teamUseCase.Create(c.Request.Context(), req.toInput())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *TeamHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	m, err := h.teamUseCase.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *TeamHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.teamUseCase.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TeamHandler) UploadPhoto(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("file is required", err))
		return
	}
	if fileHeader.Size > maxPhotoSize {
		c.Error(apperror.NewInvalidInput("photo must be 5MB or smaller", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	m, err := h.teamUseCase.UploadPhoto(c.Request.Context(), id, file)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, m)
}
