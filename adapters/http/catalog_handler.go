package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogUC "github.com/khoahotran/career-path/internal/application/usecase/catalog"
	statsUC "github.com/khoahotran/career-path/internal/application/usecase/stats"
	"github.com/khoahotran/career-path/internal/domain/catalog"
	"github.com/khoahotran/career-path/pkg/logger"
)

const defaultPopularLimit = 5

type CatalogHandler struct {
	catalogUseCase *catalogUC.CatalogUseCase
	statsUseCase   *statsUC.StatsUseCase
	logger         logger.Logger
}

func NewCatalogHandler(uc *catalogUC.CatalogUseCase, stats *statsUC.StatsUseCase, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: uc,
		statsUseCase:   stats,
		logger:         log,
	}
}

func (h *CatalogHandler) ListCareers(c *gin.Context) {
	careers := h.catalogUseCase.SearchCareers(c.Request.Context(), catalog.CareerFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	})
	c.JSON(http.StatusOK, gin.H{"data": careers, "count": len(careers)})
}

func (h *CatalogHandler) CareerCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.catalogUseCase.CareerCategories()})
}

func (h *CatalogHandler) GetCareer(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	career, err := h.catalogUseCase.GetCareer(id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, career)
}

func (h *CatalogHandler) PopularCareers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPopularLimit)))
	if err != nil || limit <= 0 || limit > 20 {
		limit = defaultPopularLimit
	}
	popular, err := h.statsUseCase.PopularCareers(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": popular})
}

func (h *CatalogHandler) GetCourse(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToCourseResponse(h.catalogUseCase.GetCourse(c.Request.Context(), id)))
}

func (h *CatalogHandler) ListScholarships(c *gin.Context) {
	scholarships := h.catalogUseCase.SearchScholarships(c.Request.Context(), catalog.ScholarshipFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		State:    c.Query("state"),
	})
	c.JSON(http.StatusOK, gin.H{"data": scholarships, "count": len(scholarships)})
}

func (h *CatalogHandler) ScholarshipFacets(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogUseCase.ScholarshipFacets())
}

func (h *CatalogHandler) ListUpdates(c *gin.Context) {
	updates := h.catalogUseCase.ListUpdates(c.Query("category"))
	c.JSON(http.StatusOK, gin.H{
		"data":       updates,
		"categories": h.catalogUseCase.UpdateCategories(),
	})
}

func (h *CatalogHandler) FeaturedUpdates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.catalogUseCase.FeaturedUpdates()})
}
