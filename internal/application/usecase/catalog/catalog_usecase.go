package catalog

import (
	"context"
	"slices"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/career-path/internal/domain/catalog"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/logger"
)

var tracer = otel.Tracer("catalog_usecase")

// FeaturedLimit is how many high priority updates the home page shows.
const FeaturedLimit = 2

type CatalogUseCase struct {
	repo   catalog.Repository
	logger logger.Logger
}

func NewCatalogUseCase(repo catalog.Repository, log logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, logger: log}
}

func (uc *CatalogUseCase) SearchCareers(ctx context.Context, f catalog.CareerFilter) []catalog.Career {
	_, span := tracer.Start(ctx, "SearchCareers")
	defer span.End()

	out := catalog.FilterCareers(uc.repo.Careers(), f)
	span.SetAttributes(attribute.String("category", f.Category), attribute.Int("result.count", len(out)))
	return out
}

func (uc *CatalogUseCase) CareerCategories() []string {
	return slices.Clone(catalog.CareerCategories)
}

func (uc *CatalogUseCase) GetCareer(id int) (*catalog.Career, error) {
	c, ok := uc.repo.CareerByID(id)
	if !ok {
		return nil, apperror.NewNotFound("career", strconv.Itoa(id))
	}
	return &c, nil
}

// GetCourse returns the course detail. Career ids without a detailed course
// get the placeholder course instead of an error.
func (uc *CatalogUseCase) GetCourse(ctx context.Context, id int) catalog.Course {
	_, span := tracer.Start(ctx, "GetCourse")
	defer span.End()
	span.SetAttributes(attribute.Int("course_id", id))

	c, ok := uc.repo.CourseByID(id)
	if !ok {
		uc.logger.Debug("No course detail, serving placeholder", zap.Int("course_id", id))
		return catalog.ComingSoonCourse(id)
	}
	return c
}

func (uc *CatalogUseCase) SearchScholarships(ctx context.Context, f catalog.ScholarshipFilter) []catalog.Scholarship {
	_, span := tracer.Start(ctx, "SearchScholarships")
	defer span.End()

	out := catalog.FilterScholarships(uc.repo.Scholarships(), f)
	span.SetAttributes(attribute.Int("result.count", len(out)))
	return out
}

type ScholarshipFacets struct {
	Categories []string `json:"categories"`
	States     []string `json:"states"`
}

func (uc *CatalogUseCase) ScholarshipFacets() ScholarshipFacets {
	return ScholarshipFacets{
		Categories: slices.Clone(catalog.ScholarshipCategories),
		States:     slices.Clone(catalog.ScholarshipStates),
	}
}

func (uc *CatalogUseCase) ListUpdates(category string) []catalog.Update {
	return catalog.FilterUpdates(uc.repo.Updates(), category)
}

func (uc *CatalogUseCase) FeaturedUpdates() []catalog.Update {
	return catalog.FeaturedUpdates(uc.repo.Updates(), FeaturedLimit)
}

func (uc *CatalogUseCase) UpdateCategories() []string {
	return slices.Clone(catalog.UpdateCategories)
}
