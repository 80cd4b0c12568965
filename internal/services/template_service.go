package services

import (
	"context"

	"github.com/delizza/mailing-backend/internal/models"
	"github.com/delizza/mailing-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure templateService implements TemplateService
var _ TemplateService = (*templateService)(nil)

// TemplateService handles template-related business logic
type TemplateService interface {
	CreateTemplate(ctx context.Context, template *models.Template) error
	GetTemplateByID(ctx context.Context, id primitive.ObjectID) (*models.Template, error)
	GetTemplateByName(ctx context.Context, name string) (*models.Template, error)
	GetAllTemplates(ctx context.Context, page, limit int) ([]*models.Template, error)
	UpdateTemplate(ctx context.Context, template *models.Template) error
	DeleteTemplate(ctx context.Context, id primitive.ObjectID) error
	GetTemplateCount(ctx context.Context) (int64, error)
}

type templateService struct {
	templateRepo repositories.TemplateRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo repositories.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

// CreateTemplate creates a new template
func (s *templateService) CreateTemplate(ctx context.Context, template *models.Template) error {
	return s.templateRepo.Create(ctx, template)
}

// GetTemplateByID retrieves a template by ID
func (s *templateService) GetTemplateByID(ctx context.Context, id primitive.ObjectID) (*models.Template, error) {
	return s.templateRepo.FindByID(ctx, id)
}

// GetTemplateByName retrieves a template by name
func (s *templateService) GetTemplateByName(ctx context.Context, name string) (*models.Template, error) {
	return s.templateRepo.FindByName(ctx, name)
}

// GetAllTemplates retrieves all templates with pagination
func (s *templateService) GetAllTemplates(ctx context.Context, page, limit int) ([]*models.Template, error) {
	return s.templateRepo.FindAll(ctx, page, limit)
}

// UpdateTemplate updates a template
func (s *templateService) UpdateTemplate(ctx context.Context, template *models.Template) error {
	return s.templateRepo.Update(ctx, template)
}

// DeleteTemplate deletes a template
func (s *templateService) DeleteTemplate(ctx context.Context, id primitive.ObjectID) error {
	return s.templateRepo.Delete(ctx, id)
}

// GetTemplateCount gets the total number of templates
func (s *templateService) GetTemplateCount(ctx context.Context) (int64, error) {
	return s.templateRepo.Count(ctx)
}
