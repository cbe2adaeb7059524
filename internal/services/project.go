package services

import (
	"regexp"
	"strings"

	"github.com/caseflow/caseflow/internal/models"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type ProjectListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Keyword  string `form:"keyword"`
}

type ProjectListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Project `json:"items"`
}

func (s *ProjectService) List(req *ProjectListRequest) (*ProjectListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.Project{})
	if req.Keyword != "" {
		like := "%" + req.Keyword + "%"
		query = query.Where("name LIKE ? OR slug LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var items []models.Project
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("name").Find(&items).Error; err != nil {
		return nil, err
	}

	return &ProjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Slug        string `json:"slug" binding:"omitempty,max=100"`
	Description string `json:"description"`
}

func (s *ProjectService) Create(req *CreateProjectRequest, createdBy uint) (*models.Project, error) {
	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}

	project := models.Project{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		CreatedBy:   createdBy,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a name and collapses non-alphanumeric runs to
// single hyphens.
func Slugify(name string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}
