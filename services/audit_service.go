package services

import (
	"github.com/trackline/tracker/models"
	"github.com/trackline/tracker/repositories"
)

type AuditService struct {
	repos *repositories.Repos
}

func NewAuditService(repos *repositories.Repos) *AuditService {
	return &AuditService{repos: repos}
}

func (s *AuditService) GetAuditLogs(params repositories.AuditQueryParams) ([]models.AuditLog, error) {
	return s.repos.Audit.GetAuditLogs(params)
}
