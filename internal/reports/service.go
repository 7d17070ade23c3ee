package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/assetverse/assetverse-backend/internal/auditlog"
)

var ErrUnsupportedReport = errors.New("unsupported report type or format")

const (
	analyticsCacheTTL = 60 * time.Second
	topAssetsLimit    = 5
)

// Service builds analytics aggregates and report downloads.
type Service interface {
	Analytics(ctx context.Context, companyName string) (*Analytics, error)
	Export(ctx context.Context, req ExportRequest, ip string) ([]byte, string, string, error)
}

type service struct {
	repo     Repository
	exporter Exporter
	cache    *redis.Client
	auditSvc auditlog.Service
}

// NewService takes the shared Redis client for the analytics cache; a nil
// client disables caching.
func NewService(repo Repository, exporter Exporter, cache *redis.Client, auditSvc auditlog.Service) Service {
	return &service{
		repo:     repo,
		exporter: exporter,
		cache:    cache,
		auditSvc: auditSvc,
	}
}

func (s *service) Analytics(ctx context.Context, companyName string) (*Analytics, error) {
	cacheKey := "assetverse:analytics:" + companyName

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached Analytics
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	total, err := s.repo.TotalRequests(ctx, companyName)
	if err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}

	pending, err := s.repo.PendingCount(ctx, companyName)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending requests: %w", err)
	}

	byType, err := s.repo.RequestCountsByType(ctx, companyName)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate requests by type: %w", err)
	}

	topAssets, err := s.repo.TopRequestedAssets(ctx, companyName, topAssetsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank requested assets: %w", err)
	}

	result := &Analytics{
		CompanyName:    companyName,
		TotalRequests:  total,
		PendingCount:   pending,
		RequestsByType: byType,
		TopAssets:      topAssets,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, analyticsCacheTTL).Err(); err != nil {
				log.Printf("⚠️ analytics cache write failed: %v", err)
			}
		}
	}

	return result, nil
}

func (s *service) Export(ctx context.Context, req ExportRequest, ip string) ([]byte, string, string, error) {
	var data ReportData
	var err error

	switch req.Type {
	case ReportTypeAssets:
		data.Assets, err = s.repo.AssetInventory(ctx, req.HREmail)
	case ReportTypeRequests:
		data.Requests, err = s.repo.RequestHistory(ctx, req.HREmail)
	default:
		return nil, "", "", ErrUnsupportedReport
	}
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to load report rows: %w", err)
	}

	bytes, filename, mimeType, err := s.exporter.Export(req.Type, req.Format, data)
	if err != nil {
		s.auditSvc.LogAction(ctx, &req.HREmail, "REPORT_DOWNLOAD_FAILED", map[string]interface{}{
			"report_type": req.Type,
			"format":      req.Format,
			"error":       err.Error(),
		}, ip, "failure")
		return nil, "", "", ErrUnsupportedReport
	}

	s.auditSvc.LogAction(ctx, &req.HREmail, "REPORT_DOWNLOADED", map[string]interface{}{
		"report_type": req.Type,
		"format":      req.Format,
		"filename":    filename,
	}, ip, "success")

	return bytes, filename, mimeType, nil
}
