package services

import (
	"time"

	"github.com/caseflow/caseflow/internal/analytics"
	"github.com/caseflow/caseflow/internal/config"
	"github.com/caseflow/caseflow/internal/models"
	"github.com/caseflow/caseflow/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Notifier delivers a digest somewhere. Delivery transports (email,
// chat) live outside this module; the default notifier just logs.
type Notifier interface {
	Notify(digest *ProjectDigest) error
}

// LogNotifier writes digests to the application log.
type LogNotifier struct{}

func (LogNotifier) Notify(d *ProjectDigest) error {
	logger.Info().
		Uint("project_id", d.ProjectID).
		Str("project", d.ProjectName).
		Int("stale", len(d.StaleCases)).
		Int("always_failing", len(d.AlwaysFailing)).
		Msg("stale-test digest")
	return nil
}

// DigestCase is one test case surfaced by the digest.
type DigestCase struct {
	TestCaseID             uint   `json:"test_case_id"`
	Title                  string `json:"title"`
	HealthScore            int    `json:"health_score"`
	DaysSinceLastExecution *int   `json:"days_since_last_execution"`
}

// ProjectDigest is the per-project summary of stale and always-failing
// cases produced on each scheduled run.
type ProjectDigest struct {
	ProjectID     uint         `json:"project_id"`
	ProjectName   string       `json:"project_name"`
	GeneratedAt   time.Time    `json:"generated_at"`
	StaleCases    []DigestCase `json:"stale_cases"`
	AlwaysFailing []DigestCase `json:"always_failing"`
}

type DigestService struct {
	db        *gorm.DB
	health    *HealthReportService
	calendars *CalendarService
	notifier  Notifier
	cfg       config.DigestConfig
	scheduler *cron.Cron
}

func NewDigestService(db *gorm.DB, cfg config.DigestConfig, notifier Notifier) *DigestService {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &DigestService{
		db:        db,
		health:    NewHealthReportService(db),
		calendars: NewCalendarService(),
		notifier:  notifier,
		cfg:       cfg,
	}
}

// StartScheduler registers the cron entry and starts the scheduler.
// No-op when the digest is disabled in config.
func (s *DigestService) StartScheduler() {
	if !s.cfg.Enabled {
		return
	}

	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc(s.cfg.Schedule, func() {
		if err := s.Run(time.Now()); err != nil {
			logger.Errorf("[Digest] run failed: %v", err)
		}
	}); err != nil {
		logger.Errorf("[Digest] invalid schedule %q: %v", s.cfg.Schedule, err)
		return
	}

	s.scheduler.Start()
	logger.Infof("[Digest] Scheduler started (cron: %s, country: %s)", s.cfg.Schedule, s.cfg.Country)
}

func (s *DigestService) StopScheduler() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Run generates and delivers digests for every project, unless now
// falls on a non-business day for the configured country.
func (s *DigestService) Run(now time.Time) error {
	if !s.shouldRun(now) {
		logger.Debug().Time("now", now).Msg("digest skipped: non-business day")
		return nil
	}

	var projects []models.Project
	if err := s.db.Find(&projects).Error; err != nil {
		return err
	}

	for _, p := range projects {
		digest, err := s.buildDigest(p, now)
		if err != nil {
			logger.Errorf("[Digest] project %d failed: %v", p.ID, err)
			continue
		}
		if len(digest.StaleCases) == 0 && len(digest.AlwaysFailing) == 0 {
			continue
		}
		if err := s.notifier.Notify(digest); err != nil {
			logger.Errorf("[Digest] delivery for project %d failed: %v", p.ID, err)
		}
	}
	return nil
}

func (s *DigestService) shouldRun(now time.Time) bool {
	return s.calendars.IsBusinessDay(now, s.cfg.Country)
}

func (s *DigestService) buildDigest(p models.Project, now time.Time) (*ProjectDigest, error) {
	report, err := s.health.generate(&HealthReportRequest{
		ProjectID: p.ID,
		PageSize:  PageSizeAll,
	}, now)
	if err != nil {
		return nil, err
	}

	digest := &ProjectDigest{
		ProjectID:   p.ID,
		ProjectName: p.Name,
		GeneratedAt: now.UTC(),
	}
	for _, item := range report.Items {
		c := DigestCase{
			TestCaseID:             item.TestCaseID,
			Title:                  item.Title,
			HealthScore:            item.HealthScore,
			DaysSinceLastExecution: item.DaysSinceLastExecution,
		}
		if item.IsStale {
			digest.StaleCases = append(digest.StaleCases, c)
		}
		if item.HealthStatus == analytics.HealthAlwaysFailing {
			digest.AlwaysFailing = append(digest.AlwaysFailing, c)
		}
	}
	return digest, nil
}
