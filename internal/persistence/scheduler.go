package persistence

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"swtd/internal/persistence/interfaces"
	"swtd/internal/providers"
	"swtd/internal/services"
	"swtd/internal/structures"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.TrackerServiceInterface
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	saveInterval := s.config.Persistence.SaveInterval
	cleanupInterval := s.config.Tracking.CleanupCheckInterval

	s.cron.AddFunc(gron.Every(saveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Infof(providers.TypeApp, "Persisted data to file %s", s.config.Persistence.FilePath)
	})

	s.cron.AddFunc(gron.Every(cleanupInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()
		s.sweep()
	})

	s.cron.Start()
}

// sweep runs the daily retention pass. The service guarantees at most one
// real sweep per calendar day, so firing the check every few minutes is fine.
func (s *Scheduler) sweep() {
	days, weeks, swept := s.service.SweepIfNeeded(time.Now())
	if !swept {
		return
	}
	s.metrics.AddSweepDeleted(days, weeks)
	s.logger.Infof(providers.TypeApp, "Retention sweep removed %d day and %d week buckets", days, weeks)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	s.sweep()
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting watch-time data to file...")
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.TrackerServiceInterface, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
		metrics:     metrics,
	}
}
