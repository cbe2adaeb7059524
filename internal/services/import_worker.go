package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/caseflow/caseflow/internal/config"
	"github.com/caseflow/caseflow/pkg/logger"
	"github.com/hibiken/asynq"
)

// ImportWorker consumes queued JUnit import tasks when Redis is enabled.
type ImportWorker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	importer *JUnitImportService
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

func NewImportWorker(cfg *config.RedisConfig, importer *JUnitImportService) *ImportWorker {
	if !cfg.Enabled {
		return nil
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Errorf("[ImportWorker] Error processing task %s: %v", task.Type(), err)
			}),
		},
	)

	return &ImportWorker{
		server:   server,
		mux:      asynq.NewServeMux(),
		importer: importer,
	}
}

// Start begins consuming import tasks
func (w *ImportWorker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	w.mux.HandleFunc(TaskTypeImport, w.handleImportTask)
	w.running = true
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		logger.Infof("[ImportWorker] Starting async worker...")
		if err := w.server.Run(w.mux); err != nil {
			logger.Errorf("[ImportWorker] Server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the worker
func (w *ImportWorker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	logger.Infof("[ImportWorker] Shutting down...")
	w.server.Shutdown()
	w.running = false
	w.wg.Wait()
}

func (w *ImportWorker) handleImportTask(ctx context.Context, t *asynq.Task) error {
	var task ImportTask
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		logger.Errorf("[ImportWorker] Failed to unmarshal task: %v", err)
		return err
	}

	logger.Infof("[ImportWorker] Processing import: import_id=%s, project_id=%d", task.ImportID, task.ProjectID)
	_, err := w.importer.ImportWithID(task.ImportID, task.ProjectID, task.ReportXML, task.Source, task.ImportedBy)
	return err
}

// ProcessImportTask is the sync-queue processor: same path as the async
// worker, minus asynq.
func ProcessImportTask(importer *JUnitImportService) func(context.Context, *ImportTask) error {
	return func(ctx context.Context, task *ImportTask) error {
		_, err := importer.ImportWithID(task.ImportID, task.ProjectID, task.ReportXML, task.Source, task.ImportedBy)
		return err
	}
}
