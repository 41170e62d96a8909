package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/agentos/backend/internal/core/ports"
	"github.com/agentos/backend/internal/domain"
	"github.com/agentos/backend/internal/infrastructure/logger"
	"github.com/agentos/backend/internal/infrastructure/metrics"
	"github.com/agentos/backend/pkg/utils/textutil"
)

const cachedAgentMarker = "cached"

// activeTask tracks one in-flight processing unit: its cancel function and a
// channel closed when the worker returns.
type activeTask struct {
	cancel context.CancelFunc
	done   chan struct{}
}

type orchestrator struct {
	tasks    ports.TaskRepository
	events   ports.TaskEventRepository
	cache    ports.ContentCache
	pool     ports.AgentPool
	notifier ports.Notifier
	logger   *logger.Logger

	queue   *taskQueue
	tracker *MetricsTracker
	slots   chan struct{}

	mu     sync.Mutex
	active map[string]*activeTask

	agentTimeout time.Duration
	resultTTL    time.Duration
	statusTTL    time.Duration
	backoff      time.Duration

	cron       *cron.Cron
	rootCtx    context.Context
	rootCancel context.CancelFunc
	wg         sync.WaitGroup
}

type OrchestratorConfig struct {
	TaskRepo  ports.TaskRepository
	EventRepo ports.TaskEventRepository
	Cache     ports.ContentCache
	AgentPool ports.AgentPool
	Notifier  ports.Notifier
	Logger    *logger.Logger

	// MaxConcurrent bounds how many tasks may be in processing at once.
	MaxConcurrent  int
	AgentTimeout   time.Duration
	ResultCacheTTL time.Duration
	StatusCacheTTL time.Duration
	QueueBackoff   time.Duration
}

func NewOrchestrator(cfg OrchestratorConfig) ports.Orchestrator {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 10
	}
	if cfg.AgentTimeout <= 0 {
		cfg.AgentTimeout = 60 * time.Second
	}
	if cfg.ResultCacheTTL <= 0 {
		cfg.ResultCacheTTL = time.Hour
	}
	if cfg.StatusCacheTTL <= 0 {
		cfg.StatusCacheTTL = 30 * time.Second
	}
	if cfg.QueueBackoff <= 0 {
		cfg.QueueBackoff = time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &orchestrator{
		tasks:        cfg.TaskRepo,
		events:       cfg.EventRepo,
		cache:        cfg.Cache,
		pool:         cfg.AgentPool,
		notifier:     cfg.Notifier,
		logger:       cfg.Logger,
		queue:        newTaskQueue(),
		tracker:      NewMetricsTracker(),
		slots:        make(chan struct{}, cfg.MaxConcurrent),
		active:       make(map[string]*activeTask),
		agentTimeout: cfg.AgentTimeout,
		resultTTL:    cfg.ResultCacheTTL,
		statusTTL:    cfg.StatusCacheTTL,
		backoff:      cfg.QueueBackoff,
		cron:         cron.New(),
		rootCtx:      ctx,
		rootCancel:   cancel,
	}
}

// Start launches the background consumer loop and the periodic maintenance
// job. It must be called exactly once.
func (o *orchestrator) Start() {
	o.cron.AddFunc("@every 1m", o.maintenance)
	o.cron.Start()

	o.wg.Add(1)
	go o.consumeLoop()
	o.logger.Infow("orchestrator_started", "max_concurrent", cap(o.slots))
}

// Stop drains the queue, waits for in-flight tasks and releases background
// resources.
func (o *orchestrator) Stop() {
	o.queue.Close()
	o.wg.Wait()
	o.rootCancel()
	ctx := o.cron.Stop()
	<-ctx.Done()
	o.logger.Infow("orchestrator_stopped")
}

// ==================== Intake ====================

func (o *orchestrator) Submit(ctx context.Context, sub ports.TaskSubmission) (string, error) {
	sanitized, err := textutil.Sanitize(sub.InputText)
	if err != nil {
		o.logger.Warnw("task_submit_rejected", "user_id", sub.UserID, "error", err)
		return "", fmt.Errorf("%w: %v", ErrTaskInvalidInput, err)
	}

	fingerprint := textutil.Fingerprint(sanitized)
	if payload := o.cachedResult(ctx, fingerprint); payload != nil {
		o.logger.Infow("task_submit_cache_hit", "fingerprint", fingerprint, "user_id", sub.UserID)
		return o.createCachedTask(ctx, sub, sanitized, payload)
	}

	task := &domain.Task{
		ID:         uuid.New().String(),
		UserID:     sub.UserID,
		InputText:  sanitized,
		Priority:   sub.Priority,
		Status:     domain.TaskStatusPending,
		Metadata:   sub.Metadata,
		DeviceInfo: sub.DeviceInfo,
		CreatedAt:  time.Now(),
	}
	if err := o.tasks.Create(ctx, task); err != nil {
		return "", err
	}
	o.recordEvent(ctx, task.ID, "", domain.TaskStatusPending, "task accepted")

	if err := o.queue.Enqueue(task.ID, task.Priority); err != nil {
		return "", err
	}
	o.logger.Infow("task_submitted", "task_id", task.ID, "user_id", sub.UserID, "priority", task.Priority.String())
	return task.ID, nil
}

func (o *orchestrator) cachedResult(ctx context.Context, fingerprint string) *domain.ResultPayload {
	raw, ok, err := o.cache.Get(ctx, resultKey(fingerprint))
	if err != nil {
		// A cache hiccup is never a reason to reject a submission.
		o.logger.Warnw("cache_lookup_failed", "fingerprint", fingerprint, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	var payload domain.ResultPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		o.logger.Warnw("cache_entry_corrupt", "fingerprint", fingerprint, "error", err)
		return nil
	}
	return &payload
}

// createCachedTask persists a task already in completed state together with
// a result referencing the cached aggregate. No queuing occurs.
func (o *orchestrator) createCachedTask(ctx context.Context, sub ports.TaskSubmission, sanitized string, payload *domain.ResultPayload) (string, error) {
	now := time.Now()
	task := &domain.Task{
		ID:         uuid.New().String(),
		UserID:     sub.UserID,
		InputText:  sanitized,
		Priority:   sub.Priority,
		Status:     domain.TaskStatusCompleted,
		Metadata:   sub.Metadata,
		DeviceInfo: sub.DeviceInfo,
		CreatedAt:  now,
		UpdatedAt:  &now,
	}
	if err := o.tasks.Create(ctx, task); err != nil {
		return "", err
	}

	result := &domain.TaskResult{
		TaskID:         task.ID,
		Result:         *payload,
		ProcessingTime: 0.1,
		AgentUsed:      cachedAgentMarker,
		CompletedAt:    now,
	}
	if err := o.tasks.CreateResult(ctx, result); err != nil {
		return "", err
	}

	o.recordEvent(ctx, task.ID, "", domain.TaskStatusCompleted, "served from content cache")
	return task.ID, nil
}

// ==================== Background processing ====================

// consumeLoop is the single long-lived queue consumer. It never blocks on an
// individual task: each dequeued id is handed to its own worker goroutine
// once a concurrency slot is free.
func (o *orchestrator) consumeLoop() {
	defer o.wg.Done()
	for {
		id, err := o.queue.Dequeue()
		if err != nil {
			return
		}

		task, err := o.tasks.GetByID(o.rootCtx, id)
		if err != nil {
			o.logger.Errorw("task_dequeue_load_failed", "task_id", id, "error", err)
			time.Sleep(o.backoff)
			continue
		}

		select {
		case o.slots <- struct{}{}:
		case <-o.rootCtx.Done():
			return
		}

		taskCtx, cancel := context.WithCancel(o.rootCtx)
		at := &activeTask{cancel: cancel, done: make(chan struct{})}
		o.mu.Lock()
		o.active[id] = at
		o.mu.Unlock()

		o.wg.Add(1)
		go func(task *domain.Task) {
			defer o.wg.Done()
			defer func() { <-o.slots }()
			defer close(at.done)
			defer cancel()
			o.processTask(taskCtx, task)
		}(task)

		o.reapFinished()
	}
}

// processTask drives one task through analysis, selection, invocation and
// aggregation. Persistence uses a context detached from the task's cancel
// signal so a cancelled task can still record its terminal transition.
func (o *orchestrator) processTask(ctx context.Context, task *domain.Task) {
	persistCtx := context.WithoutCancel(ctx)
	start := time.Now()

	if !o.transition(persistCtx, task, domain.TaskStatusProcessing, "processing started") {
		return
	}

	complexity := AnalyzeComplexity(task.InputText)
	selected := SelectAgents(task.InputText, complexity, o.pool.Available(ctx))
	if len(selected) == 0 {
		o.failTask(persistCtx, task, ErrNoAgentsAvailable)
		return
	}

	names := make([]string, 0, len(selected))
	results := make([]*domain.ResultPayload, 0, len(selected))
	for _, agent := range selected {
		agentCtx, cancel := context.WithTimeout(ctx, o.agentTimeout)
		payload, err := agent.Invoke(agentCtx, task.InputText, task.Metadata)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				// Cancelled mid-flight; Cancel already persisted the
				// terminal transition.
				o.logger.Infow("task_processing_cancelled", "task_id", task.ID)
				return
			}
			o.failTask(persistCtx, task, fmt.Errorf("agent %s: %w", agent.Name(), err))
			return
		}
		names = append(names, agent.Name())
		results = append(results, payload)
	}

	final, err := AggregateResults(results)
	if err != nil {
		o.failTask(persistCtx, task, err)
		return
	}

	elapsed := time.Since(start).Seconds()
	result := &domain.TaskResult{
		TaskID:         task.ID,
		Result:         *final,
		ProcessingTime: elapsed,
		AgentUsed:      strings.Join(names, ","),
		CompletedAt:    time.Now(),
	}
	if err := o.tasks.CreateResult(persistCtx, result); err != nil {
		o.failTask(persistCtx, task, err)
		return
	}
	if !o.transition(persistCtx, task, domain.TaskStatusCompleted, "processing completed") {
		return
	}

	if raw, err := json.Marshal(final); err == nil {
		fingerprint := textutil.Fingerprint(task.InputText)
		if err := o.cache.Set(persistCtx, resultKey(fingerprint), raw, o.resultTTL); err != nil {
			o.logger.Warnw("result_cache_write_failed", "task_id", task.ID, "error", err)
		}
	}

	o.tracker.RecordSuccess(elapsed)
	o.logger.Infow("task_completed", "task_id", task.ID,
		"complexity", complexity.Level, "agents", result.AgentUsed,
		"duration_s", elapsed)
}

func (o *orchestrator) failTask(ctx context.Context, task *domain.Task, cause error) {
	o.logger.Errorw("task_failed", "task_id", task.ID, "error", cause)
	o.transition(ctx, task, domain.TaskStatusFailed, cause.Error())
	o.tracker.RecordFailure()
}

// transition performs a read-modify-persist status change. It re-reads the
// task first so a concurrent cancellation is observed; an illegal transition
// (e.g. out of a terminal state) is refused.
func (o *orchestrator) transition(ctx context.Context, task *domain.Task, to domain.TaskStatus, message string) bool {
	current, err := o.tasks.GetByID(ctx, task.ID)
	if err != nil {
		o.logger.Errorw("task_transition_load_failed", "task_id", task.ID, "error", err)
		return false
	}
	if !current.CanTransition(to) {
		o.logger.Warnw("task_transition_refused", "task_id", task.ID, "from", current.Status, "to", to)
		*task = *current
		return false
	}

	from := current.Status
	now := time.Now()
	current.Status = to
	current.UpdatedAt = &now
	if err := o.tasks.Update(ctx, current); err != nil {
		o.logger.Errorw("task_transition_persist_failed", "task_id", task.ID, "to", to, "error", err)
		return false
	}
	*task = *current

	o.recordEvent(ctx, task.ID, from, to, message)
	o.notifier.Notify(task.ID, o.snapshot(task, nil))
	return true
}

func (o *orchestrator) recordEvent(ctx context.Context, taskID string, from, to domain.TaskStatus, message string) {
	event := &domain.TaskEvent{
		TaskID:     taskID,
		FromStatus: from,
		ToStatus:   to,
		Message:    message,
		CreatedAt:  time.Now(),
	}
	if err := o.events.Create(ctx, event); err != nil {
		// The audit trail is best-effort; the task state remains the source
		// of truth.
		o.logger.Warnw("task_event_write_failed", "task_id", taskID, "to", to, "error", err)
	}
}

// reapFinished removes completed entries from the active-set to bound its
// size. Called opportunistically after each dispatch and from the cron job.
func (o *orchestrator) reapFinished() {
	o.mu.Lock()
	defer o.mu.Unlock()
	for id, at := range o.active {
		select {
		case <-at.done:
			delete(o.active, id)
		default:
		}
	}
}

func (o *orchestrator) maintenance() {
	o.reapFinished()
	metrics.QueueDepth.Set(float64(o.queue.Len()))
	o.mu.Lock()
	metrics.ActiveTasks.Set(float64(len(o.active)))
	o.mu.Unlock()
}

// ==================== Queries ====================

func (o *orchestrator) Status(ctx context.Context, taskID, userID string) (*ports.TaskStatusSnapshot, error) {
	task, err := o.tasks.GetByIDForUser(ctx, taskID, userID)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	// The snapshot (including the result join) is cached briefly; ownership
	// is always re-checked above before the cache is consulted.
	if raw, ok, err := o.cache.Get(ctx, statusKey(taskID)); err == nil && ok {
		var snapshot ports.TaskStatusSnapshot
		if err := json.Unmarshal(raw, &snapshot); err == nil && snapshot.Status == task.Status {
			return &snapshot, nil
		}
	}

	var result *domain.TaskResult
	if task.Status == domain.TaskStatusCompleted {
		result, _ = o.tasks.GetResultByTaskID(ctx, taskID)
	}
	snapshot := o.snapshot(task, result)

	if raw, err := json.Marshal(snapshot); err == nil {
		if err := o.cache.Set(ctx, statusKey(taskID), raw, o.statusTTL); err != nil {
			o.logger.Warnw("status_cache_write_failed", "task_id", taskID, "error", err)
		}
	}
	return &snapshot, nil
}

func (o *orchestrator) List(ctx context.Context, userID string, offset, limit int) ([]domain.Task, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return o.tasks.ListByUser(ctx, userID, offset, limit)
}

func (o *orchestrator) Events(ctx context.Context, taskID, userID string) ([]domain.TaskEvent, error) {
	if _, err := o.tasks.GetByIDForUser(ctx, taskID, userID); err != nil {
		return nil, ErrTaskNotFound
	}
	return o.events.GetByTaskID(ctx, taskID)
}

func (o *orchestrator) Metrics(ctx context.Context) ports.MetricsSnapshot {
	o.reapFinished()
	processed, avgTime, rate := o.tracker.Snapshot()

	o.mu.Lock()
	activeCount := len(o.active)
	o.mu.Unlock()

	return ports.MetricsSnapshot{
		TasksProcessed:    processed,
		AvgProcessingTime: avgTime,
		SuccessRate:       rate,
		QueueDepth:        o.queue.Len(),
		ActiveTasks:       activeCount,
		CacheHitRate:      o.cache.HitRate(),
		AgentsAvailable:   o.pool.Count(),
	}
}

// ==================== Cancellation ====================

// Cancel requests cooperative cancellation. The in-flight processing unit,
// if any, is signalled (advisory: an agent that ignores its context finishes
// anyway), and the persisted task transitions to cancelled when it is still
// pending or processing and owned by the caller.
func (o *orchestrator) Cancel(ctx context.Context, taskID, userID string) bool {
	task, err := o.tasks.GetByID(ctx, taskID)
	if err != nil || task.UserID != userID {
		return false
	}
	if task.Status.Terminal() {
		// Cancellation race: the task finished first. No state change.
		return false
	}

	o.mu.Lock()
	at, running := o.active[taskID]
	o.mu.Unlock()
	if running {
		at.cancel()
	}

	if !o.transition(ctx, task, domain.TaskStatusCancelled, "cancelled by owner") {
		return false
	}
	o.logger.Infow("task_cancelled", "task_id", taskID, "user_id", userID, "was_running", running)
	return true
}

// ==================== Helpers ====================

func (o *orchestrator) snapshot(task *domain.Task, result *domain.TaskResult) ports.TaskStatusSnapshot {
	snapshot := ports.TaskStatusSnapshot{
		TaskID:    task.ID,
		Status:    task.Status,
		Input:     task.InputText,
		Priority:  task.Priority,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
	if result != nil {
		payload := result.Result
		snapshot.Result = &payload
		snapshot.ProcessingTime = result.ProcessingTime
		snapshot.AgentUsed = result.AgentUsed
		completed := result.CompletedAt
		snapshot.CompletedAt = &completed
	}
	return snapshot
}

func resultKey(fingerprint string) string { return "task:" + fingerprint }

func statusKey(taskID string) string { return "task_status:" + taskID }
