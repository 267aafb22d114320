package ingest

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/minutetrack/minute-tracker/errors"
	"github.com/minutetrack/minute-tracker/internal/domain/entities"
	"github.com/minutetrack/minute-tracker/internal/domain/repositories"
	"github.com/minutetrack/minute-tracker/internal/usecase/extract"
	"github.com/minutetrack/minute-tracker/internal/usecase/pipeline"
	"github.com/minutetrack/minute-tracker/pkg/jobcontext"
)

// ObjectStore is the blob-storage boundary used for audio and transcripts.
type ObjectStore interface {
	UploadLocalFile(ctx context.Context, objectName, filePath, contentType string) error
	UploadText(ctx context.Context, objectName, content string) error
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// Extractor is the action-detection boundary.
type Extractor interface {
	Extract(segments []entities.Segment, meetingDate time.Time, participants []string) []extract.Draft
}

// ProgressMirror receives job snapshots for externally visible progress.
// Mirroring is best effort; the in-process registry stays authoritative.
type ProgressMirror interface {
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Coordinator sequences the ingestion stages, owns per-file idempotency and
// progress, and commits results transactionally. Inference stages run on a
// single worker goroutine, so at most one job is in flight; further
// submissions queue in arrival order.
type Coordinator struct {
	validator   *pipeline.MediaValidator
	transcriber pipeline.Transcriber
	diarizer    pipeline.Diarizer
	summarizer  pipeline.Summarizer
	extractor   Extractor
	meetings    repositories.MeetingRepository
	store       ObjectStore
	mirror      ProgressMirror
	logger      *zap.Logger

	stageTimeout time.Duration
	urlExpiry    time.Duration

	queue  chan uuid.UUID
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu   sync.RWMutex
	jobs map[uuid.UUID]*Job
}

// Options carries the coordinator's tunables.
type Options struct {
	QueueSize    int
	StageTimeout time.Duration
}

// NewCoordinator wires the pipeline stages together. Call Start before
// submitting and Stop on shutdown.
func NewCoordinator(
	validator *pipeline.MediaValidator,
	transcriber pipeline.Transcriber,
	diarizer pipeline.Diarizer,
	summarizer pipeline.Summarizer,
	extractor Extractor,
	meetings repositories.MeetingRepository,
	store ObjectStore,
	mirror ProgressMirror,
	logger *zap.Logger,
	opts Options,
) *Coordinator {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 16
	}
	if opts.StageTimeout <= 0 {
		opts.StageTimeout = 20 * time.Minute
	}

	return &Coordinator{
		validator:    validator,
		transcriber:  transcriber,
		diarizer:     diarizer,
		summarizer:   summarizer,
		extractor:    extractor,
		meetings:     meetings,
		store:        store,
		mirror:       mirror,
		logger:       logger,
		stageTimeout: opts.StageTimeout,
		urlExpiry:    4 * time.Hour,
		queue:        make(chan uuid.UUID, opts.QueueSize),
		stopCh:       make(chan struct{}),
		jobs:         make(map[uuid.UUID]*Job),
	}
}

// Start launches the single inference worker.
func (c *Coordinator) Start() {
	c.wg.Add(1)
	go c.worker()

	if c.logger != nil {
		c.logger.Info("🚀 Ingestion coordinator started", zap.Int("queue_capacity", cap(c.queue)))
	}
}

// Stop drains the worker. In-flight jobs are cancelled.
func (c *Coordinator) Stop() {
	close(c.stopCh)

	c.mu.Lock()
	for _, job := range c.jobs {
		if job.cancel != nil && !job.finished() {
			job.cancel()
		}
	}
	c.mu.Unlock()

	c.wg.Wait()

	if c.logger != nil {
		c.logger.Info("✅ Ingestion coordinator stopped")
	}
}

// Submit validates the file, checks idempotency and enqueues an ingestion
// job. The returned snapshot carries the pollable job id.
func (c *Coordinator) Submit(ctx context.Context, audioPath string, meta pipeline.FileMeta, title string, meetingDate time.Time) (Snapshot, error) {
	if err := c.validator.Validate(meta); err != nil {
		return Snapshot{}, err
	}

	exists, err := c.meetings.ExistsByFilename(ctx, meta.Filename)
	if err != nil {
		return Snapshot{}, apperrors.ErrDBQueryFailed("meetings.exists", err)
	}
	if exists {
		return Snapshot{}, apperrors.ErrDuplicateMeeting(meta.Filename)
	}

	if meetingDate.IsZero() {
		meetingDate = time.Now()
	}
	if title == "" {
		title = strings.TrimSuffix(meta.Filename, filepath.Ext(meta.Filename))
	}

	return c.enqueue(audioPath, meta.Filename, title, meetingDate, false)
}

// Reprocess submits a fresh ingestion that replaces the prior meeting for
// the filename. This is the only path that bypasses the duplicate guard.
// The prior record is deleted by the worker once the job actually runs, so
// a rejected enqueue (full queue) leaves it untouched. When no replacement
// upload is provided (audioPath empty, meta nil), the audio object stored
// during the original ingestion is reused.
func (c *Coordinator) Reprocess(ctx context.Context, filename, audioPath string, meta *pipeline.FileMeta, title string, meetingDate time.Time) (Snapshot, error) {
	if meta != nil {
		if err := c.validator.Validate(*meta); err != nil {
			return Snapshot{}, err
		}
	}

	prior, err := c.meetings.GetByFilename(ctx, filename)
	if err != nil {
		if err == entities.ErrMeetingNotFound {
			return Snapshot{}, apperrors.ErrMeetingNotFound(filename)
		}
		return Snapshot{}, apperrors.ErrDBQueryFailed("meetings.get", err)
	}

	if title == "" {
		title = prior.Title
	}
	if meetingDate.IsZero() {
		meetingDate = prior.Date
	}

	return c.enqueue(audioPath, filename, title, meetingDate, true)
}

// enqueue registers a job and offers it to the single-slot queue.
func (c *Coordinator) enqueue(audioPath, filename, title string, meetingDate time.Time, replacePrior bool) (Snapshot, error) {
	now := time.Now()
	job := &Job{
		ID:           uuid.New(),
		Filename:     filename,
		Title:        title,
		MeetingDate:  meetingDate,
		AudioPath:    audioPath,
		ReplacePrior: replacePrior,
		Stage:        StageQueued,
		Percent:      stagePercent[StageQueued],
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	c.mu.Lock()
	c.jobs[job.ID] = job
	c.mu.Unlock()

	select {
	case c.queue <- job.ID:
	default:
		c.mu.Lock()
		delete(c.jobs, job.ID)
		c.mu.Unlock()
		return Snapshot{}, apperrors.ErrQueueBusy()
	}

	if c.logger != nil {
		c.logger.Info("📥 Ingestion queued",
			zap.String("job_id", job.ID.String()),
			zap.String("filename", filename))
	}

	c.mirrorJob(job)
	return job.snapshot(), nil
}

// GetJob returns the snapshot for a job id.
func (c *Coordinator) GetJob(id uuid.UUID) (Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	job, ok := c.jobs[id]
	if !ok {
		return Snapshot{}, false
	}
	return job.snapshot(), true
}

// Cancel aborts a queued or in-flight job. Cancelling a finished job fails
// with JobNotCancellable.
func (c *Coordinator) Cancel(id uuid.UUID) (Snapshot, error) {
	c.mu.Lock()
	job, ok := c.jobs[id]
	if !ok {
		c.mu.Unlock()
		return Snapshot{}, apperrors.ErrJobNotFound(id.String())
	}
	if job.finished() {
		state := string(job.Stage)
		c.mu.Unlock()
		return Snapshot{}, apperrors.ErrJobNotCancellable(id.String(), state)
	}

	if job.Stage == StageQueued {
		// Still waiting for the worker; fail it directly. The worker skips
		// jobs already terminal when it dequeues them.
		c.failLocked(job, StageQueued, CancelledReason)
	} else if job.cancel != nil {
		job.cancel()
	}
	snap := job.snapshot()
	c.mu.Unlock()

	return snap, nil
}

// worker consumes the queue one job at a time: the single inference slot.
func (c *Coordinator) worker() {
	defer c.wg.Done()

	for {
		select {
		case <-c.stopCh:
			return
		case jobID := <-c.queue:
			c.mu.RLock()
			job, ok := c.jobs[jobID]
			finished := ok && job.finished()
			c.mu.RUnlock()

			if !ok || finished {
				continue
			}
			c.run(job)
		}
	}
}

// run executes all pipeline stages for one job.
func (c *Coordinator) run(job *Job) {
	ctx, cancel := jobcontext.JobBegin(context.Background(), job.ID, "ingestion", c.stageTimeout)
	defer cancel()

	c.mu.Lock()
	job.cancel = cancel
	c.mu.Unlock()

	defer func() {
		if job.AudioPath != "" {
			os.Remove(job.AudioPath)
		}
	}()

	if err := c.execute(ctx, job); err != nil {
		stage := c.currentStage(job)
		reason := err.Error()
		if ctx.Err() == context.Canceled {
			reason = CancelledReason
		}

		c.mu.Lock()
		c.failLocked(job, stage, reason)
		c.mu.Unlock()

		if c.logger != nil {
			c.logger.Error("❌ Ingestion failed",
				zap.String("job_id", job.ID.String()),
				zap.String("stage", string(stage)),
				zap.String("reason", reason))
		}
	}
}

func (c *Coordinator) execute(ctx context.Context, job *Job) error {
	// Validating: the idempotency guard re-runs under the worker in case a
	// concurrent submission persisted the same filename while queued.
	// Replacement jobs delete the prior record here instead, so it survives
	// any enqueue rejection.
	c.setStage(job, StageValidating)
	if job.ReplacePrior {
		if err := c.meetings.Delete(ctx, job.Filename); err != nil && err != entities.ErrMeetingNotFound {
			return apperrors.ErrDBQueryFailed("meetings.delete", err)
		}
	} else {
		exists, err := c.meetings.ExistsByFilename(ctx, job.Filename)
		if err != nil {
			return err
		}
		if exists {
			return entities.ErrDuplicateMeeting
		}
	}

	// Re-processing without a replacement upload reuses the stored object.
	objectName := "audio/" + job.Filename
	if job.AudioPath != "" {
		contentType := mime.TypeByExtension(filepath.Ext(job.Filename))
		if err := c.store.UploadLocalFile(ctx, objectName, job.AudioPath, contentType); err != nil {
			return err
		}
	}
	audioURL, err := c.store.GetFileURL(ctx, objectName, c.urlExpiry)
	if err != nil {
		return err
	}

	// Transcribing
	c.setStage(job, StageTranscribing)
	rawSegments, duration, err := c.transcriber.Transcribe(ctx, audioURL)
	if err != nil {
		return apperrors.ErrTranscriptionFailed(err)
	}
	if len(rawSegments) == 0 {
		return apperrors.ErrTranscriptionFailed(fmt.Errorf("no speech recognized"))
	}

	// Diarizing: failure is non-fatal, the pipeline degrades to a single
	// synthetic speaker.
	c.setStage(job, StageDiarizing)
	turns, err := c.diarizer.Diarize(ctx, audioURL)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		if c.logger != nil {
			c.logger.Warn("⚠️ Diarization unavailable, continuing with single speaker",
				zap.String("job_id", job.ID.String()),
				zap.Error(err))
		}
		turns = nil
	}
	merged := pipeline.AlignSpeakers(rawSegments, turns)

	// Normalizing
	c.setStage(job, StageNormalizing)
	normalizer := pipeline.NewTextNormalizer(job.MeetingDate)
	normalized := normalizer.Normalize(merged)
	if len(normalized) == 0 {
		return apperrors.ErrTranscriptionFailed(fmt.Errorf("transcript empty after normalization"))
	}

	speakerOrder, speakingTimes := pipeline.SpeakingTimes(normalized)

	// Analyzing: summarization and extraction are independent reads of the
	// normalized transcript and run concurrently.
	c.setStage(job, StageAnalyzing)
	var (
		minutes *entities.Minutes
		sumErr  error
		drafts  []extract.Draft
		wg      sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		minutes, sumErr = c.summarizer.Summarize(ctx, normalized)
	}()
	go func() {
		defer wg.Done()
		drafts = c.extractor.Extract(normalized, job.MeetingDate, speakerOrder)
	}()
	wg.Wait()

	if sumErr != nil {
		return apperrors.ErrSummarizationFailed(sumErr)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Persisting
	c.setStage(job, StagePersisting)

	meeting := entities.NewMeeting(job.Filename, job.Title, job.MeetingDate)
	meeting.Duration = duration
	meeting.Summary = minutes.Summary
	meeting.AgendaItems = minutes.AgendaItems
	meeting.Decisions = minutes.Decisions
	meeting.Risks = minutes.Risks
	meeting.NextSteps = minutes.NextSteps
	meeting.Participants = speakerOrder
	meeting.AudioPath = objectName

	for _, name := range speakerOrder {
		meeting.Speakers = append(meeting.Speakers, entities.Participant{
			ID:           uuid.New(),
			SpeakerName:  name,
			SpeakingTime: speakingTimes[name],
		})
	}

	transcriptObject := "transcripts/" + job.Filename + ".txt"
	if err := c.store.UploadText(ctx, transcriptObject, pipeline.FormatTranscript(normalized)); err != nil {
		if c.logger != nil {
			c.logger.Warn("⚠️ Transcript upload failed", zap.Error(err))
		}
	} else {
		meeting.TranscriptPath = transcriptObject
	}

	actions := make([]*entities.ActionItem, 0, len(drafts))
	for _, d := range drafts {
		action := entities.NewActionItem(meeting.ID, meeting.Filename, d.Text)
		action.Speaker = d.Speaker
		action.StartTime = d.StartTime
		action.EndTime = d.EndTime
		action.Assignees = d.Assignees
		action.Deadline = d.Deadline
		action.DeadlineUrgency = d.Urgency
		action.Confidence = d.Confidence
		if features, err := marshalFeatures(d.Features); err == nil {
			action.Features = features
		}
		actions = append(actions, action)
	}

	if err := c.meetings.CreateWithActions(ctx, meeting, actions); err != nil {
		if err == entities.ErrDuplicateMeeting {
			return err
		}
		return apperrors.ErrDBTransactionFailed(err)
	}

	c.mu.Lock()
	job.Result = meeting
	c.mu.Unlock()
	c.setStage(job, StageDone)

	if engine, ok := c.transcriber.(interface{ Forget(string) }); ok {
		engine.Forget(audioURL)
	}

	if c.logger != nil {
		c.logger.Info("✅ Ingestion complete",
			zap.String("job_id", job.ID.String()),
			zap.String("filename", job.Filename),
			zap.Int("actions", len(actions)),
			zap.Int("participants", len(speakerOrder)))
	}

	return nil
}

func (c *Coordinator) setStage(job *Job, stage Stage) {
	c.mu.Lock()
	job.Stage = stage
	if pct, ok := stagePercent[stage]; ok && pct > job.Percent {
		job.Percent = pct
	}
	job.UpdatedAt = time.Now()
	c.mu.Unlock()

	c.mirrorJob(job)

	if c.logger != nil {
		c.logger.Info("🔄 Stage transition",
			zap.String("job_id", job.ID.String()),
			zap.String("stage", string(stage)),
			zap.Int("percent", stagePercent[stage]))
	}
}

// failLocked marks a job failed; callers hold c.mu.
func (c *Coordinator) failLocked(job *Job, stage Stage, reason string) {
	job.Stage = StageFailed
	job.FailedStage = stage
	job.Reason = reason
	job.UpdatedAt = time.Now()
}

func (c *Coordinator) currentStage(job *Job) Stage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return job.Stage
}

func (c *Coordinator) mirrorJob(job *Job) {
	if c.mirror == nil {
		return
	}

	c.mu.RLock()
	snap := job.snapshot()
	c.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.mirror.SetJSON(ctx, "ingest:job:"+snap.ID.String(), snap, 24*time.Hour); err != nil {
		if c.logger != nil {
			c.logger.Warn("⚠️ Job progress mirror failed", zap.Error(err))
		}
	}
}
