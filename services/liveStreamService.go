package services

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/metrics"
	"github.com/GraceHarbor/models"
)

const pollTimeout = 15 * time.Second

// LiveStreamService polls the live stream status on a cron schedule and keeps
// the last snapshot for the public site. It is started once at boot and
// stopped on shutdown.
type LiveStreamService struct {
	fetch   func(ctx context.Context) (models.LiveStreamStatus, error)
	onLive  func(ctx context.Context, stream models.LiveStream)
	metrics *metrics.LifecycleMetrics

	cron *cron.Cron

	mu       sync.RWMutex
	snapshot models.LiveStreamStatus
	ready    bool
	liveID   int
}

func NewLiveStreamService(
	fetch func(ctx context.Context) (models.LiveStreamStatus, error),
	onLive func(ctx context.Context, stream models.LiveStream),
	m *metrics.LifecycleMetrics,
) *LiveStreamService {
	return &LiveStreamService{fetch: fetch, onLive: onLive, metrics: m}
}

var liveStreamService *LiveStreamService

func SetLiveStreamService(s *LiveStreamService) {
	liveStreamService = s
}

func GetLiveStreamService() *LiveStreamService {
	return liveStreamService
}

// Start polls once immediately, then on every tick of schedule.
func (s *LiveStreamService) Start(schedule string) error {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)
	if _, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
		defer cancel()
		if err := s.Poll(ctx); err != nil {
			log.Error().Err(err).Msg("live stream poll failed")
		}
	}); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()
	if err := s.Poll(ctx); err != nil {
		log.Error().Err(err).Msg("initial live stream poll failed")
	}

	s.cron = c
	c.Start()
	log.Info().Str("schedule", schedule).Msg("live stream status service started")
	return nil
}

// Stop halts the schedule and waits for a running poll to finish.
func (s *LiveStreamService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
	log.Info().Msg("live stream status service stopped")
}

// Poll refreshes the snapshot. A stream seen live for the first time triggers onLive.
func (s *LiveStreamService) Poll(ctx context.Context) error {
	started := time.Now()
	status, err := s.fetch(ctx)
	s.metrics.ObservePoll(time.Since(started), err)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshot = status
	s.ready = true
	var newlyLive *models.LiveStream
	if status.Current != nil {
		if status.Current.ID != s.liveID {
			newlyLive = status.Current
		}
		s.liveID = status.Current.ID
	} else {
		s.liveID = 0
	}
	s.mu.Unlock()

	if newlyLive != nil && s.onLive != nil {
		s.onLive(ctx, *newlyLive)
	}
	return nil
}

// Status returns the last snapshot with the countdown recomputed for now.
// ok is false until the first successful poll.
func (s *LiveStreamService) Status(now time.Time) (models.LiveStreamStatus, bool) {
	s.mu.RLock()
	status, ok := s.snapshot, s.ready
	s.mu.RUnlock()
	if !ok {
		return status, false
	}

	if status.Next != nil && status.Next.Start_Time != nil {
		status.Countdown = lifecycle.Countdown(now, *status.Next.Start_Time)
	}
	return status, true
}
