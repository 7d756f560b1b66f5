package scheduler

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"rental-backend/services"
)

// Sweeper expires stale pending proposals on a daily schedule. The
// lifecycle service owns the transition; this only owns the trigger.
type Sweeper struct {
	cron      *cron.Cron
	proposals *services.ProposalService
	runAt     string // HH:MM
	isRunning bool
}

func NewSweeper(proposals *services.ProposalService, runAt string) *Sweeper {
	return &Sweeper{
		cron:      cron.New(),
		proposals: proposals,
		runAt:     runAt,
	}
}

// Start registers the daily sweep job.
func (s *Sweeper) Start() error {
	spec := s.parseRunAt(s.runAt)

	_, err := s.cron.AddFunc(spec, func() {
		count, err := s.proposals.ExpireStale(time.Now().UTC())
		if err != nil {
			log.Printf("sweeper: expiration sweep failed: %v", err)
			return
		}
		if count > 0 {
			log.Printf("sweeper: expired %d stale proposals", count)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("sweeper: started, daily run at %s (cron: %s)", s.runAt, spec)
	return nil
}

func (s *Sweeper) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("sweeper: stopped")
	}
}

// parseRunAt turns "HH:MM" into a daily cron spec, defaulting to
// 03:00 when malformed.
func (s *Sweeper) parseRunAt(runAt string) string {
	parts := strings.Split(runAt, ":")
	if len(parts) == 2 {
		hour, errH := strconv.Atoi(parts[0])
		minute, errM := strconv.Atoi(parts[1])
		if errH == nil && errM == nil && hour >= 0 && hour < 24 && minute >= 0 && minute < 60 {
			return fmt.Sprintf("%d %d * * *", minute, hour)
		}
	}
	log.Printf("sweeper: invalid run time %q, using 03:00", runAt)
	return "0 3 * * *"
}
