// Package scheduler runs the nightly brokerage recalculation so stored
// summaries track the ledger without manual calculate calls.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/service"
	"github.com/robfig/cron/v3"
)

// recalcTimeout bounds one scheduled run across all clients.
const recalcTimeout = 30 * time.Minute

// Scheduler triggers periodic recalculation of the current month for every
// client. Quarter aggregates are recalculated on demand; the nightly run only
// keeps the in-progress month fresh.
type Scheduler struct {
	cron             *cron.Cron
	brokerageService *service.BrokerageService
}

// New creates a Scheduler that recalculates on the given cron expression.
// An empty expression disables scheduling; Start and Stop become no-ops.
func New(brokerageService *service.BrokerageService, cronExpr string) (*Scheduler, error) {
	s := &Scheduler{brokerageService: brokerageService}

	if cronExpr == "" {
		return s, nil
	}

	c := cron.New()
	if _, err := c.AddFunc(cronExpr, s.recalcCurrentMonth); err != nil {
		return nil, err
	}
	s.cron = c

	return s, nil
}

// Start begins scheduled execution in the background.
func (s *Scheduler) Start() {
	if s.cron != nil {
		s.cron.Start()
	}
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) recalcCurrentMonth() {
	ctx, cancel := context.WithTimeout(context.Background(), recalcTimeout)
	defer cancel()

	now := time.Now().UTC()
	count, err := s.brokerageService.CalculateAllMonth(ctx, now.Year(), now.Month())
	if err != nil {
		log.Printf("Scheduled recalculation failed: %v", err)
		return
	}

	log.Printf("Scheduled recalculation completed for %d clients (%d-%02d)", count, now.Year(), int(now.Month()))
}
