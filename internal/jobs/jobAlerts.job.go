package jobs

import (
	"sync"

	"luminaops/internal/models"

	"github.com/google/uuid"
)

// jobAlerts remembers which jobs were already alerted for one condition. A
// job that drops out of the condition is forgotten and may alert again.
type jobAlerts struct {
	mu       sync.Mutex
	notified map[uuid.UUID]bool
}

func newJobAlerts() *jobAlerts {
	return &jobAlerts{notified: make(map[uuid.UUID]bool)}
}

// sweep calls send for each job not alerted yet. Only jobs whose send
// succeeded are remembered, so a failed publish is retried next sweep.
func (a *jobAlerts) sweep(jobs []*models.Job, send func(job *models.Job) error) (sent, failed int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	current := make(map[uuid.UUID]bool, len(jobs))
	for _, job := range jobs {
		current[job.ID] = true
	}
	for id := range a.notified {
		if !current[id] {
			delete(a.notified, id)
		}
	}

	for _, job := range jobs {
		if a.notified[job.ID] {
			continue
		}
		if err := send(job); err != nil {
			failed++
			continue
		}
		a.notified[job.ID] = true
		sent++
	}
	return sent, failed
}
