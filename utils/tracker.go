package utils

// historySize is how many recent grid hashes are kept, enough to catch
// still lifes and oscillators of period 2 and 3
const historySize = 5

// Status of a simulation run as shown on the status line
const (
	StatusActive   = "Active"
	StatusStagnant = "Stagnant"
	StatusExtinct  = "Extinct"
)

// Tracker remembers recent grid states to report when a run has stopped changing
type Tracker struct {
	history []string
}

// Reset forgets all recorded states
func (t *Tracker) Reset() {
	t.history = nil
}

// Observe records hash as the newest state and returns the run's status
func (t *Tracker) Observe(hash string, population int) string {
	repeated := false
	for _, seen := range t.history {
		if seen == hash {
			repeated = true
			break
		}
	}

	t.history = append(t.history, hash)
	if len(t.history) > historySize {
		t.history = t.history[1:]
	}

	switch {
	case population == 0:
		return StatusExtinct
	case repeated:
		return StatusStagnant
	}
	return StatusActive
}
