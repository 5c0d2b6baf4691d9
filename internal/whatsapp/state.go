package whatsapp

import "sync"

// Connection states reported by State.
const (
	StatusDisconnected = "disconnected"
	StatusWaiting      = "waiting" // QR shown, not scanned yet
	StatusConnected    = "connected"
)

// State is the pairing status shown to agents.
type State struct {
	mu     sync.RWMutex
	status string
	qr     string
	err    string
}

func NewState() *State {
	return &State{status: StatusDisconnected}
}

// Snapshot is a point-in-time copy of State.
type Snapshot struct {
	Status string `json:"status"`
	QR     string `json:"qr,omitempty"` // PNG data URL
	Error  string `json:"error,omitempty"`
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Status: s.status, QR: s.qr, Error: s.err}
}

func (s *State) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.err = ""
	if status == StatusConnected {
		s.qr = ""
	}
}

func (s *State) SetQR(dataURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusWaiting
	s.qr = dataURL
}

func (s *State) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
}
