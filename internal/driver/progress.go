package driver

import "time"

// Stage describes a phase of checking one entry.
type Stage string

const (
	// StageLoad discovers and parses every file reachable from the entry.
	StageLoad Stage = "load"
	// StageAnalyze binds and type checks the loaded files.
	StageAnalyze Stage = "analyze"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusError means the entry finished with errors.
	StatusError Status = "error"
)

// Event reports progress for one entry.
type Event struct {
	Entry   string
	Stage   Stage
	Status  Status
	Files   int // files loaded so far
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Check calls it from several
// goroutines at once.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
