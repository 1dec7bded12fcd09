package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/rigdemo/internal/application/system"
)

// Recorder collects applied commands tick by tick
type Recorder struct {
	data      Data
	recording bool
	frame     int
}

// NewRecorder starts recording edits to a rig
func NewRecorder(rig string) *Recorder {
	return &Recorder{
		data: Data{
			Version:   Version,
			Rig:       rig,
			StartTime: time.Now().Format(time.RFC3339),
			Entries:   make([]Entry, 0, 256),
		},
		recording: true,
	}
}

// Record appends a command at the current tick
func (r *Recorder) Record(cmd system.Command) error {
	if !r.recording {
		return nil
	}
	args, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", cmd.Name(), err)
	}
	r.data.Entries = append(r.data.Entries, Entry{F: r.frame, Cmd: cmd.Name(), Args: args})
	return nil
}

// Tick advances to the next frame
func (r *Recorder) Tick() {
	if r.recording {
		r.frame++
	}
}

// Save writes the journal to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Entries) == 0 {
		return fmt.Errorf("no commands to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// EntryCount returns the number of recorded commands
func (r *Recorder) EntryCount() int {
	return len(r.data.Entries)
}

// GetData returns the journal data
func (r *Recorder) GetData() Data {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("journal_%s.json", time.Now().Format("20060102_150405"))
}
