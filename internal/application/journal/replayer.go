package journal

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/younwookim/rigdemo/internal/application/system"
	"github.com/younwookim/rigdemo/internal/domain/anim"
)

// Replayer hands back recorded commands tick by tick
type Replayer struct {
	data  Data
	next  int // index of the next entry
	frame int
}

// NewReplayer creates a new replayer from journal data
func NewReplayer(data Data) *Replayer {
	return &Replayer{data: data}
}

// Load loads journal data from a file
func Load(filename string) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data Data
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode journal: %w", err)
	}

	return &data, nil
}

// Decode rebuilds the command stored in an entry
func Decode(e Entry) (system.Command, error) {
	cmd, err := system.NewCommand(e.Cmd)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(e.Args, cmd); err != nil {
		return nil, fmt.Errorf("failed to decode %s at tick %d: %w", e.Cmd, e.F, err)
	}
	return cmd, nil
}

// Step returns the commands recorded for the current tick and advances.
// ok is false once every entry has been returned.
func (r *Replayer) Step() (cmds []system.Command, ok bool, err error) {
	if r.Done() {
		return nil, false, nil
	}
	for r.next < len(r.data.Entries) && r.data.Entries[r.next].F <= r.frame {
		cmd, err := Decode(r.data.Entries[r.next])
		if err != nil {
			return nil, false, err
		}
		cmds = append(cmds, cmd)
		r.next++
	}
	r.frame++
	return cmds, true, nil
}

// Done reports whether all entries have been returned
func (r *Replayer) Done() bool {
	return r.next >= len(r.data.Entries)
}

// CurrentFrame returns the current tick
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the tick of the last entry plus one
func (r *Replayer) TotalFrames() int {
	if len(r.data.Entries) == 0 {
		return 0
	}
	return r.data.Entries[len(r.data.Entries)-1].F + 1
}

// Rig returns the rig the journal was recorded against
func (r *Replayer) Rig() string {
	return r.data.Rig
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.next = 0
	r.frame = 0
}

// Replay applies every entry to a skeleton in order, ignoring timing.
// Commands the skeleton rejects are logged and skipped.
func Replay(s *anim.Skeleton, data Data) error {
	for _, e := range data.Entries {
		cmd, err := Decode(e)
		if err != nil {
			return err
		}
		if err := system.Apply(s, cmd); err != nil {
			log.Printf("[Journal] tick %d: %v", e.F, err)
		}
	}
	return nil
}
