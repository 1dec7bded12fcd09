package journal

import "encoding/json"

// Version is written into every journal
const Version = "1.0"

// Entry records one applied command
type Entry struct {
	F    int             `json:"f"`    // Tick the command was applied on
	Cmd  string          `json:"cmd"`  // Command name
	Args json.RawMessage `json:"args"` // Command fields
}

// Data contains everything needed to replay an editing session
type Data struct {
	Version   string  `json:"version"`
	Rig       string  `json:"rig"`
	StartTime string  `json:"startTime"`
	Entries   []Entry `json:"entries"`
}
