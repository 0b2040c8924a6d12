package auditlog

import "time"

// Entry represents a single executed pipeline's audit record.
type Entry struct {
	Seq      uint64    `json:"seq"`
	Time     time.Time `json:"ts"`
	PrevHash string    `json:"prev_hash"`
	Line     string    `json:"line"`
	ExitCode int       `json:"exit_code"`
	Duration float64   `json:"duration_ms"`
	Cwd      string    `json:"cwd"`
	Hash     string    `json:"hash"`
}
