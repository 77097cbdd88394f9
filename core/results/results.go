// Package results collects what every step of a scripted run returned, so
// the run can be logged, checked in tests and written out next to the
// configuration that produced it.
package results

import "time"

// StepResult is the outcome of one scripted transaction
type StepResult struct {
	ID       uint64   `json:"id"`                 // Position in the script
	Function string   `json:"function"`           // Chaincode function
	Type     string   `json:"type"`               // "read" or "write"
	Args     []string `json:"args"`               // Arguments sent
	Payload  string   `json:"payload,omitempty"`  // Returned payload as text
	TxID     string   `json:"tx_id,omitempty"`    // Transaction id of a tracked submit or a lookup
	Error    string   `json:"error,omitempty"`    // Caught error, only for expected rejections
	Expected bool     `json:"expected,omitempty"` // The step was meant to be rejected
}

// Report is the generic result structure of one run of the script
type Report struct {
	Channel  string       `json:"channel"`
	Contract string       `json:"contract"`
	Start    time.Time    `json:"start"`
	End      time.Time    `json:"end"`
	Steps    []StepResult `json:"steps"`
}

// NewReport starts a report for a run against contract on channel
func NewReport(channel string, contract string) *Report {
	return &Report{
		Channel:  channel,
		Contract: contract,
		Start:    time.Now(),
		Steps:    make([]StepResult, 0),
	}
}

// Add appends the result of the next step
func (r *Report) Add(step StepResult) {
	r.Steps = append(r.Steps, step)
}

// Finish marks the end of the run
func (r *Report) Finish() {
	r.End = time.Now()
}

// Functions returns the functions of the steps in the order they ran
func (r *Report) Functions() []string {
	functions := make([]string, 0, len(r.Steps))
	for _, step := range r.Steps {
		functions = append(functions, step.Function)
	}
	return functions
}

// Rejected returns the steps whose error was caught
func (r *Report) Rejected() []StepResult {
	rejected := make([]StepResult, 0)
	for _, step := range r.Steps {
		if step.Error != "" {
			rejected = append(rejected, step)
		}
	}
	return rejected
}
