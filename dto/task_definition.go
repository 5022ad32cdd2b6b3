package dto

import "encoding/json"

// TaskDefinition is the on-disk shape the CLI consumes: run identity,
// the run variables templates render against, and the raw task
// configuration decoded by the selected command.
type TaskDefinition struct {
	ID        string                 `json:"id"`
	FlowID    string                 `json:"flowId"`
	Namespace string                 `json:"namespace"`
	Vars      map[string]interface{} `json:"vars"`
	Task      json.RawMessage        `json:"task"`
}
