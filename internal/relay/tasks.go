package relay

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskWorkflowRelayDeliver = "workflow.relay.deliver"

// NewWorkflowRelayTask packages a message as an asynq task.
func NewWorkflowRelayTask(msg Message) (*asynq.Task, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	// MaxRetry 0: delivery is best-effort, a failed attempt is dropped.
	return asynq.NewTask(TaskWorkflowRelayDeliver, data, asynq.MaxRetry(0)), nil
}

// ParseWorkflowRelayPayload decodes a message from an asynq task.
func ParseWorkflowRelayPayload(task *asynq.Task) (Message, error) {
	var msg Message
	if err := json.Unmarshal(task.Payload(), &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
