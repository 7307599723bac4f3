package messagequeue

import (
	"lifex.health/infrastructure/message_queue/asynq"
	mq_types "lifex.health/infrastructure/message_queue/types"
)

var TaskQueue mq_types.TaskQueueBroker = &asynq.AsynqBroker{}

func StartQueue() {
	TaskQueue.Start()
}
