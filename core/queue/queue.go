package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"sampark-api/core/constants"
	"sampark-api/core/logger"

	"github.com/hibiken/asynq"
)

// IQueue enqueues background tasks. Email delivery goes through here so
// the HTTP path never blocks on SMTP.
type IQueue interface {
	Enqueue(taskType string, payload any) error
	Close() error
}

type Queue struct {
	client *asynq.Client
}

type QueueConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

var instance *Queue

func GetQueue() IQueue {
	return instance
}

func InitQueue(config QueueConfig) (*Queue, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	logger.Info("Task queue initialized", "addr", config.RedisAddr)

	instance = &Queue{client: client}
	return instance, nil
}

func (q *Queue) Enqueue(taskType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(taskType, data)
	info, err := q.client.Enqueue(task,
		asynq.Queue(constants.QueueDefault),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		logger.Error("Queue:Enqueue:Error:", err, "type", taskType)
		return err
	}

	logger.Debug("Task enqueued", "type", taskType, "id", info.ID)
	return nil
}

func (q *Queue) Close() error {
	return q.client.Close()
}
