package service

import (
	"sampark-api/core/constants"
	"sampark-api/core/logger"
	"sampark-api/core/queue"
	"sampark-api/modules/mailer/dto"
)

// MailerService enqueues email tasks. Delivery happens in the worker so
// a slow or failing SMTP server never blocks a request handler.
type MailerService struct {
	queue queue.IQueue
}

func NewMailerService(q queue.IQueue) *MailerService {
	return &MailerService{queue: q}
}

func (s *MailerService) SendWelcomeEmail(payload *dto.WelcomeEmailPayload) error {
	if err := s.queue.Enqueue(constants.TaskEmailWelcome, payload); err != nil {
		logger.Error("MailerService:SendWelcomeEmail:Enqueue:Error:", err)
		return err
	}
	return nil
}

func (s *MailerService) SendConnectionRequestEmail(payload *dto.ConnectionRequestEmailPayload) error {
	if err := s.queue.Enqueue(constants.TaskEmailConnectionRequest, payload); err != nil {
		logger.Error("MailerService:SendConnectionRequestEmail:Enqueue:Error:", err)
		return err
	}
	return nil
}
