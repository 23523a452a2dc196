package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"

	"sampark-api/core/config"
	"sampark-api/core/constants"
	"sampark-api/core/logger"
	"sampark-api/modules/mailer/dto"

	"github.com/hibiken/asynq"
)

// Worker consumes email tasks from the queue and delivers them over SMTP.
type Worker struct {
	server *asynq.Server
	smtp   config.SMTPConfig
}

func NewWorker(redisCfg config.RedisConfig, smtpCfg config.SMTPConfig) *Worker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				constants.QueueDefault: 1,
			},
		},
	)

	return &Worker{server: server, smtp: smtpCfg}
}

// Start runs the worker loop in the background.
func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(constants.TaskEmailWelcome, w.handleWelcomeEmail)
	mux.HandleFunc(constants.TaskEmailConnectionRequest, w.handleConnectionRequestEmail)

	logger.Info("Mailer worker starting")
	return w.server.Start(mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var payload dto.WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("MailerWorker:handleWelcomeEmail:Unmarshal:Error:", err)
		// Malformed payloads will never succeed; don't retry.
		return fmt.Errorf("unmarshal welcome payload: %w: %v", asynq.SkipRetry, err)
	}

	subject := "Your Sampark account is approved"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour registration has been approved.\r\n\r\nLogin email: %s\r\nPassword: %s\r\n\r\nSee you at the event!\r\n",
		payload.Name, payload.LoginEmail, payload.Credential,
	)

	if err := w.send(payload.To, subject, body); err != nil {
		logger.Error("MailerWorker:handleWelcomeEmail:Send:Error:", err, "to", payload.To)
		return err
	}

	logger.Info("Welcome email sent", "to", payload.To)
	return nil
}

func (w *Worker) handleConnectionRequestEmail(ctx context.Context, t *asynq.Task) error {
	var payload dto.ConnectionRequestEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("MailerWorker:handleConnectionRequestEmail:Unmarshal:Error:", err)
		return fmt.Errorf("unmarshal connection payload: %w: %v", asynq.SkipRetry, err)
	}

	subject := fmt.Sprintf("%s wants to connect with you", payload.SourceName)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n%s sent you a connection request on Sampark.\r\n",
		payload.TargetName, payload.SourceName,
	)
	if payload.Note != "" {
		body += fmt.Sprintf("\r\nNote: %s\r\n", payload.Note)
	}
	body += "\r\nLog in to accept or decline.\r\n"

	if err := w.send(payload.To, subject, body); err != nil {
		logger.Error("MailerWorker:handleConnectionRequestEmail:Send:Error:", err, "to", payload.To)
		return err
	}

	logger.Info("Connection request email sent", "to", payload.To)
	return nil
}

func (w *Worker) send(to, subject, body string) error {
	if w.smtp.Host == "" {
		// No SMTP configured (local dev); log instead of failing the task.
		logger.Warn("SMTP not configured, dropping email", "to", to, "subject", subject)
		return nil
	}

	addr := fmt.Sprintf("%s:%d", w.smtp.Host, w.smtp.Port)
	auth := smtp.PlainAuth("", w.smtp.Username, w.smtp.Password, w.smtp.Host)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		w.smtp.From, to, subject, body,
	))

	return smtp.SendMail(addr, auth, w.smtp.From, []string{to}, msg)
}
