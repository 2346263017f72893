// Package notify composes and delivers best-effort email notifications for
// task lifecycle events. Delivery is fire-and-forget: enqueueing never
// blocks the caller and transport failures are logged, never surfaced.
package notify

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/ghlaw/taskdesk/internal/domain"
)

// Message is a composed email ready for delivery.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a composed message through a mail transport.
type Sender interface {
	Send(msg *Message) error
}

// SMTPConfig holds the transport settings for the SMTP sender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string

	// From is the sender address. Falls back to Username when empty.
	From string
}

// SMTPSender implements Sender over SMTP with STARTTLS.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender creates a Sender that delivers through the configured SMTP
// relay.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

// Ensure SMTPSender implements Sender interface
var _ Sender = (*SMTPSender)(nil)

// Send implements the Sender interface.
func (s *SMTPSender) Send(msg *Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", msg.To, err)
	}
	return nil
}

// Composer renders notification messages for task lifecycle events.
type Composer struct {
	baseURL string
}

// NewComposer creates a Composer. baseURL is used for the view-task link in
// message bodies.
func NewComposer(baseURL string) *Composer {
	return &Composer{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// TaskCreated composes the new-task notification addressed to the assignee.
func (c *Composer) TaskCreated(task *domain.Task) *Message {
	return &Message{
		To:      task.AssignedToEmail,
		Subject: fmt.Sprintf("New task: %s", task.Title),
		Body:    c.createdBody(task),
	}
}

// TaskUpdated composes the task-update notification addressed to the assignee.
func (c *Composer) TaskUpdated(task *domain.Task) *Message {
	return &Message{
		To:      task.AssignedToEmail,
		Subject: fmt.Sprintf("Task updated: %s", task.Title),
		Body:    c.updatedBody(task),
	}
}

func (c *Composer) createdBody(task *domain.Task) string {
	description := "No description"
	if task.Description != nil && *task.Description != "" {
		description = *task.Description
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="background-color: white; padding: 30px; border-radius: 10px; max-width: 600px; margin: 0 auto;">
    <h1 style="color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px;">New task created</h1>
    <div style="background-color: #ecf0f1; padding: 15px; border-radius: 5px; margin: 20px 0;">
      <p><strong>Task:</strong> %s</p>
      <p><strong>Title:</strong> %s</p>
      <p><strong>Description:</strong> %s</p>
      <p><strong>Category:</strong> %s</p>
      <p><strong>Priority:</strong> %s</p>
      <p><strong>Due date:</strong> %s</p>
      <p><strong>Created by:</strong> %s (%s)</p>
    </div>
    <p style="text-align: center;">
      <a href="%s/api/tasks/%s" style="background-color: #3498db; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px;">View task</a>
    </p>
  </div>
</body>
</html>`,
		task.Reference,
		task.Title,
		description,
		task.Category,
		task.Priority,
		formatDueDate(task.DueDate),
		task.CreatedBy,
		task.CreatedByEmail,
		c.baseURL,
		task.ID,
	)
}

func (c *Composer) updatedBody(task *domain.Task) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="background-color: white; padding: 30px; border-radius: 10px; max-width: 600px; margin: 0 auto;">
    <h1 style="color: #2c3e50; border-bottom: 3px solid #e67e22; padding-bottom: 10px;">Task updated</h1>
    <div style="background-color: #fef5e7; padding: 15px; border-radius: 5px; margin: 20px 0;">
      <p><strong>Task:</strong> %s</p>
      <p><strong>Title:</strong> %s</p>
      <p><strong>Status:</strong> %s</p>
      <p><strong>Priority:</strong> %s</p>
    </div>
    <p style="text-align: center;">
      <a href="%s/api/tasks/%s" style="background-color: #e67e22; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px;">View task</a>
    </p>
  </div>
</body>
</html>`,
		task.Reference,
		task.Title,
		task.Status,
		task.Priority,
		c.baseURL,
		task.ID,
	)
}

func formatDueDate(due *time.Time) string {
	if due == nil {
		return "Not set"
	}
	return due.Format("2006-01-02")
}
