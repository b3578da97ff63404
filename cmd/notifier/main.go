package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/config"
	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
)

// rosterEvent mirrors domain.RosterEvent but defers decoding the
// payload until the type is known.
type rosterEvent struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Data       json.RawMessage `json:"data"`
}

func renderEvent(event *rosterEvent) (subject, body string, err error) {
	switch event.Type {
	case domain.EventShiftAssigned:
		var data domain.ShiftEventData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return "", "", err
		}
		subject = fmt.Sprintf("Roster: shift %s on %s assigned", data.ShiftType, data.Day)
		body = fmt.Sprintf("Shift %s on %s at %s was assigned to %s.", data.ShiftType, data.Day, data.SiteName, data.EmployeeName)
	case domain.EventShiftRemoved:
		var data domain.ShiftEventData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return "", "", err
		}
		subject = fmt.Sprintf("Roster: shift %s on %s removed", data.ShiftType, data.Day)
		body = fmt.Sprintf("Shift %s on %s at %s was removed.", data.ShiftType, data.Day, data.SiteName)
	case domain.EventAutoFillCompleted:
		var data domain.AutoFillEventData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return "", "", err
		}
		subject = fmt.Sprintf("Roster: auto-fill for %d-%02d completed", data.Year, data.Month)
		body = fmt.Sprintf("Auto-fill for %d-%02d filled %d shifts.", data.Year, data.Month, data.FilledCount)
	default:
		return "", "", fmt.Errorf("unsupported event type %q", event.Type)
	}

	return subject, body, nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		return
	}

	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("unable to create mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("unable to connect to mail server", slog.String("error", err.Error()))
		return
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("unable to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("unable to open channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"roster_events",
		true,  // durable
		false, // do not auto-delete when there is no consumer
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("unable to declare queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("unable to consume messages", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("event received", slog.String("body", string(msg.Body)))

				event := rosterEvent{}
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					logger.Error("unable to decode event", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				subject, body, err := renderEvent(&event)
				if err != nil {
					logger.Error("unable to render event", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				message := mail.NewMsg()
				if err := message.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("unable to set sender", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := message.To(cfg.Email.ManagerAddress); err != nil {
					logger.Error("unable to set recipient", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				message.Subject(subject)
				message.SetBodyString(mail.TypeTextPlain, body)

				if err := client.DialAndSend(message); err != nil {
					logger.Error("unable to send mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // requeue
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for events... (CTRL+C to quit)")
	<-sigChan

	slog.Info("shutting down notifier...")
	cancel()
	wg.Wait()
	slog.Info("notifier stopped")
}
