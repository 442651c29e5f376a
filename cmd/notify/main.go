package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/repaart-dev/ops-console/backend/internal/config"
	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

func main() {
	/**********************************************
	 * crear logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * cargar configuracion
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("no se pudo cargar la configuracion", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * crear cliente de correo
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("no se pudo crear el cliente de correo", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// comprobar la conexion con el servidor SMTP antes de consumir nada
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("no se pudo conectar con el servidor de correo", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * conectar con rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("no se pudo conectar con rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("no se pudo abrir el canal", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"notification_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("no se pudo declarar la cola", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // ack manual, solo confirmamos tras enviar el correo
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("no se pudo consumir la cola", slog.String("error", err.Error()))
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
				logger.Info("mensaje recibido", slog.String("message", string(msg.Body)))

				notification := domain.NotificationMessage{}
				if err := json.Unmarshal(msg.Body, &notification); err != nil {
					logger.Error("no se pudo deserializar la notificacion", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				email := mail.NewMsg()
				if err := email.From(cfg.Email.From); err != nil {
					logger.Error("no se pudo fijar el remitente", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := email.To(notification.To); err != nil {
					logger.Error("no se pudo fijar el destinatario", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				switch notification.Type {
				case "schedule_published":
					tmpl, err := template.ParseFiles("./templates/schedule_published_email.html")
					if err != nil {
						logger.Error("no se pudo cargar la plantilla", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := email.SetBodyHTMLTemplate(tmpl, notification.Data); err != nil {
						logger.Error("no se pudo componer el cuerpo del correo", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					email.Subject("Repaart Ops - Horario semanal publicado")
				case "shift_change_requested":
					tmpl, err := template.ParseFiles("./templates/shift_change_requested_email.html")
					if err != nil {
						logger.Error("no se pudo cargar la plantilla", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := email.SetBodyHTMLTemplate(tmpl, notification.Data); err != nil {
						logger.Error("no se pudo componer el cuerpo del correo", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					email.Subject("Repaart Ops - Solicitud de cambio de turno")
				default:
					logger.Error("tipo de notificacion no soportado", slog.String("type", notification.Type))
					_ = msg.Nack(false, false)
					continue
				}

				if err := client.DialAndSend(email); err != nil {
					logger.Error("no se pudo enviar el correo", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // reencolar para reintentarlo
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("esperando mensajes... (CTRL+C para salir)")
	<-sigChan

	slog.Info("cerrando el notify worker...")
	cancel()
	wg.Wait()
	slog.Info("notify worker cerrado correctamente")
}
