package mailer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=pkgmocks github.com/ypamar/newsletter/pkg/mailer Mailer

// TestSubjectPrefix marks proof emails in the recipient's inbox
const TestSubjectPrefix = "[TEST] "

// Message is a rendered design ready to be delivered
type Message struct {
	To      string
	Subject string
	HTML    string
	// Text is the plain text alternative, omitted when empty
	Text string
}

// Mailer delivers proof copies of a design
type Mailer interface {
	// SendTestEmail sends msg to a single recipient with the test subject prefix
	SendTestEmail(ctx context.Context, msg Message) error
}

// Config holds the configuration for the mailer
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool
	FromEmail    string
	FromName     string

	// BreakerThreshold consecutive send failures stop dialing for BreakerCooldown
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

// SMTPMailer implements the Mailer interface using SMTP
type SMTPMailer struct {
	config   *Config
	testMode bool
	breaker  *CircuitBreaker
	// sent records messages built in test mode
	sent []*mail.Msg
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{
		config:   config,
		testMode: false,
		breaker:  NewCircuitBreaker(config.BreakerThreshold, config.BreakerCooldown),
	}
}

// NewTestSMTPMailer creates a new SMTP mailer in test mode (won't connect to SMTP server)
func NewTestSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{
		config:   config,
		testMode: true,
		breaker:  NewCircuitBreaker(config.BreakerThreshold, config.BreakerCooldown),
	}
}

func subject(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		s = "Untitled design"
	}
	if strings.HasPrefix(s, TestSubjectPrefix) {
		return s
	}
	return TestSubjectPrefix + s
}

// buildMessage turns msg into a MIME message with an HTML body and optional text alternative
func (m *SMTPMailer) buildMessage(msg Message) (*mail.Msg, error) {
	out := mail.NewMsg(mail.WithNoDefaultUserAgent())

	if err := out.FromFormat(m.config.FromName, m.config.FromEmail); err != nil {
		return nil, fmt.Errorf("failed to set email from address: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, fmt.Errorf("failed to set email recipient: %w", err)
	}
	out.Subject(subject(msg.Subject))
	out.SetBodyString(mail.TypeTextHTML, msg.HTML)
	if msg.Text != "" {
		out.AddAlternativeString(mail.TypeTextPlain, msg.Text)
	}
	return out, nil
}

func (m *SMTPMailer) SendTestEmail(ctx context.Context, msg Message) error {
	out, err := m.buildMessage(msg)
	if err != nil {
		return err
	}

	if m.breaker.IsOpen() {
		return m.breaker.openError()
	}

	client, err := m.createSMTPClient()
	if err != nil {
		return err
	}
	if client == nil {
		m.sent = append(m.sent, out)
		m.breaker.RecordSuccess()
		return nil
	}

	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		m.breaker.RecordFailure(err)
		return fmt.Errorf("failed to send test email: %w", err)
	}
	m.breaker.RecordSuccess()
	return nil
}

// createSMTPClient creates and configures a new SMTP client
func (m *SMTPMailer) createSMTPClient() (*mail.Client, error) {
	// In test mode, return nil client to avoid SMTP connections
	if m.testMode {
		return nil, nil
	}

	policy := mail.TLSOpportunistic
	if m.config.SMTPUseTLS {
		policy = mail.TLSMandatory
	}
	clientOptions := []mail.Option{
		mail.WithPort(m.config.SMTPPort),
		mail.WithTLSPolicy(policy),
		mail.WithTimeout(10 * time.Second),
	}

	// unauthenticated relays are allowed
	if m.config.SMTPUsername != "" && m.config.SMTPPassword != "" {
		clientOptions = append(clientOptions,
			mail.WithUsername(m.config.SMTPUsername),
			mail.WithPassword(m.config.SMTPPassword),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	client, err := mail.NewClient(m.config.SMTPHost, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return client, nil
}

// ConsoleMailer is a development implementation that prints emails
type ConsoleMailer struct {
	out io.Writer
}

// NewConsoleMailer creates a console mailer writing to stdout
func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{out: os.Stdout}
}

// NewConsoleMailerWithWriter creates a console mailer writing to w
func NewConsoleMailerWithWriter(w io.Writer) *ConsoleMailer {
	return &ConsoleMailer{out: w}
}

func (m *ConsoleMailer) SendTestEmail(_ context.Context, msg Message) error {
	rule := strings.Repeat("=", 62)
	fmt.Fprintln(m.out, rule)
	fmt.Fprintln(m.out, "                         TEST EMAIL")
	fmt.Fprintln(m.out, rule)
	fmt.Fprintf(m.out, "To: %s\n", msg.To)
	fmt.Fprintf(m.out, "Subject: %s\n", subject(msg.Subject))
	fmt.Fprintf(m.out, "HTML: %d bytes\n\n", len(msg.HTML))
	if msg.Text != "" {
		fmt.Fprintln(m.out, msg.Text)
		fmt.Fprintln(m.out)
	}
	fmt.Fprintln(m.out, rule)
	return nil
}
