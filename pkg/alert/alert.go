// Package alert builds and delivers resource usage alert emails.
package alert

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	mail "github.com/wneessen/go-mail"
)

// Env variable names for the SMTP relay credentials
const (
	EnvSMTPUser     = "ROBOSHOP_SMTP_USER"
	EnvSMTPPassword = "ROBOSHOP_SMTP_PASSWORD"
)

// Breach is one host resource over its threshold
type Breach struct {
	Host      string
	Resource  string
	Usage     int
	Threshold int
}

func (b Breach) String() string {
	return fmt.Sprintf("%s: %s usage %d%% exceeds threshold %d%%", b.Host, b.Resource, b.Usage, b.Threshold)
}

// Report renders the plain text body of an alert email
func Report(stackName string, breaches []Breach) string {
	sorted := make([]Breach, len(breaches))
	copy(sorted, breaches)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Host != sorted[j].Host {
			return sorted[i].Host < sorted[j].Host
		}
		return sorted[i].Resource < sorted[j].Resource
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Resource usage alert for stack %s\n\n", stackName)
	for _, breach := range sorted {
		b.WriteString(breach.String())
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n%d threshold breaches in total.\n", len(sorted))
	return b.String()
}

// Mailer delivers alert reports over SMTP with STARTTLS
type Mailer struct {
	Host    string
	Port    int
	From    string
	To      string
	EnvFile string
}

func (m *Mailer) credentials() (string, string, error) {
	if m.EnvFile != "" {
		if err := godotenv.Overload(m.EnvFile); err != nil {
			return "", "", fmt.Errorf("load env file %s: %w", m.EnvFile, err)
		}
	}
	return os.Getenv(EnvSMTPUser), os.Getenv(EnvSMTPPassword), nil
}

// Send delivers the report. Without breaches it does nothing.
func (m *Mailer) Send(stackName string, breaches []Breach) error {
	if len(breaches) == 0 {
		return nil
	}

	user, pass, err := m.credentials()
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return fmt.Errorf("invalid sender %q: %w", m.From, err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", m.To, err)
	}
	msg.Subject(fmt.Sprintf("[%s] resource usage alert (%d breaches)", stackName, len(breaches)))
	msg.SetBodyString(mail.TypeTextPlain, Report(stackName, breaches))

	opts := []mail.Option{
		mail.WithPort(m.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if user != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(user),
			mail.WithPassword(pass),
		)
	}

	client, err := mail.NewClient(m.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("send alert mail: %w", err)
	}

	return nil
}
