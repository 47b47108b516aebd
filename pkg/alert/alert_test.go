package alert

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	breaches := []Breach{
		{Host: "10.0.0.2", Resource: "memory", Usage: 95, Threshold: 90},
		{Host: "10.0.0.1", Resource: "disk", Usage: 91, Threshold: 80},
	}
	report := Report("roboshop", breaches)
	require.Contains(t, report, "Resource usage alert for stack roboshop")
	require.Contains(t, report, "10.0.0.1: disk usage 91% exceeds threshold 80%")
	require.Contains(t, report, "10.0.0.2: memory usage 95% exceeds threshold 90%")
	require.Contains(t, report, "2 threshold breaches in total")
	require.Less(t, 0, len(report))

	// hosts are reported in a stable order
	require.Less(t, indexOf(t, report, "10.0.0.1"), indexOf(t, report, "10.0.0.2"))
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	t.Fatalf("%q not found in report", sub)
	return -1
}

func TestSendWithoutBreachesIsNoop(t *testing.T) {
	m := &Mailer{Host: "smtp.invalid", Port: 587}
	require.NoError(t, m.Send("roboshop", nil))
}

func TestCredentialsFromEnvFile(t *testing.T) {
	f := t.TempDir() + "/secrets.env"
	require.NoError(t, os.WriteFile(f, []byte("ROBOSHOP_SMTP_USER=alice\nROBOSHOP_SMTP_PASSWORD=hunter2\n"), 0o600))
	t.Setenv(EnvSMTPUser, "")
	t.Setenv(EnvSMTPPassword, "")

	m := &Mailer{EnvFile: f}
	user, pass, err := m.credentials()
	require.NoError(t, err)
	require.Equal(t, "alice", user)
	require.Equal(t, "hunter2", pass)
}

func TestCredentialsMissingEnvFile(t *testing.T) {
	m := &Mailer{EnvFile: "/nonexistent/secrets.env"}
	_, _, err := m.credentials()
	require.Error(t, err)
}
