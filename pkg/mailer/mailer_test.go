package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildMessageRejectsBadRecipient(t *testing.T) {
	_, err := BuildMessage("alumni@example.org", Message{To: "not an address", Subject: "x", Body: "y"})
	require.Error(t, err)
}

func TestBuildMessage(t *testing.T) {
	m, err := BuildMessage("alumni@example.org", Message{To: "mods@example.org", Subject: "Update request", Body: "lastPosition: CTO"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Update request"}, m.GetGenHeader("Subject"))
}

func TestLogSenderLogsInsteadOfSending(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sender := NewLogSender(zap.New(core))

	require.NoError(t, sender.Send(context.Background(), Message{To: "mods@example.org", Subject: "s", Body: "b"}))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "mods@example.org", logs.All()[0].ContextMap()["to"])
}
