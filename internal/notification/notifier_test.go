package notification

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

type recordingSender struct {
	mu     sync.Mutex
	sent   []Message
	failTo map[string]bool
}

func (r *recordingSender) Send(msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failTo[msg.To] {
		return errors.New("smtp transport down")
	}
	r.sent = append(r.sent, msg)
	return nil
}

func newNotifierTestEnv(t *testing.T) (*Notifier, *recordingSender, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        filepath.Join(t.TempDir(), "notify_test.db"),
	}, &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	sender := &recordingSender{failTo: map[string]bool{}}
	return NewNotifier(sender, repository.NewUserRepository(db)), sender, db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestNotifyAdminsFansOutToEveryAdmin(t *testing.T) {
	notifier, sender, db := newNotifierTestEnv(t)

	seedUser(t, db, "admin1", model.RoleAdmin)
	seedUser(t, db, "admin2", model.RoleAdmin)
	seedUser(t, db, "admin3", model.RoleAdmin)
	seedUser(t, db, "worker", model.RoleEmployee)
	requester := seedUser(t, db, "alice", model.RoleEmployee)

	notifier.NotifyAdminsNewRequest(context.Background(), "vacation", requester, []string{"Dates: 2025-06-01 to 2025-06-05"})

	require.Len(t, sender.sent, 3)
	recipients := map[string]bool{}
	for _, msg := range sender.sent {
		recipients[msg.To] = true
		assert.Contains(t, msg.Subject, "vacation request from alice")
		assert.Contains(t, msg.HTML, "Dates: 2025-06-01 to 2025-06-05")
	}
	assert.False(t, recipients["worker@example.com"], "employees must not receive admin notifications")
}

func TestNotifyAdminsToleratesPartialFailure(t *testing.T) {
	notifier, sender, db := newNotifierTestEnv(t)

	seedUser(t, db, "admin1", model.RoleAdmin)
	seedUser(t, db, "admin2", model.RoleAdmin)
	seedUser(t, db, "admin3", model.RoleAdmin)
	requester := seedUser(t, db, "alice", model.RoleEmployee)

	// One broken mailbox must not block the other recipients.
	sender.failTo["admin2@example.com"] = true

	notifier.NotifyAdminsNewRequest(context.Background(), "supply", requester, []string{"Item: pens (x2)"})

	require.Len(t, sender.sent, 2)
	for _, msg := range sender.sent {
		assert.NotEqual(t, "admin2@example.com", msg.To)
	}
}

func TestNotifyDecisionIncludesRejectionReason(t *testing.T) {
	notifier, sender, db := newNotifierTestEnv(t)
	requester := seedUser(t, db, "alice", model.RoleEmployee)

	notifier.NotifyDecision("vacation", requester, model.StatusRejected, "Blackout period", []string{"Dates: 2025-06-01 to 2025-06-05"})

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "alice@example.com", msg.To)
	assert.Contains(t, msg.Subject, "rejected")
	assert.Contains(t, msg.HTML, "Reason: Blackout period")
	assert.Contains(t, msg.Text, "Reason: Blackout period")
}

func TestWelcomeEmailFeatureFlag(t *testing.T) {
	notifier, sender, db := newNotifierTestEnv(t)
	user := seedUser(t, db, "alice", model.RoleEmployee)

	t.Setenv("WELCOME_EMAIL_ENABLED", "false")
	notifier.SendWelcome(user)
	assert.Empty(t, sender.sent)

	t.Setenv("WELCOME_EMAIL_ENABLED", "true")
	notifier.SendWelcome(user)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Subject, "Welcome")
}

func TestRenderBannerColors(t *testing.T) {
	assert.Equal(t, "#16a34a", bannerColor(model.StatusApproved))
	assert.Equal(t, "#dc2626", bannerColor(model.StatusRejected))
	assert.Equal(t, "#6b7280", bannerColor(model.StatusCancelled))
	assert.Equal(t, "#0891b2", bannerColor(model.StatusFulfilled))
	assert.Equal(t, "#d97706", bannerColor(model.StatusPending))

	html, text, err := render(templateData{
		Recipient:   "alice",
		BannerText:  "Your vacation request was approved",
		BannerColor: bannerColor(model.StatusApproved),
		Lines:       []string{"Dates: 2025-06-01 to 2025-06-05"},
	})
	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "#16a34a"))
	assert.True(t, strings.Contains(html, "Hi alice"))
	assert.True(t, strings.Contains(text, "Your vacation request was approved"))
}
