package service

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"backend/internal/model"
	"backend/internal/notification"
	"backend/internal/repository"
	ws "backend/internal/websocket"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB opens a throwaway sqlite database with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "workhub_test.db")
	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        dbPath,
	}, &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.VacationRequest{},
		&model.Asset{},
		&model.AssetRequest{},
		&model.AssetAssignment{},
		&model.SupplyRequest{},
		&model.AuditLog{},
	))

	return db
}

// fakeSender records outbound mail instead of delivering it. Addresses listed
// in failTo return an error from Send.
type fakeSender struct {
	mu     sync.Mutex
	sent   []notification.Message
	failTo map[string]bool
}

func (f *fakeSender) Send(msg notification.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTo[msg.To] {
		return errSendFailed
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) messages() []notification.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]notification.Message, len(f.sent))
	copy(out, f.sent)
	return out
}

var errSendFailed = errors.New("smtp transport down")

// testEnv wires real repositories against the sqlite database, a recording
// mail sender and an idle hub.
type testEnv struct {
	db       *gorm.DB
	sender   *fakeSender
	hub      *ws.Hub
	users    repository.UserRepository
	vacation VacationService
	asset    AssetService
	supply   SupplyService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	sender := &fakeSender{failTo: map[string]bool{}}
	hub := ws.NewHub()

	userRepo := repository.NewUserRepository(db)
	vacationRepo := repository.NewVacationRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	assetRequestRepo := repository.NewAssetRequestRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	supplyRepo := repository.NewSupplyRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)
	notifier := notification.NewNotifier(sender, userRepo)

	return &testEnv{
		db:       db,
		sender:   sender,
		hub:      hub,
		users:    userRepo,
		vacation: NewVacationService(vacationRepo, userRepo, auditRepo, txManager, notifier, hub),
		asset:    NewAssetService(assetRepo, assetRequestRepo, assignmentRepo, userRepo, auditRepo, txManager, notifier, hub),
		supply:   NewSupplyService(supplyRepo, userRepo, auditRepo, txManager, notifier, hub),
	}
}

func (e *testEnv) createUser(t *testing.T, username, role string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) auditActions(t *testing.T) []string {
	t.Helper()

	var logs []model.AuditLog
	require.NoError(t, e.db.Order("created_at").Find(&logs).Error)
	actions := make([]string, 0, len(logs))
	for _, l := range logs {
		actions = append(actions, l.Action)
	}
	return actions
}
