package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
)

// ManualGrantToken marks transactions created by an admin grant.
const ManualGrantToken = "manual-grant"

// Notifier is told when a plan becomes active. Failures are logged only.
type Notifier interface {
	PlanActivated(ctx context.Context, user *models.User) error
}

// Service activates plans and reconciles transaction status.
type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

// NewService creates a billing service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// WithNotifier sets the plan activation notifier.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notifier = n
	return s
}

// GrantPlan activates plan for the user registered under email, starting now.
func (s *Service) GrantPlan(ctx context.Context, email, plan string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.Invalid("email", "is required")
	}
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.activate(ctx, user, plan); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyPendingUser strips the pending marker from a user's plan, restarts
// the subscription and marks the latest open transaction for the user's
// email as paid.
func (s *Service) VerifyPendingUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return nil, notFound(err)
	}
	plan := StripPending(user.PlanName())
	if plan == "" {
		return nil, apperror.Invalid("plan", "user has no plan to verify")
	}
	if err := s.activate(ctx, user, plan); err != nil {
		return nil, err
	}

	if user.Email == "" {
		return user, nil
	}
	tx, err := s.repo.LatestOpenTransactionByEmail(user.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, nil
		}
		return nil, err
	}
	if err := s.repo.UpdateTransactionStatus(tx.ID, models.TxStatusSuccess); err != nil {
		return nil, err
	}
	return user, nil
}

// ConfirmTransaction marks a transaction paid and activates the package for
// the buyer. The returned user is nil when no account uses the buyer's email.
func (s *Service) ConfirmTransaction(ctx context.Context, txID string) (*models.Transaction, *models.User, error) {
	tx, err := s.repo.FindTransaction(txID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	if err := s.repo.UpdateTransactionStatus(tx.ID, models.TxStatusSuccess); err != nil {
		return nil, nil, err
	}
	tx.Status = models.TxStatusSuccess

	user, err := s.repo.FindUserByEmail(tx.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnf("[Billing] transaction %s confirmed but no user has email %s", tx.ID, tx.Email)
			return tx, nil, nil
		}
		return nil, nil, err
	}

	plan := tx.PackageName
	if plan == "" {
		plan = user.PlanName()
	}
	if plan == "" {
		plan = DefaultGrantPlan
	}
	if err := s.activate(ctx, user, StripPending(plan)); err != nil {
		return nil, nil, err
	}
	return tx, user, nil
}

// ApplyNotification writes the mapped gateway status and grants the package
// on success.
func (s *Service) ApplyNotification(ctx context.Context, n *Notification) error {
	if err := s.repo.UpdateTransactionStatus(n.OrderID, n.Status); err != nil {
		return notFound(err)
	}
	log.Infof("[Webhook] order %s -> %s via %s", n.OrderID, n.Status, n.Provider)
	if n.Status != models.TxStatusSuccess {
		return nil
	}

	tx, err := s.repo.FindTransaction(n.OrderID)
	if err != nil {
		return notFound(err)
	}
	if tx.Email == "" || tx.PackageName == "" {
		return nil
	}
	if _, err := s.GrantPlan(ctx, tx.Email, tx.PackageName); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			log.Warnf("[Webhook] order %s paid but no user has email %s", tx.ID, tx.Email)
			return nil
		}
		return err
	}
	return nil
}

// UpdateTransactionStatus stores status without touching any plan.
func (s *Service) UpdateTransactionStatus(ctx context.Context, txID, status string) error {
	_ = ctx
	if strings.TrimSpace(status) == "" {
		status = models.TxStatusSuccess
	}
	return notFound(s.repo.UpdateTransactionStatus(txID, status))
}

// RecordManualGrant stores a manual_success transaction for a plan granted
// by an admin.
func (s *Service) RecordManualGrant(ctx context.Context, user *models.User, plan string, amount int64) (*models.Transaction, error) {
	_ = ctx
	email := user.Email
	if email == "" {
		email = user.Username
	}
	phone := user.Phone
	if phone == "" {
		phone = "-"
	}
	token := ManualGrantToken
	tx := &models.Transaction{
		ID:            ManualTransactionID(s.now()),
		CustomerName:  user.Name,
		Email:         email,
		Phone:         phone,
		PackageName:   plan,
		Amount:        amount,
		Status:        models.TxStatusManualSuccess,
		PaymentMethod: models.PaymentManual,
		Token:         &token,
	}
	if err := s.repo.CreateTransaction(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// ManualTransactionID returns MANUAL-<uuid prefix>-<unix millis>.
func ManualTransactionID(now time.Time) string {
	prefix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("MANUAL-%s-%d", prefix, now.UnixMilli())
}

// RecordWebhookEvent persists webhook payloads idempotently.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.PaymentWebhookEvent, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.PaymentWebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		OrderID:         strings.TrimSpace(in.OrderID),
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}

func (s *Service) activate(ctx context.Context, user *models.User, plan string) error {
	ApplyPlan(user, plan, s.now())
	if err := s.repo.SaveUser(user); err != nil {
		return err
	}
	if s.notifier != nil && user.Plan != nil && !IsPending(*user.Plan) {
		if err := s.notifier.PlanActivated(ctx, user); err != nil {
			log.Warnf("[Billing] plan activation notice for %s failed: %v", user.Username, err)
		}
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	return err
}
