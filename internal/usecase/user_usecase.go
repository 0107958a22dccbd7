package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/moneyman/moneyman/internal/domain"
)

// UserUseCase owns signup, login, session issuance, profile management
// and whole-profile data portability.
type UserUseCase struct {
	txManager     TransactionManager
	userRepo      UserRepository
	accountRepo   AccountRepository
	categoryRepo  CategoryRepository
	txnRepo       TransactionRepository
	backupRepo    BackupRepository
	notifications NotificationRepository
	sessions      SessionStore
	notifier      Notifier
	idGen         IDGenerator
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager TransactionManager,
	userRepo UserRepository,
	accountRepo AccountRepository,
	categoryRepo CategoryRepository,
	txnRepo TransactionRepository,
	backupRepo BackupRepository,
	notifications NotificationRepository,
	sessions SessionStore,
	notifier Notifier,
	idGen IDGenerator,
) *UserUseCase {
	return &UserUseCase{
		txManager:     txManager,
		userRepo:      userRepo,
		accountRepo:   accountRepo,
		categoryRepo:  categoryRepo,
		txnRepo:       txnRepo,
		backupRepo:    backupRepo,
		notifications: notifications,
		sessions:      sessions,
		notifier:      notifier,
		idGen:         idGen,
	}
}

// SignupInput represents registration input.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Signup registers a user, seeds the default categories and opens a
// session.
func (uc *UserUseCase) Signup(ctx context.Context, input SignupInput) (*domain.Session, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	user := &domain.User{
		ID:           uc.idGen.Generate(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.seedCategories(ctx, user.ID)

	log.Info().Str("user_id", user.ID).Msg("user registered")

	return uc.openSession(ctx, user, false)
}

// LoginInput represents login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and opens a session. Wrong email and wrong
// password are indistinguishable to the caller.
func (uc *UserUseCase) Login(ctx context.Context, input LoginInput) (*domain.Session, error) {
	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return uc.openSession(ctx, user, false)
}

// OpenSharedSession issues a session for a paired device. Shared
// sessions carry the owner's identity but are flagged so sensitive
// operations can reject them.
func (uc *UserUseCase) OpenSharedSession(ctx context.Context, owner *domain.User) (*domain.Session, error) {
	return uc.openSession(ctx, owner, true)
}

// Logout removes the session. Unknown session IDs are not an error.
func (uc *UserUseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// Resolve loads the session for an incoming request.
func (uc *UserUseCase) Resolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	return uc.sessions.Get(ctx, sessionID)
}

// Profile returns the user behind a session.
func (uc *UserUseCase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// UpdateProfileInput represents mutable profile fields.
type UpdateProfileInput struct {
	Name    *string
	Email   *string
	UserID  string
	Session *domain.Session
}

// UpdateProfile changes name or email. Shared sessions may not touch
// the owner's profile.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	if input.Session != nil && input.Session.SharedAccess {
		return nil, domain.ErrForbidden
	}

	if input.Name == nil && input.Email == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	user, err := uc.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := domain.ValidateName(*input.Name); err != nil {
			return nil, err
		}
		user.Name = *input.Name
	}

	if input.Email != nil && *input.Email != user.Email {
		if err := domain.ValidateEmail(*input.Email); err != nil {
			return nil, err
		}
		if _, err := uc.userRepo.GetByEmail(ctx, *input.Email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = *input.Email
	}

	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePasswordInput represents a password change.
type ChangePasswordInput struct {
	UserID      string
	OldPassword string
	NewPassword string
	Session     *domain.Session
}

// ChangePassword rotates the password after verifying the current one.
// Shared sessions are rejected outright.
func (uc *UserUseCase) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	if input.Session != nil && input.Session.SharedAccess {
		return domain.ErrForbidden
	}

	if err := domain.ValidatePassword(input.NewPassword); err != nil {
		return err
	}

	user, err := uc.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return uc.userRepo.UpdatePassword(ctx, user.ID, string(hash))
}

// UserStats summarizes a profile for the settings screen.
type UserStats struct {
	Accounts     int64 `json:"accounts"`
	Categories   int64 `json:"categories"`
	Transactions int64 `json:"transactions"`
}

// Stats counts what the user owns.
func (uc *UserUseCase) Stats(ctx context.Context, userID string) (*UserStats, error) {
	accounts, err := uc.accountRepo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	categories, err := uc.categoryRepo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.txnRepo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserStats{Accounts: accounts, Categories: categories, Transactions: transactions}, nil
}

// Notifications returns the in-app feed, newest first.
func (uc *UserUseCase) Notifications(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return uc.notifications.ListByUser(ctx, userID, NotificationFeedLimit)
}

// ClearNotifications empties the feed.
func (uc *UserUseCase) ClearNotifications(ctx context.Context, userID string) error {
	return uc.notifications.Clear(ctx, userID)
}

// Export snapshots everything the user owns.
func (uc *UserUseCase) Export(ctx context.Context, userID string) (*UserDataExport, error) {
	return uc.backupRepo.Export(ctx, userID)
}

// Import replaces the user's data with a previously exported snapshot.
// The wipe and the load run in one database transaction.
func (uc *UserUseCase) Import(ctx context.Context, session *domain.Session, data *UserDataExport) error {
	if session.SharedAccess {
		return domain.ErrForbidden
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := uc.backupRepo.Clear(ctx, tx, session.UserID); err != nil {
		return err
	}

	if err := uc.backupRepo.Import(ctx, tx, session.UserID, data); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.notifyAll(session.UserID)

	return nil
}

// ClearData wipes the user's financial records and reseeds the default
// categories. Returns deleted row counts by table.
func (uc *UserUseCase) ClearData(ctx context.Context, session *domain.Session) (map[string]int64, error) {
	if session.SharedAccess {
		return nil, domain.ErrForbidden
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	counts, err := uc.backupRepo.Clear(ctx, tx, session.UserID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.seedCategories(ctx, session.UserID)
	uc.notifyAll(session.UserID)

	return counts, nil
}

func (uc *UserUseCase) openSession(ctx context.Context, user *domain.User, shared bool) (*domain.Session, error) {
	session := &domain.Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		SharedAccess: shared,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.sessions.Create(ctx, session, SessionTTL); err != nil {
		return nil, err
	}

	return session, nil
}

func (uc *UserUseCase) seedCategories(ctx context.Context, userID string) {
	defaults := domain.DefaultCategories()
	batch := make([]*domain.Category, 0, len(defaults))
	now := time.Now().UTC()

	for i := range defaults {
		c := defaults[i]
		c.ID = uc.idGen.Generate()
		c.UserID = userID
		c.CreatedAt = now
		batch = append(batch, &c)
	}

	if err := uc.categoryRepo.CreateBatch(ctx, batch); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("default category seed failed")
	}
}

func (uc *UserUseCase) notifyAll(userID string) {
	if uc.notifier == nil {
		return
	}
	uc.notifier.AccountsChanged(userID)
	uc.notifier.TransactionsChanged(userID)
	uc.notifier.CategoriesChanged(userID)
	uc.notifier.DashboardChanged(userID)
}
