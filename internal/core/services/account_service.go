package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ksiegowo/ksiegowo_backend/internal/apperrors"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
)

// accountService manages the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade, opts ...Option) portssvc.AccountSvcFacade {
	s := &accountService{
		BaseService: newBaseService(auditRepo),
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if existing, err := s.accountRepo.FindAccountByCode(ctx, organizationID, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrConflict, req.Code)
	}

	accountType := domain.AccountType(req.AccountType)

	normalBalance := accountType.DefaultNormalBalance()
	if req.NormalBalance != nil {
		normalBalance = domain.NormalBalance(*req.NormalBalance)
	}

	allowsPosting := true
	if req.AllowsPosting != nil {
		allowsPosting = *req.AllowsPosting
	}

	level := 0
	path := req.Code
	if req.ParentAccountID != nil {
		parent, err := s.accountRepo.FindAccountByID(ctx, organizationID, *req.ParentAccountID)
		if err != nil {
			return nil, fmt.Errorf("parent account lookup failed: %w", err)
		}
		// The parent must agree on type; a child expense under an asset header
		// would corrupt report grouping.
		if parent.AccountType != accountType {
			return nil, fmt.Errorf("%w: parent account type %s does not match %s", apperrors.ErrValidation, parent.AccountType, accountType)
		}
		level = parent.Level + 1
		path = parent.Path + "/" + req.Code
	}

	account := domain.Account{
		AccountID:          uuid.NewString(),
		OrganizationID:     organizationID,
		Code:               req.Code,
		Name:               req.Name,
		AccountType:        accountType,
		NormalBalance:      normalBalance,
		ParentAccountID:    req.ParentAccountID,
		Level:              level,
		Path:               path,
		AllowsPosting:      allowsPosting,
		RequiresCostCenter: req.RequiresCostCenter,
		CurrencyCode:       req.CurrencyCode,
		Description:        req.Description,
		IsActive:           true,
		AuditFields:        s.newAuditFields(creatorUserID),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.RecordAudit(ctx, organizationID, creatorUserID, "account.create", "account", account.AccountID, map[string]any{"code": account.Code})
	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, organizationID string, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
}

func (s *accountService) GetAccountByCode(ctx context.Context, organizationID string, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, organizationID, code)
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, organizationID, accountIDs)
}

func (s *accountService) ListAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, organizationID, includeInactive)
}

func (s *accountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.RequiresCostCenter != nil {
		account.RequiresCostCenter = *req.RequiresCostCenter
	}
	s.touchAuditFields(&account.AuditFields, requestingUserID)

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "account.update", "account", accountID, nil)
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, organizationID string, accountID string, requestingUserID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrConflict, account.Code)
	}

	// An account with ledger history must net to zero before deactivation,
	// otherwise the trial balance would quietly lose a live figure.
	hasActivity, err := s.accountRepo.HasPostedActivity(ctx, organizationID, accountID)
	if err != nil {
		return fmt.Errorf("failed to check account activity: %w", err)
	}
	if hasActivity {
		totals, err := s.ledgerRepo.SumMovements(ctx, organizationID, accountID, nil)
		if err != nil {
			return fmt.Errorf("failed to sum account movements: %w", err)
		}
		if !totals.Debit.Equal(totals.Credit) {
			return fmt.Errorf("%w: account %s carries a nonzero balance", apperrors.ErrPreconditionFailed, account.Code)
		}
	}

	account.IsActive = false
	s.touchAuditFields(&account.AuditFields, requestingUserID)

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "account.deactivate", "account", accountID, map[string]any{"code": account.Code})
	return nil
}
