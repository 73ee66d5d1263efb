package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Reader exposes the lookups the pledge workflow and the catalog need.
type Reader interface {
	ListPackages() ([]models.Package, error)
	GetPackage(id uuid.UUID) (*models.Package, error)
	FindPackageOptions(ids []uuid.UUID) ([]models.PackageOption, error)

	FindUserByID(id uuid.UUID) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)

	GetPledge(id uuid.UUID) (*models.Pledge, error)
	ListPledgesByUser(userID uuid.UUID) ([]models.Pledge, error)
	CountPledgesByUser(userID uuid.UUID) (int64, error)
	CountRewardedPledgesByUser(userID uuid.UUID) (int64, error)

	FindPaymentSource(userID uuid.UUID, method string) (*models.PaymentSource, error)
}

type Writer interface {
	CreateUser(user *models.User) error
	UpdateUserName(userID uuid.UUID, firstName, lastName string) error
	CreatePledge(pledge *models.Pledge) error
	CreatePledgeOptions(options []models.PledgeOption) error
}

// Tx is a unit of work. Exactly one of Commit or Rollback ends it.
type Tx interface {
	Reader
	Writer
	Commit() error
	Rollback() error
}

type Store interface {
	Begin(ctx context.Context) (Tx, error)
	Read(ctx context.Context) Reader
}

type GormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Begin(ctx context.Context) (Tx, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	return &gormTx{gormReader: newGormReader(tx), tx: tx}, nil
}

func (s *GormStore) Read(ctx context.Context) Reader {
	return newGormReader(s.db.WithContext(ctx))
}

type gormReader struct {
	packages *PackageRepository
	users    *UserRepository
	pledges  *PledgeRepository
	sources  *PaymentSourceRepository
}

func newGormReader(db *gorm.DB) *gormReader {
	return &gormReader{
		packages: NewPackageRepository(db),
		users:    NewUserRepository(db),
		pledges:  NewPledgeRepository(db),
		sources:  NewPaymentSourceRepository(db),
	}
}

func (r *gormReader) ListPackages() ([]models.Package, error) { return r.packages.GetAll() }

func (r *gormReader) GetPackage(id uuid.UUID) (*models.Package, error) {
	return r.packages.GetByID(id)
}

func (r *gormReader) FindPackageOptions(ids []uuid.UUID) ([]models.PackageOption, error) {
	return r.packages.GetOptionsByIDs(ids)
}

func (r *gormReader) FindUserByID(id uuid.UUID) (*models.User, error) { return r.users.GetByID(id) }

func (r *gormReader) FindUserByEmail(email string) (*models.User, error) {
	return r.users.GetByEmail(email)
}

func (r *gormReader) GetPledge(id uuid.UUID) (*models.Pledge, error) { return r.pledges.GetByID(id) }

func (r *gormReader) ListPledgesByUser(userID uuid.UUID) ([]models.Pledge, error) {
	return r.pledges.GetUserPledges(userID)
}

func (r *gormReader) CountPledgesByUser(userID uuid.UUID) (int64, error) {
	return r.pledges.CountByUser(userID)
}

func (r *gormReader) CountRewardedPledgesByUser(userID uuid.UUID) (int64, error) {
	return r.pledges.CountRewardedByUser(userID)
}

func (r *gormReader) FindPaymentSource(userID uuid.UUID, method string) (*models.PaymentSource, error) {
	return r.sources.GetByUserAndMethod(userID, method)
}

type gormTx struct {
	*gormReader
	tx *gorm.DB
}

func (t *gormTx) CreateUser(user *models.User) error { return t.users.Create(user) }

func (t *gormTx) UpdateUserName(userID uuid.UUID, firstName, lastName string) error {
	return t.users.UpdateName(userID, firstName, lastName)
}

func (t *gormTx) CreatePledge(pledge *models.Pledge) error { return t.pledges.Create(pledge) }

func (t *gormTx) CreatePledgeOptions(options []models.PledgeOption) error {
	return t.pledges.CreateOptions(options)
}

func (t *gormTx) Commit() error {
	return t.tx.Commit().Error
}

func (t *gormTx) Rollback() error {
	return t.tx.Rollback().Error
}
