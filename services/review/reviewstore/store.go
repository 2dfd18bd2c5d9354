// Package reviewstore persists reviews in a relational database through gorm.
// Postgres serves production, SQLite in-memory serves local runs and tests.
package reviewstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/MarcGrol/productcomposite/lib/mystore"
)

type ReviewEntity struct {
	ID        uint   `gorm:"primaryKey"`
	Version   int    `gorm:"not null;default:0"`
	ProductID int    `gorm:"not null;uniqueIndex:idx_reviews_product_review"`
	ReviewID  int    `gorm:"not null;uniqueIndex:idx_reviews_product_review"`
	Author    string `gorm:"not null"`
	Subject   string
	Content   string
}

func (ReviewEntity) TableName() string {
	return "reviews"
}

//go:generate mockgen -source=store.go -package reviewstore -destination store_mock.go Store
type Store interface {
	Create(c context.Context, review ReviewEntity) (ReviewEntity, error)
	Update(c context.Context, review ReviewEntity) (ReviewEntity, error)
	FindByProductID(c context.Context, productID int) ([]ReviewEntity, error)
	DeleteByProductID(c context.Context, productID int) (int64, error)
}

type gormStore struct {
	db *gorm.DB
}

// New connects to Postgres and migrates the reviews table.
func New(dsn string) (Store, func(), error) {
	return open(postgres.Open(dsn), false)
}

// NewInMemory creates a private SQLite in-memory database identified by name.
func NewInMemory(name string) (Store, func(), error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(name, "/", "_"))
	return open(sqlite.Open(dsn), true)
}

func open(dialector gorm.Dialector, inMemory bool) (Store, func(), error) {
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, func() {}, fmt.Errorf("error connecting to review database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, func() {}, fmt.Errorf("error obtaining review database handle: %w", err)
	}
	if inMemory {
		// the database lives as long as its last connection
		sqlDB.SetMaxOpenConns(1)
	}
	cleanup := func() {
		sqlDB.Close()
	}

	err = db.AutoMigrate(&ReviewEntity{})
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("error migrating review database: %w", err)
	}

	return &gormStore{db: db}, cleanup, nil
}

// Create fails with mystore.ErrDuplicateKey when (productId, reviewId) is taken.
func (s *gormStore) Create(c context.Context, review ReviewEntity) (ReviewEntity, error) {
	review.ID = 0
	review.Version = 0

	err := s.db.WithContext(c).Create(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ReviewEntity{}, fmt.Errorf("review %d/%d: %w", review.ProductID, review.ReviewID, mystore.ErrDuplicateKey)
		}
		return ReviewEntity{}, fmt.Errorf("error creating review %d/%d: %w", review.ProductID, review.ReviewID, err)
	}

	return review, nil
}

// Update only succeeds when the stored version equals review.Version.
func (s *gormStore) Update(c context.Context, review ReviewEntity) (ReviewEntity, error) {
	res := s.db.WithContext(c).
		Model(&ReviewEntity{}).
		Where("id = ? AND version = ?", review.ID, review.Version).
		Updates(map[string]any{
			"author":  review.Author,
			"subject": review.Subject,
			"content": review.Content,
			"version": review.Version + 1,
		})
	if res.Error != nil {
		return ReviewEntity{}, fmt.Errorf("error updating review %d: %w", review.ID, res.Error)
	}

	if res.RowsAffected == 0 {
		var count int64
		err := s.db.WithContext(c).Model(&ReviewEntity{}).Where("id = ?", review.ID).Count(&count).Error
		if err != nil {
			return ReviewEntity{}, fmt.Errorf("error checking review %d: %w", review.ID, err)
		}
		if count == 0 {
			return ReviewEntity{}, fmt.Errorf("review %d: %w", review.ID, mystore.ErrNotFound)
		}
		return ReviewEntity{}, fmt.Errorf("review %d with version %d: %w", review.ID, review.Version, mystore.ErrOptimisticLock)
	}

	review.Version++
	return review, nil
}

func (s *gormStore) FindByProductID(c context.Context, productID int) ([]ReviewEntity, error) {
	reviews := []ReviewEntity{}
	err := s.db.WithContext(c).
		Where("product_id = ?", productID).
		Order("review_id").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching reviews of product %d: %w", productID, err)
	}
	return reviews, nil
}

func (s *gormStore) DeleteByProductID(c context.Context, productID int) (int64, error) {
	res := s.db.WithContext(c).Where("product_id = ?", productID).Delete(&ReviewEntity{})
	if res.Error != nil {
		return 0, fmt.Errorf("error deleting reviews of product %d: %w", productID, res.Error)
	}
	return res.RowsAffected, nil
}
