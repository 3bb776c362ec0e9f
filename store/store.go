package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZamarianPatrick/oasis-backend/catalog"
	"github.com/ZamarianPatrick/oasis-backend/model"
	"github.com/ZamarianPatrick/oasis-backend/providers"
	"github.com/ZamarianPatrick/oasis-backend/structures"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrStaleCurrent is returned when the record a mutation was based on is no
// longer the current one.
var ErrStaleCurrent = errors.New("plant is no longer the current plant")

// InvariantViolation reports that the store does not hold exactly one current
// plant. It points at corrupted data or a bug, never at user input.
type InvariantViolation struct {
	Found int64
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("expected exactly one current plant, found %d", e.Found)
}

type Store interface {
	// Current returns the single record with IsCurrent set.
	Current(ctx context.Context) (*model.Plant, error)
	// Replace deactivates the record oldID and creates next in one transaction.
	Replace(ctx context.Context, oldID uint64, next *model.Plant) error
	// Update persists water level, phase and nickname of the current record p.
	Update(ctx context.Context, p *model.Plant) error
	// History lists every record, newest first.
	History(ctx context.Context) ([]*model.Plant, error)
	// Seed creates a first current record from def when the store is empty.
	Seed(ctx context.Context, def model.PlantDefinition, at time.Time) (bool, error)
	Close() error
}

type gormStore struct {
	db *gorm.DB
}

type gormWriter struct {
	log providers.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Debugf(providers.TypeStore, format, args...)
}

// Open opens (and migrates) the sqlite database at path.
func Open(path string, log providers.Logger, debug bool) (Store, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.New(gormWriter{log: log}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open database %s: %w", path, err)
	}

	if err = db.AutoMigrate(&model.Plant{}); err != nil {
		return nil, fmt.Errorf("unable to migrate database: %w", err)
	}

	log.Infof(providers.TypeStore, "Database ready at %s", path)
	return &gormStore{db: db}, nil
}

// NewStore opens the configured database and seeds it from the catalog's
// first offering on first run.
func NewStore(conf *structures.Config, log providers.Logger, cat *catalog.Catalog) (Store, func(), error) {
	s, err := Open(conf.Database.Path, log, conf.Debug)
	if err != nil {
		return nil, nil, err
	}

	first := cat.First()
	seeded, err := s.Seed(context.Background(), first, time.Now())
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	if seeded {
		log.Infof(providers.TypeStore, "Planted a first %s", first.Name)
	}

	cleanup := func() {
		if err := s.Close(); err != nil {
			log.Errorf(providers.TypeStore, "Closing database: %s", err)
		}
	}
	return s, cleanup, nil
}

func currentIn(tx *gorm.DB) (*model.Plant, error) {
	var plants []*model.Plant
	if err := tx.Where("is_current = ?", true).Find(&plants).Error; err != nil {
		return nil, err
	}
	if len(plants) != 1 {
		return nil, &InvariantViolation{Found: int64(len(plants))}
	}
	return plants[0], nil
}

func (s *gormStore) Current(ctx context.Context) (*model.Plant, error) {
	return currentIn(s.db.WithContext(ctx))
}

func (s *gormStore) Replace(ctx context.Context, oldID uint64, next *model.Plant) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Plant{}).
			Where("id = ? AND is_current = ?", oldID, true).
			Update("is_current", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return ErrStaleCurrent
		}

		next.ID = 0
		next.IsCurrent = true
		if err := tx.Create(next).Error; err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&model.Plant{}).Where("is_current = ?", true).Count(&n).Error; err != nil {
			return err
		}
		if n != 1 {
			return &InvariantViolation{Found: n}
		}
		return nil
	})
	if err != nil {
		next.ID = 0
	}
	return err
}

func (s *gormStore) Update(ctx context.Context, p *model.Plant) error {
	res := s.db.WithContext(ctx).Model(&model.Plant{}).
		Where("id = ? AND is_current = ?", p.ID, true).
		Updates(map[string]interface{}{
			"water_level": p.WaterLevel,
			"phase":       p.Phase,
			"nickname":    p.Nickname,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrStaleCurrent
	}
	return nil
}

func (s *gormStore) History(ctx context.Context) ([]*model.Plant, error) {
	var plants []*model.Plant
	err := s.db.WithContext(ctx).Order("id desc").Find(&plants).Error
	return plants, err
}

func (s *gormStore) Seed(ctx context.Context, def model.PlantDefinition, at time.Time) (bool, error) {
	seeded := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Plant{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		seeded = true
		return tx.Create(model.NewPlant(def, at)).Error
	})
	return seeded, err
}

func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
