package migrations

import (
	"log"
	"time"

	"github.com/Akhileshkolipakula/soda-business-manager/internal/model"

	"gorm.io/gorm"
)

// SchemaMigration records one applied migration step.
type SchemaMigration struct {
	Version   int    `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(255);not null"`
	AppliedAt time.Time
}

type step struct {
	version int
	name    string
	run     func(db *gorm.DB) error
}

// The sequence is append-only: new schema changes get a new version at the
// end. Each step must be idempotent because a crash between running a step
// and recording it means the step runs again on the next start.
var steps = []step{
	{
		version: 1,
		name:    "create base tables",
		run: func(db *gorm.DB) error {
			return db.AutoMigrate(
				&model.Flavor{},
				&model.Product{},
				&model.StockAddition{},
				&model.Customer{},
				&model.Sale{},
				&model.Investment{},
				&model.User{},
				&model.ActivityLog{},
			)
		},
	},
	{
		version: 2,
		name:    "additive audit columns",
		run: func(db *gorm.DB) error {
			// Audit columns arrived after the initial schema; AutoMigrate
			// adds missing columns without touching existing ones.
			return db.AutoMigrate(&model.Product{}, &model.Customer{})
		},
	},
}

// Run applies every unapplied migration step in order, recording each one.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return err
	}

	for _, s := range steps {
		var applied int64
		if err := db.Model(&SchemaMigration{}).Where("version = ?", s.version).Count(&applied).Error; err != nil {
			return err
		}
		if applied > 0 {
			continue
		}

		log.Printf("Applying migration %d: %s", s.version, s.name)
		if err := s.run(db); err != nil {
			return err
		}
		record := SchemaMigration{Version: s.version, Name: s.name, AppliedAt: time.Now()}
		if err := db.Create(&record).Error; err != nil {
			return err
		}
	}

	return nil
}
