package database

import (
	"fmt"
	"log"

	"artscore_backend/internal/config"
	"artscore_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedCatalog(db)
	seedSettings(db)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Lead{},
		&model.Setting{},
		&model.Room{},
		&model.Style{},
		&model.StyleImage{},
		&model.Detail{},
		&model.ImageTag{},
		&model.QuizQuestion{},
		&model.QuizSession{},
		&model.Answer{},
		&model.StyleScore{},
		&model.DetailScore{},
		&model.Comment{},
		&model.QuizAnalytics{},
	)
}

// seedCatalog inserts the default style/detail/room reference data when the
// catalog tables are empty.
func seedCatalog(db *gorm.DB) {
	var roomCount int64
	db.Model(&model.Room{}).Count(&roomCount)
	if roomCount == 0 {
		defaultRooms := []model.Room{
			{Name: "Living Room", Slug: "living-room", Description: "Main living and lounge area"},
			{Name: "Kitchen", Slug: "kitchen", Description: "Kitchen and dining"},
			{Name: "Bedroom", Slug: "bedroom", Description: "Bedroom and sleeping area"},
			{Name: "Bathroom", Slug: "bathroom", Description: "Bathroom and spa"},
			{Name: "Home Office", Slug: "home-office", Description: "Work-from-home space"},
		}
		for _, r := range defaultRooms {
			db.Create(&r)
		}
	}

	var styleCount int64
	db.Model(&model.Style{}).Count(&styleCount)
	if styleCount == 0 {
		defaultStyles := []model.Style{
			{Name: "Modern", Slug: "modern", Description: "Clean lines, neutral palette, uncluttered surfaces"},
			{Name: "Scandinavian", Slug: "scandinavian", Description: "Light wood, soft textiles, functional simplicity"},
			{Name: "Industrial", Slug: "industrial", Description: "Raw brick, exposed metal, utilitarian fixtures"},
			{Name: "Boho", Slug: "boho", Description: "Layered patterns, plants, eclectic collected pieces"},
			{Name: "Classic", Slug: "classic", Description: "Symmetry, mouldings, timeless elegant furniture"},
			{Name: "Minimalist", Slug: "minimalist", Description: "Essential forms only, monochrome, hidden storage"},
		}
		for _, s := range defaultStyles {
			db.Create(&s)
		}
	}

	var detailCount int64
	db.Model(&model.Detail{}).Count(&detailCount)
	if detailCount == 0 {
		defaultDetails := []model.Detail{
			{Name: "Brass Handles", Slug: "brass-handles", Category: "fixture"},
			{Name: "Oak Flooring", Slug: "oak-flooring", Category: "material"},
			{Name: "Marble Countertop", Slug: "marble-countertop", Category: "material"},
			{Name: "Pendant Lighting", Slug: "pendant-lighting", Category: "fixture"},
			{Name: "Velvet Upholstery", Slug: "velvet-upholstery", Category: "material"},
			{Name: "Matte Black Fixtures", Slug: "matte-black-fixtures", Category: "fixture"},
			{Name: "Terracotta Tones", Slug: "terracotta-tones", Category: "color"},
			{Name: "Rattan Accents", Slug: "rattan-accents", Category: "material"},
		}
		for _, d := range defaultDetails {
			db.Create(&d)
		}
	}
}

// seedSettings writes the default persisted configuration records.
func seedSettings(db *gorm.DB) {
	defaults := map[string]string{
		"quiz.enabled":              "true",
		"leads.notification_emails": "true",
		"reports.retention_days":    "90",
		"partner.self_registration": "true",
		"quiz.playoff_lead_margin":  "2",
	}
	for key, value := range defaults {
		var count int64
		db.Model(&model.Setting{}).Where("`key` = ?", key).Count(&count)
		if count == 0 {
			db.Create(&model.Setting{Key: key, Value: value})
		}
	}
}
