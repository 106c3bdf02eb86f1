package main

import (
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kaypmayeTUL/checkout-data-subject-analysis/config"
	"github.com/kaypmayeTUL/checkout-data-subject-analysis/domain/models"
)

// AnalysisRun is one row of the optional run-history log. Only run
// metadata is stored; uploaded data never leaves the process.
type AnalysisRun struct {
	ID          uint `gorm:"primaryKey"`
	ChatID      int64
	ReportKind  string
	Metric      string
	RecordCount int
	TermCount   int
	TotalWeight float64
	CreatedAt   time.Time
}

// logAnalysisRun appends one run to the history database. A missing DB_DSN
// disables the log entirely; failures are logged and swallowed, the run
// itself already succeeded.
func logAnalysisRun(chatID int64, result *models.AnalysisResult) {
	cfg := config.GetConfig()
	if cfg.DbDsn == "" {
		return
	}

	db, err := gorm.Open(mysql.Open(cfg.DbDsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		log.Printf("run log: cannot connect to database: %v", err)
		return
	}
	if err := db.AutoMigrate(&AnalysisRun{}); err != nil {
		log.Printf("run log: migrate failed: %v", err)
		return
	}

	run := AnalysisRun{
		ChatID:      chatID,
		ReportKind:  string(result.Kind),
		Metric:      result.MetricLabel,
		RecordCount: result.FilteredCount,
		TermCount:   len(result.Table),
		TotalWeight: result.TotalWeight,
	}
	if err := db.Create(&run).Error; err != nil {
		log.Printf("run log: insert failed: %v", err)
	}
}
