// Package db implements arbscan.Sink over GORM/MySQL, adapted from the
// asset-snapshot recorder this module started from.
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"arbscan"
)

// OpportunityRecord is the database model for a published arbscan.Opportunity.
// Decimal amounts are stored as strings, the same varchar(78)-as-big.Int
// convention the asset-snapshot table used, since MySQL has no native
// arbitrary-precision decimal wide enough for 60-significant-digit
// token amounts.
type OpportunityRecord struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Timestamp   time.Time `gorm:"column:ts;index:idx_ts,sort:desc;not null"`
	ChainID     int64     `gorm:"not null"`
	BaseSymbol  string    `gorm:"type:varchar(32);not null"`
	QuoteSymbol string    `gorm:"type:varchar(32);not null"`
	Size        string    `gorm:"type:varchar(78);not null"`
	DexA        string    `gorm:"type:varchar(64);not null"`
	DexB        string    `gorm:"type:varchar(64);not null"`
	GrossBps    float64   `gorm:"not null"`
	NetUSD      float64   `gorm:"not null"`
	GasUSD      float64   `gorm:"not null"`
	Details     string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (OpportunityRecord) TableName() string {
	return "opportunities"
}

// MySQLSink implements arbscan.Sink using GORM and MySQL.
type MySQLSink struct {
	db *gorm.DB
}

// NewMySQLSink opens dsn and migrates the opportunities table.
// dsn format: "user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local"
func NewMySQLSink(dsn string) (*MySQLSink, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	if err := db.AutoMigrate(&OpportunityRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &MySQLSink{db: db}, nil
}

// NewMySQLSinkWithDB wraps an existing GORM DB, migrating the
// opportunities table, for callers that open their own connection.
func NewMySQLSinkWithDB(db *gorm.DB) (*MySQLSink, error) {
	if err := db.AutoMigrate(&OpportunityRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &MySQLSink{db: db}, nil
}

// Write implements arbscan.Sink. Every opportunity from one scan is
// written inside a single transaction, so a mid-flight cancellation
// never leaves a partial batch committed.
func (s *MySQLSink) Write(ctx context.Context, opportunities []arbscan.Opportunity) error {
	if len(opportunities) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range opportunities {
			record, err := toRecord(o)
			if err != nil {
				return fmt.Errorf("encode opportunity: %w", err)
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("insert opportunity: %w", err)
			}
		}
		return nil
	})
}

func toRecord(o arbscan.Opportunity) (OpportunityRecord, error) {
	details, err := json.Marshal(o.Details)
	if err != nil {
		return OpportunityRecord{}, err
	}
	return OpportunityRecord{
		ChainID:     o.ChainID,
		BaseSymbol:  o.Pair.Base.Symbol,
		QuoteSymbol: o.Pair.Quote.Symbol,
		Size:        o.Size.String(),
		DexA:        o.Route.LegA,
		DexB:        o.Route.LegB,
		GrossBps:    o.GrossBps,
		NetUSD:      o.NetUSD,
		GasUSD:      o.GasUSD,
		Details:     string(details),
	}, nil
}

// Close closes the underlying database connection.
func (s *MySQLSink) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying DB: %w", err)
	}
	return sqlDB.Close()
}
