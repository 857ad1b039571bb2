package sqlite

import "time"

type gameRow struct {
	ID           string `gorm:"primaryKey"`
	Position     int64  `gorm:"index;not null"`
	Document     string `gorm:"not null"`
	TeamName     string
	OpponentName string
	GameDate     string
	OffenseCount int
	UpdatedAt    time.Time
}

func (gameRow) TableName() string { return "games" }

type teamRow struct {
	ID        string `gorm:"primaryKey"`
	Position  int    `gorm:"index;not null"`
	Name      string `gorm:"index"`
	Document  string `gorm:"not null"`
	UpdatedAt time.Time
}

func (teamRow) TableName() string { return "teams" }
