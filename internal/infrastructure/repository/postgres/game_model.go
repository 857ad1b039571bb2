package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type gameTableModel struct {
	ID           string         `db:"id"`
	Document     string         `db:"document"`
	TeamName     string         `db:"team_name"`
	OpponentName string         `db:"opponent_name"`
	GameDate     sql.NullString `db:"game_date"`
	OffenseCount int            `db:"offense_count"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type teamTableModel struct {
	ID          string         `db:"id"`
	Position    int            `db:"position"`
	Name        string         `db:"name"`
	PlayerNames pq.StringArray `db:"player_names"`
	Document    string         `db:"document"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
