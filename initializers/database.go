package initializers

import (
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/GraceHarbor/store"
)

var DB *goqu.Database

func ConnectDB() {
	db, err := sql.Open("postgres", Cfg.DBURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	err = db.Ping()
	if err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	DB = goqu.New("postgres", db)
}

// Store wraps the current DB as a record store.
func Store() store.RecordStore {
	return store.New(DB)
}
