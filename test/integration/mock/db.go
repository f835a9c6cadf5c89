// Package mock provides test doubles for the integration test suite.
package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wallet-ledger/backend/internal/integration/persistence/model"
)

var once sync.Once
var db *Db

// Db wraps a shared in-memory SQLite connection for the whole suite.
// Scenarios call Reset between runs instead of reopening the database.
type Db struct {
	DbConn *gorm.DB
	models []any
}

// NewDb opens the shared in-memory database and migrates the schema. The
// connection is a process-wide singleton; repeated calls return the same Db.
func NewDb() *Db {
	once.Do(func() {
		db = open()
	})
	return db
}

func open() *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// SQLite allows a single writer; a second connection would hit
	// SQLITE_BUSY under the suite's request/assert interleaving.
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: false,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	d := &Db{
		DbConn: dbConn,
		models: []any{
			&model.WalletModel{},
			&model.CategoryModel{},
			&model.SubcategoryModel{},
			&model.TransactionModel{},
			&model.WalletSnapshotModel{},
			&model.LinkedEntryModel{},
			&model.LinkedTransactionModel{},
		},
	}

	if err := dbConn.AutoMigrate(d.models...); err != nil {
		panic(fmt.Sprintf("failed to migrate test database. err: %s", err.Error()))
	}
	for _, m := range d.models {
		if !dbConn.Migrator().HasTable(m) {
			panic(fmt.Sprintf("table for model %T was not created", m))
		}
	}

	return d
}

// Reset deletes all rows so the next scenario starts from a clean ledger.
func (d *Db) Reset() error {
	for _, m := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
		if err != nil {
			return err
		}
	}
	return nil
}
