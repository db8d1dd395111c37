package accounts

import (
	"database/sql"

	"github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// RegisterModels registers the package models with the persistence client.
// Call it before running migrations or fixtures.
func RegisterModels() {
	persistence.RegisterModel((*Account)(nil))
	persistence.RegisterModel((*RoleRecord)(nil))
}

// OpenSQLite opens a bun handle over the sqlite shim driver. Useful for
// embedded and test deployments; production wiring can bring any dialect
// bun supports.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}
