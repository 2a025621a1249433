package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_account_key"}

	assert.True(t, IsUniqueViolation(uniqueErr))
	// GORM 往往会包一层
	assert.True(t, IsUniqueViolation(fmt.Errorf("create failed: %w", uniqueErr)))

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsForeignKeyViolation(t *testing.T) {
	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "daily_reports_store_id_fkey"}

	assert.True(t, IsForeignKeyViolation(fkErr))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("delete failed: %w", fkErr)))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(nil))
}
