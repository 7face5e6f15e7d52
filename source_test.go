package fluentsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertAndQueryRoundTrip(t *testing.T) {
	source := SetupTestDatabase(
		t,
		`CREATE TABLE "bunnies" ("Name" TEXT, "EarLength" INTEGER, "IsMortal" BOOLEAN);`,
	)

	builder, err := NewStatementBuilder(source)
	assert.NoError(t, err)
	defer builder.Close()

	affected, err := builder.
		Prepare(`INSERT INTO "bunnies" VALUES(?, ?, ?)`).
		WithString("ollie").
		WithInt64(15).
		WithBool(true).
		Update()
	assert.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	rows, err := builder.
		ContinueWith().
		Prepare(`SELECT "Name", "EarLength" FROM "bunnies" WHERE "IsMortal" = ?`).
		WithBool(true).
		ResultSet()
	assert.NoError(t, err)
	defer rows.Close()

	assert.True(t, rows.Next())

	var (
		name      string
		earLength int64
	)
	assert.NoError(t, rows.Scan(&name, &earLength))
	assert.Equal(t, "ollie", name)
	assert.EqualValues(t, 15, earLength)

	assert.False(t, rows.Next())
	assert.NoError(t, rows.Err())
}

func TestSequentialStatementsOnOneConnection(t *testing.T) {
	source := SetupTestDatabase(
		t,
		`CREATE TABLE "donuts" ("Filling" TEXT);`,
	)

	builder, err := NewStatementBuilder(source)
	assert.NoError(t, err)
	defer builder.Close()

	for _, filling := range []string{"jam", "custard", "none"} {
		_, err = builder.
			Prepare(`INSERT INTO "donuts" VALUES(?)`).
			WithString(filling).
			Update()
		assert.NoError(t, err)
		builder.ContinueWith()
	}

	rows, err := builder.
		Prepare(`SELECT COUNT(*) FROM "donuts"`).
		ResultSet()
	assert.NoError(t, err)
	defer rows.Close()

	assert.True(t, rows.Next())
	var count int
	assert.NoError(t, rows.Scan(&count))
	assert.Equal(t, 3, count)
}

func TestTransactionRollbackDiscardsMutation(t *testing.T) {
	source := SetupTestDatabase(
		t,
		`CREATE TABLE "bunnies" ("Name" TEXT);`,
		`INSERT INTO "bunnies" VALUES('ollie');`,
	)

	builder, err := NewStatementBuilder(source)
	assert.NoError(t, err)
	defer builder.Close()

	_, err = builder.
		WithTransaction().
		Prepare(`DELETE FROM "bunnies"`).
		Update()
	assert.NoError(t, err)

	builder.Rollback()
	assert.NoError(t, builder.Err())

	rows, err := builder.
		ContinueWith().
		Prepare(`SELECT COUNT(*) FROM "bunnies"`).
		ResultSet()
	assert.NoError(t, err)
	defer rows.Close()

	assert.True(t, rows.Next())
	var count int
	assert.NoError(t, rows.Scan(&count))
	assert.Equal(t, 1, count)
}

func TestTransactionCommitKeepsMutation(t *testing.T) {
	source := SetupTestDatabase(
		t,
		`CREATE TABLE "bunnies" ("Name" TEXT);`,
	)

	builder, err := NewStatementBuilder(source)
	assert.NoError(t, err)

	_, err = builder.
		WithTransaction().
		Prepare(`INSERT INTO "bunnies" VALUES(?)`).
		WithString("king ollie").
		Update()
	assert.NoError(t, err)

	builder.Commit().WithoutTransaction()
	assert.NoError(t, builder.Err())
	assert.NoError(t, builder.Close())

	// A fresh connection sees the committed row.
	other, err := NewStatementBuilder(source)
	assert.NoError(t, err)
	defer other.Close()

	rows, err := other.
		Prepare(`SELECT "Name" FROM "bunnies"`).
		ResultSet()
	assert.NoError(t, err)
	defer rows.Close()

	assert.True(t, rows.Next())
	var name string
	assert.NoError(t, rows.Scan(&name))
	assert.Equal(t, "king ollie", name)
}

func TestReExecuteBoundStatementAcrossCommit(t *testing.T) {
	source := SetupTestDatabase(
		t,
		`CREATE TABLE "donuts" ("Filling" TEXT);`,
	)

	builder, err := NewStatementBuilder(source)
	assert.NoError(t, err)
	defer builder.Close()

	builder.
		WithTransaction().
		Prepare(`INSERT INTO "donuts" VALUES(?)`).
		WithString("jam")

	_, err = builder.Update()
	assert.NoError(t, err)

	// Committing ends the transaction but not the bound statement; it can
	// run again in the next one.
	builder.Commit()
	assert.NoError(t, builder.Err())

	affected, err := builder.Update()
	assert.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	builder.Commit().WithoutTransaction()
	assert.NoError(t, builder.Err())

	rows, err := builder.
		ContinueWith().
		Prepare(`SELECT COUNT(*) FROM "donuts"`).
		ResultSet()
	assert.NoError(t, err)
	defer rows.Close()

	assert.True(t, rows.Next())
	var count int
	assert.NoError(t, rows.Scan(&count))
	assert.Equal(t, 2, count)
}

func TestReExecuteBoundStatement(t *testing.T) {
	source := SetupTestDatabase(
		t,
		`CREATE TABLE "donuts" ("Filling" TEXT);`,
	)

	builder, err := NewStatementBuilder(source)
	assert.NoError(t, err)
	defer builder.Close()

	builder.
		Prepare(`INSERT INTO "donuts" VALUES(?)`).
		WithString("jam")

	// The statement stays bound after execution, so it can run again.
	for i := 0; i < 2; i++ {
		affected, err := builder.Update()
		assert.NoError(t, err)
		assert.EqualValues(t, 1, affected)
	}

	rows, err := builder.
		ContinueWith().
		Prepare(`SELECT COUNT(*) FROM "donuts" WHERE "Filling" = ?`).
		WithString("jam").
		ResultSet()
	assert.NoError(t, err)
	defer rows.Close()

	assert.True(t, rows.Next())
	var count int
	assert.NoError(t, rows.Scan(&count))
	assert.Equal(t, 2, count)
}
