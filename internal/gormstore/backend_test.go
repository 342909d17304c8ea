package gormstore

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mesh-intelligence/propai/internal/storetest"
	"github.com/mesh-intelligence/propai/pkg/types"
)

// TestConformance needs a disposable MySQL database named by PROPAI_MYSQL_DSN.
// Every subtest starts from empty tables.
func TestConformance(t *testing.T) {
	dsn := os.Getenv("PROPAI_MYSQL_DSN")
	if dsn == "" {
		t.Skip("PROPAI_MYSQL_DSN not set")
	}
	storetest.Run(t, func(t *testing.T) types.Service {
		b := NewBackend()
		require.NoError(t, b.Attach(types.Config{Backend: types.BackendMySQL, DSN: dsn}))
		for _, model := range []any{&propertyRow{}, &userRow{}, &messageRow{}, &collectionRow{}} {
			require.NoError(t, b.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error)
		}
		t.Cleanup(func() { b.Detach() })
		return b
	})
}

func TestAttachRequiresDSN(t *testing.T) {
	err := NewBackend().Attach(types.Config{Backend: types.BackendMySQL})
	assert.ErrorIs(t, err, types.ErrDSNEmpty)
}

// unreachableDSN points at a port nothing listens on.
const unreachableDSN = "propai:propai@tcp(127.0.0.1:1)/propai?timeout=1s"

func TestAttachUnreachableStaysDetached(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: types.BackendMySQL, DSN: unreachableDSN})
	require.Error(t, err)
	assert.False(t, b.attached)
	assert.Nil(t, b.db)
}

func TestAttachDBClosesPoolOnFailure(t *testing.T) {
	db, err := gorm.Open(mysql.New(mysql.Config{DSN: unreachableDSN, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	b := NewBackend()
	err = b.AttachDB(db, false)
	require.ErrorContains(t, err, "pinging database")
	assert.False(t, b.attached)
	assert.EqualError(t, sqlDB.Ping(), "sql: database is closed")
}

func TestRowConversions(t *testing.T) {
	p := storetest.NewProperty("Loft")
	p.ID, p.CreatedAt, p.Featured = "p1", 42, true
	assert.Equal(t, p, newPropertyRow(p).entity())

	u := types.User{ID: "u1", Email: "a@b.c", Name: "A", Role: types.RoleSeller, Avatar: types.Ptr("x"), CreatedAt: 7}
	row := newUserRow(u)
	*row.Avatar = "changed"
	assert.Equal(t, "x", *u.Avatar, "rows do not alias entity pointers")

	c := types.Collection{ID: "c1", UserID: "u1", Name: "n"}
	got := newCollectionRow(c).entity()
	assert.NotNil(t, got.PropertyIDs)
	assert.Empty(t, got.PropertyIDs)

	m := types.Message{ID: "m1", UserID: "u1", Content: "hi", IsAI: true, Timestamp: 9}
	assert.Equal(t, m, newMessageRow(m).entity())
}
