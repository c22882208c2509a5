package postgres_test

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/docstore"
	"github.com/xy-planning-network/roadtrip/docstore/docstoretest"
	"github.com/xy-planning-network/roadtrip/postgres"
	"github.com/xy-planning-network/roadtrip/ranger"
	"gorm.io/gorm"
)

type DocumentStoreTestSuite struct {
	suite.Suite

	db    *gorm.DB
	store *postgres.DocumentStore
}

func TestRunSuite(t *testing.T) {
	suite.Run(t, new(DocumentStoreTestSuite))
}

func (suite *DocumentStoreTestSuite) SetupSuite() {
	err := godotenv.Load("../.env")
	var pe *fs.PathError
	if err != nil && !errors.As(err, &pe) {
		suite.Require().FailNow(err.Error())
	}

	cfg := ranger.NewPostgresConfig(roadtrip.Testing)
	if !cfg.Configured() {
		suite.T().Skip("no test database configured")
	}

	suite.db, err = postgres.Connect(cfg, postgres.Migrations, roadtrip.Testing)
	suite.Require().Nil(err)

	suite.store = postgres.NewDocumentStore(suite.db)
}

func (suite *DocumentStoreTestSuite) TearDownTest() {
	suite.Require().Nil(postgres.WipeDB(suite.db, "public"))
}

func (suite *DocumentStoreTestSuite) TestContract() {
	docstoretest.Run(suite.T(), func(t *testing.T) (docstore.Store, docstoretest.CleanupFunc) {
		t.Helper()
		return suite.store, func() { require.Nil(t, postgres.WipeDB(suite.db, "public")) }
	})
}

func (suite *DocumentStoreTestSuite) TestMigrateUpIdempotent() {
	// Act
	err := postgres.MigrateUp(suite.db, "public", postgres.Migrations)

	// Assert
	suite.Require().Nil(err)

	var n int64
	suite.Require().Nil(suite.db.Table("migrations").Count(&n).Error)
	suite.Require().EqualValues(len(postgres.Migrations), n)
}

func (suite *DocumentStoreTestSuite) TestRowIDs() {
	// Arrange
	ctx := context.Background()
	suite.Require().Nil(suite.store.Insert(ctx, roadtrip.TripsCollection,
		roadtrip.Document{"tripId": "t1"},
		roadtrip.Document{"tripId": "t2", "_id": "custom"},
	))

	// Act
	found, err := suite.store.Find(ctx, roadtrip.TripsCollection, nil)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Len(found, 2)
	suite.Require().Equal("1", found[0][roadtrip.IDField])
	suite.Require().Equal("custom", found[1][roadtrip.IDField])
}

func (suite *DocumentStoreTestSuite) TestBadFilterKey() {
	// Act
	_, err := suite.store.Find(context.Background(), roadtrip.TripsCollection, roadtrip.Filter{`"; DROP`: "x"})

	// Assert
	suite.Require().ErrorIs(err, roadtrip.ErrNotValid)
}

func TestConnectBadConfig(t *testing.T) {
	_, err := postgres.Connect(&postgres.CxnConfig{}, postgres.Migrations, roadtrip.Testing)
	require.ErrorIs(t, err, roadtrip.ErrBadConfig)
}
