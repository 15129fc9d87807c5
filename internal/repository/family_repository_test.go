package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/HongNam0207/taskhome-api/internal/models"
)

func setupFamilyRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Family{},
		&models.FamilyMember{},
		&models.Project{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Comment{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", RoleID: 1, IsActive: true}
	require.NoError(t, db.Create(user).Error)
	return user
}

// TestCreateWithOwner_SequentialCodes verifies codes come from max(id)+1
// and the owner membership lands in the same transaction.
func TestCreateWithOwner_SequentialCodes(t *testing.T) {
	db := setupFamilyRepoDB(t)
	repo := NewFamilyRepository(db)
	user := seedUser(t, db, "owner@example.com")

	for i, want := range []string{"FAM001", "FAM002", "FAM003"} {
		family := &models.Family{Name: "Household", CreatedBy: user.ID}
		owner := &models.FamilyMember{UserID: user.ID, Relationship: models.RelationshipOwner}
		require.NoError(t, repo.CreateWithOwner(family, owner))
		require.Equal(t, want, family.Code, "creation %d", i+1)
		require.Equal(t, family.ID, owner.FamilyID)
	}
}

// TestCreateWithOwner_CodesSurviveSoftDelete verifies a soft-deleted
// family still occupies its slot in the sequence.
func TestCreateWithOwner_CodesSurviveSoftDelete(t *testing.T) {
	db := setupFamilyRepoDB(t)
	repo := NewFamilyRepository(db)
	user := seedUser(t, db, "owner@example.com")

	first := &models.Family{Name: "Household", CreatedBy: user.ID}
	require.NoError(t, repo.CreateWithOwner(first, &models.FamilyMember{UserID: user.ID, Relationship: models.RelationshipOwner}))
	require.NoError(t, repo.Delete(first.ID))

	second := &models.Family{Name: "Household Two", CreatedBy: user.ID}
	require.NoError(t, repo.CreateWithOwner(second, &models.FamilyMember{UserID: user.ID, Relationship: models.RelationshipOwner}))
	require.Equal(t, "FAM002", second.Code)
}

func TestFilterMemberIDs(t *testing.T) {
	db := setupFamilyRepoDB(t)
	repo := NewFamilyRepository(db)
	owner := seedUser(t, db, "owner@example.com")
	insider := seedUser(t, db, "insider@example.com")
	outsider := seedUser(t, db, "outsider@example.com")

	family := &models.Family{Name: "Household", CreatedBy: owner.ID}
	require.NoError(t, repo.CreateWithOwner(family, &models.FamilyMember{UserID: owner.ID, Relationship: models.RelationshipOwner}))
	require.NoError(t, repo.AddMember(&models.FamilyMember{FamilyID: family.ID, UserID: insider.ID, Relationship: "brother"}))

	kept, err := repo.FilterMemberIDs(family.ID, []uint64{insider.ID, outsider.ID})
	require.NoError(t, err)
	require.Equal(t, []uint64{insider.ID}, kept)

	kept, err = repo.FilterMemberIDs(family.ID, nil)
	require.NoError(t, err)
	require.Empty(t, kept)
}

// TestFindByCode_SQL pins the query shape against a mocked connection.
func TestFindByCode_SQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	repo := NewFamilyRepository(db)

	rows := sqlmock.NewRows([]string{"id", "code", "name", "created_by"}).
		AddRow(1, "FAM001", "Nguyen Household", 1)
	mock.ExpectQuery(`SELECT \* FROM "families" WHERE code = .+`).WillReturnRows(rows)

	family, err := repo.FindByCode("FAM001")
	require.NoError(t, err)
	require.Equal(t, "FAM001", family.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByCode_NotFound(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	repo := NewFamilyRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "families" WHERE code = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "created_by"}))

	_, err = repo.FindByCode("FAM999")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
