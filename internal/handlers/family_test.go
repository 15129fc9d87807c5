package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/HongNam0207/taskhome-api/internal/constants"
	"github.com/HongNam0207/taskhome-api/internal/database"
	"github.com/HongNam0207/taskhome-api/internal/dto"
	"github.com/HongNam0207/taskhome-api/internal/middleware"
	"github.com/HongNam0207/taskhome-api/internal/models"
	"github.com/HongNam0207/taskhome-api/internal/repository"
	"github.com/HongNam0207/taskhome-api/internal/services"
)

// FamilyHandlerTestSuite defines the test suite for FamilyHandler
type FamilyHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *FamilyHandler
}

// SetupTest runs before each test
func (suite *FamilyHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Family{},
		&models.FamilyMember{},
		&models.Project{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Comment{},
	)
	suite.Require().NoError(err)
	suite.Require().NoError(database.SeedRoles(suite.db))

	database.SetDB(suite.db)

	familyRepo := repository.NewFamilyRepository(suite.db)
	suite.handler = NewFamilyHandler(services.NewFamilyService(familyRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *FamilyHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *FamilyHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		FullName:     "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
		RoleID:       1,
		IsActive:     true,
	}
	suite.db.Create(user)
	return user
}

// createAuthContext builds a request context with a resolved caller.
func (suite *FamilyHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyCaller, middleware.Caller{UserID: userID, Role: models.RoleMember})

	return c, w
}

func (suite *FamilyHandlerTestSuite) createFamilyVia(userID uint64, name string) dto.FamilyDTO {
	body, _ := json.Marshal(map[string]string{"name": name})
	c, w := suite.createAuthContext("POST", "/api/families", body, userID)
	suite.handler.CreateFamily(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var response dto.FamilyDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

// TestCreateFamily_CodeSequence verifies join codes follow the FAM%03d
// sequence and the creator becomes the owner member.
func (suite *FamilyHandlerTestSuite) TestCreateFamily_CodeSequence() {
	user := suite.createTestUser("owner@example.com")

	first := suite.createFamilyVia(user.ID, "Nguyen Household")
	second := suite.createFamilyVia(user.ID, "Weekend House")

	assert.Equal(suite.T(), "FAM001", first.Code)
	assert.Equal(suite.T(), "FAM002", second.Code)

	var member models.FamilyMember
	err := suite.db.Where("family_id = ? AND user_id = ?", first.ID, user.ID).First(&member).Error
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RelationshipOwner, member.Relationship)
}

// TestCreateFamily_CodeNotReusedAfterDelete verifies deleted families do
// not free their codes for reuse.
func (suite *FamilyHandlerTestSuite) TestCreateFamily_CodeNotReusedAfterDelete() {
	user := suite.createTestUser("owner@example.com")

	first := suite.createFamilyVia(user.ID, "Nguyen Household")
	assert.Equal(suite.T(), "FAM001", first.Code)

	c, w := suite.createAuthContext("DELETE", "/api/families/1", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.DeleteFamily(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	second := suite.createFamilyVia(user.ID, "New Household")
	assert.Equal(suite.T(), "FAM002", second.Code)
}

func (suite *FamilyHandlerTestSuite) TestCreateFamily_EmptyName() {
	user := suite.createTestUser("owner@example.com")

	body, _ := json.Marshal(map[string]string{"name": "   "})
	c, w := suite.createAuthContext("POST", "/api/families", body, user.ID)
	suite.handler.CreateFamily(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *FamilyHandlerTestSuite) TestJoinFamily_Success() {
	owner := suite.createTestUser("owner@example.com")
	joiner := suite.createTestUser("joiner@example.com")
	family := suite.createFamilyVia(owner.ID, "Nguyen Household")

	body, _ := json.Marshal(map[string]string{"code": family.Code})
	c, w := suite.createAuthContext("POST", "/api/families/join", body, joiner.ID)
	suite.handler.JoinFamily(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.JoinFamilyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), family.ID, response.Family.ID)
	assert.Equal(suite.T(), models.RelationshipMember, response.Membership.Relationship)
}

func (suite *FamilyHandlerTestSuite) TestJoinFamily_UnknownCode() {
	joiner := suite.createTestUser("joiner@example.com")

	body, _ := json.Marshal(map[string]string{"code": "FAM999"})
	c, w := suite.createAuthContext("POST", "/api/families/join", body, joiner.ID)
	suite.handler.JoinFamily(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *FamilyHandlerTestSuite) TestJoinFamily_AlreadyMember() {
	owner := suite.createTestUser("owner@example.com")
	family := suite.createFamilyVia(owner.ID, "Nguyen Household")

	body, _ := json.Marshal(map[string]string{"code": family.Code})
	c, w := suite.createAuthContext("POST", "/api/families/join", body, owner.ID)
	suite.handler.JoinFamily(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *FamilyHandlerTestSuite) TestUpdateFamily_NotCreator() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	suite.createFamilyVia(owner.ID, "Nguyen Household")

	body, _ := json.Marshal(map[string]string{"name": "Hijacked"})
	c, w := suite.createAuthContext("PUT", "/api/families/1", body, other.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateFamily(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestUpdateFamily_EmptyFieldsKeepCurrent verifies blank fields in the
// payload leave stored values untouched.
func (suite *FamilyHandlerTestSuite) TestUpdateFamily_EmptyFieldsKeepCurrent() {
	owner := suite.createTestUser("owner@example.com")
	family := suite.createFamilyVia(owner.ID, "Nguyen Household")

	body, _ := json.Marshal(map[string]string{"name": "", "address": "12 Tran Phu"})
	c, w := suite.createAuthContext("PUT", "/api/families/1", body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateFamily(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.FamilyDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), family.Name, response.Name)
	assert.Equal(suite.T(), "12 Tran Phu", response.Address)
}

// TestDeleteFamily_Cascades verifies tasks, memberships, assignments and
// comments scoped to the family go with it.
func (suite *FamilyHandlerTestSuite) TestDeleteFamily_Cascades() {
	owner := suite.createTestUser("owner@example.com")
	family := suite.createFamilyVia(owner.ID, "Nguyen Household")

	task := &models.Task{FamilyID: family.ID, Title: "Wash dishes", Status: models.TaskStatusPending, CreatedBy: owner.ID}
	suite.db.Create(task)
	suite.db.Create(&models.TaskAssignment{TaskID: task.ID, UserID: owner.ID})
	suite.db.Create(&models.Comment{TaskID: task.ID, UserID: owner.ID, Content: "tonight please"})

	c, w := suite.createAuthContext("DELETE", "/api/families/1", nil, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.DeleteFamily(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var memberCount, assignmentCount, commentCount int64
	suite.db.Model(&models.FamilyMember{}).Where("family_id = ?", family.ID).Count(&memberCount)
	suite.db.Model(&models.TaskAssignment{}).Where("task_id = ?", task.ID).Count(&assignmentCount)
	suite.db.Model(&models.Comment{}).Where("task_id = ?", task.ID).Count(&commentCount)
	assert.Zero(suite.T(), memberCount)
	assert.Zero(suite.T(), assignmentCount)
	assert.Zero(suite.T(), commentCount)

	var taskCount int64
	suite.db.Model(&models.Task{}).Where("family_id = ?", family.ID).Count(&taskCount)
	assert.Zero(suite.T(), taskCount)
}

func (suite *FamilyHandlerTestSuite) TestDeleteFamily_NotCreator() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	suite.createFamilyVia(owner.ID, "Nguyen Household")

	c, w := suite.createAuthContext("DELETE", "/api/families/1", nil, other.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.DeleteFamily(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestListMyFamilies_CreatedAndJoined verifies the union of created and
// joined families comes back without duplicates.
func (suite *FamilyHandlerTestSuite) TestListMyFamilies_CreatedAndJoined() {
	owner := suite.createTestUser("owner@example.com")
	joiner := suite.createTestUser("joiner@example.com")
	created := suite.createFamilyVia(joiner.ID, "Joiner Household")
	other := suite.createFamilyVia(owner.ID, "Nguyen Household")

	body, _ := json.Marshal(map[string]string{"code": other.Code})
	c, w := suite.createAuthContext("POST", "/api/families/join", body, joiner.ID)
	suite.handler.JoinFamily(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	c, w = suite.createAuthContext("GET", "/api/families/mine", nil, joiner.ID)
	suite.handler.ListMyFamilies(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response struct {
		Families []dto.FamilyDTO `json:"families"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Families, 2)

	ids := []uint64{response.Families[0].ID, response.Families[1].ID}
	assert.Contains(suite.T(), ids, created.ID)
	assert.Contains(suite.T(), ids, other.ID)
}

func TestFamilyHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(FamilyHandlerTestSuite))
}
