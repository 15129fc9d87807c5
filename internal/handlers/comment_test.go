package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
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

type commentTestEnv struct {
	db      *gorm.DB
	handler *CommentHandler
	member  *models.User
	outside *models.User
	task    *models.Task
}

func setupCommentTestEnv(t *testing.T) commentTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Family{},
		&models.FamilyMember{},
		&models.Task{},
		&models.Comment{},
	)
	require.NoError(t, err)
	require.NoError(t, database.SeedRoles(db))

	database.SetDB(db)

	commentRepo := repository.NewCommentRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	handler := NewCommentHandler(services.NewCommentService(commentRepo, taskRepo, familyRepo))

	member := &models.User{Email: "member@example.com", PasswordHash: "x", RoleID: 1, IsActive: true}
	require.NoError(t, db.Create(member).Error)
	outside := &models.User{Email: "outside@example.com", PasswordHash: "x", RoleID: 1, IsActive: true}
	require.NoError(t, db.Create(outside).Error)

	family := &models.Family{Code: "FAM001", Name: "Nguyen", CreatedBy: member.ID}
	require.NoError(t, db.Create(family).Error)
	require.NoError(t, db.Create(&models.FamilyMember{
		FamilyID:     family.ID,
		UserID:       member.ID,
		Relationship: models.RelationshipOwner,
	}).Error)

	task := &models.Task{FamilyID: family.ID, Title: "Wash dishes", Status: models.TaskStatusPending, CreatedBy: member.ID}
	require.NoError(t, db.Create(task).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	gin.SetMode(gin.TestMode)

	return commentTestEnv{db: db, handler: handler, member: member, outside: outside, task: task}
}

func commentContext(method, url string, body []byte, userID uint64, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
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
	c.Params = params
	c.Set(constants.ContextKeyCaller, middleware.Caller{UserID: userID, Role: models.RoleMember})

	return c, w
}

func TestCommentHandler_CreateAndReply(t *testing.T) {
	env := setupCommentTestEnv(t)
	taskParam := gin.Params{{Key: "id", Value: strconv.FormatUint(env.task.ID, 10)}}

	body, _ := json.Marshal(map[string]string{"content": "tonight please"})
	c, w := commentContext("POST", "/api/tasks/1/comments", body, env.member.ID, taskParam)
	env.handler.CreateComment(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var parent dto.CommentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parent))

	body, _ = json.Marshal(map[string]interface{}{
		"content":           "on it",
		"parent_comment_id": parent.ID,
	})
	c, w = commentContext("POST", "/api/tasks/1/comments", body, env.member.ID, taskParam)
	env.handler.CreateComment(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var reply dto.CommentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	require.NotNil(t, reply.ParentCommentID)
	require.Equal(t, parent.ID, *reply.ParentCommentID)
}

func TestCommentHandler_Create_NotFamilyMember(t *testing.T) {
	env := setupCommentTestEnv(t)
	taskParam := gin.Params{{Key: "id", Value: strconv.FormatUint(env.task.ID, 10)}}

	body, _ := json.Marshal(map[string]string{"content": "let me in"})
	c, w := commentContext("POST", "/api/tasks/1/comments", body, env.outside.ID, taskParam)
	env.handler.CreateComment(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCommentHandler_Create_ParentOnOtherTask(t *testing.T) {
	env := setupCommentTestEnv(t)

	other := &models.Task{FamilyID: env.task.FamilyID, Title: "Mow the lawn", Status: models.TaskStatusPending, CreatedBy: env.member.ID}
	require.NoError(t, env.db.Create(other).Error)
	foreign := &models.Comment{TaskID: other.ID, UserID: env.member.ID, Content: "elsewhere"}
	require.NoError(t, env.db.Create(foreign).Error)

	taskParam := gin.Params{{Key: "id", Value: strconv.FormatUint(env.task.ID, 10)}}
	body, _ := json.Marshal(map[string]interface{}{
		"content":           "threading across tasks",
		"parent_comment_id": foreign.ID,
	})
	c, w := commentContext("POST", "/api/tasks/1/comments", body, env.member.ID, taskParam)
	env.handler.CreateComment(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommentHandler_Delete_AuthorOnly(t *testing.T) {
	env := setupCommentTestEnv(t)

	second := &models.User{Email: "second@example.com", PasswordHash: "x", RoleID: 1, IsActive: true}
	require.NoError(t, env.db.Create(second).Error)
	require.NoError(t, env.db.Create(&models.FamilyMember{
		FamilyID:     env.task.FamilyID,
		UserID:       second.ID,
		Relationship: "brother",
	}).Error)

	comment := &models.Comment{TaskID: env.task.ID, UserID: env.member.ID, Content: "mine"}
	require.NoError(t, env.db.Create(comment).Error)

	params := gin.Params{{Key: "id", Value: strconv.FormatUint(comment.ID, 10)}}

	c, w := commentContext("DELETE", "/api/comments/1", nil, second.ID, params)
	env.handler.DeleteComment(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	c, w = commentContext("DELETE", "/api/comments/1", nil, env.member.ID, params)
	env.handler.DeleteComment(c)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	env.db.Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&count)
	require.Zero(t, count)
}

func TestCommentHandler_List(t *testing.T) {
	env := setupCommentTestEnv(t)

	require.NoError(t, env.db.Create(&models.Comment{TaskID: env.task.ID, UserID: env.member.ID, Content: "first"}).Error)
	require.NoError(t, env.db.Create(&models.Comment{TaskID: env.task.ID, UserID: env.member.ID, Content: "second"}).Error)

	taskParam := gin.Params{{Key: "id", Value: strconv.FormatUint(env.task.ID, 10)}}
	c, w := commentContext("GET", "/api/tasks/1/comments", nil, env.member.ID, taskParam)
	env.handler.ListComments(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Comments []dto.CommentDTO `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Comments, 2)
	require.Equal(t, "first", response.Comments[0].Content)
}
