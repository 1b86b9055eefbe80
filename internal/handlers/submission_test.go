package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/labor-report-api/internal/constants"
	"github.com/yukikurage/labor-report-api/internal/database"
	"github.com/yukikurage/labor-report-api/internal/dto"
	"github.com/yukikurage/labor-report-api/internal/models"
	"github.com/yukikurage/labor-report-api/internal/repository"
	"github.com/yukikurage/labor-report-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SubmissionHandlerTestSuite defines the test suite for SubmissionHandler
type SubmissionHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *SubmissionHandler
}

// SetupTest runs before each test
func (suite *SubmissionHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Submission{},
		&models.AuditLog{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	submissionRepo := repository.NewSubmissionRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	auditRepo := repository.NewAuditLogRepository(suite.db)

	auditService := services.NewAuditService(auditRepo, zerolog.Nop())
	submissionService := services.NewSubmissionService(submissionRepo, taskRepo, auditService, true)

	suite.handler = NewSubmissionHandler(submissionService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *SubmissionHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *SubmissionHandlerTestSuite) createTestUser(name, login string, role models.Role) *models.User {
	user := &models.User{
		Name:         name,
		Login:        login,
		Role:         role,
		PasswordHash: "digest",
		Active:       true,
	}
	suite.db.Create(user)
	return user
}

func (suite *SubmissionHandlerTestSuite) createTestSubmission(owner *models.User, status models.ValidationStatus) *models.Submission {
	submission := &models.Submission{
		ID:               "sub-" + owner.Login,
		OwnerID:          owner.ID,
		OwnerName:        owner.Name,
		Date:             "2025-03-10",
		Time:             "08:00",
		WorkType:         "Preventive Patrol",
		Location:         "North sector",
		ResponsibleName:  owner.Name,
		ValidationStatus: status,
		CreatedBy:        owner.Login,
	}
	suite.Require().NoError(suite.db.Create(submission).Error)
	return submission
}

func (suite *SubmissionHandlerTestSuite) createContext(method, url string, body []byte, principal *models.User) (*gin.Context, *httptest.ResponseRecorder) {
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
	c.Set(constants.ContextKeyUserID, principal.ID)
	c.Set(constants.ContextKeyPrincipal, *principal)

	return c, w
}

func (suite *SubmissionHandlerTestSuite) TestCreateSubmission_ForcesPending() {
	jannia := suite.createTestUser("Jannia", "jannia", models.RoleStaff)

	// the payload has no say over the validation status
	body, err := json.Marshal(map[string]interface{}{
		"date":              "2025-03-10",
		"time":              "08:30",
		"work_type":         "Incident Response",
		"location":          "East sector",
		"notes":             "Responded to a call",
		"validation_status": "Validated",
	})
	suite.Require().NoError(err)

	c, w := suite.createContext(http.MethodPost, "/api/submissions", body, jannia)
	suite.handler.CreateSubmission(c)

	suite.Require().Equal(http.StatusCreated, w.Code)

	var response dto.SubmissionDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Equal(models.ValidationPending, response.ValidationStatus)
	suite.Require().Equal(jannia.ID, response.OwnerID)
	suite.Require().Equal("Jannia", response.ResponsibleName)
	suite.Require().Equal("Incident Response", response.WorkType)
	suite.Require().NotEmpty(response.ID)
}

func (suite *SubmissionHandlerTestSuite) TestCreateSubmission_RejectsUnknownWorkType() {
	jannia := suite.createTestUser("Jannia", "jannia", models.RoleStaff)

	body, err := json.Marshal(map[string]string{
		"date":      "2025-03-10",
		"time":      "08:30",
		"work_type": "Moon Patrol",
	})
	suite.Require().NoError(err)

	c, w := suite.createContext(http.MethodPost, "/api/submissions", body, jannia)
	suite.handler.CreateSubmission(c)

	suite.Require().Equal(http.StatusBadRequest, w.Code)
}

func (suite *SubmissionHandlerTestSuite) TestCreateSubmission_TaskMustBeOwn() {
	jannia := suite.createTestUser("Jannia", "jannia", models.RoleStaff)
	jeremy := suite.createTestUser("Jeremy", "jeremy", models.RoleStaff)

	task := &models.Task{
		Title:        "Night patrol",
		Priority:     models.TaskPriorityMedium,
		Status:       models.TaskStatusNew,
		AssigneeID:   jeremy.ID,
		AssigneeName: jeremy.Name,
		CreatedBy:    "vperaza",
	}
	suite.Require().NoError(suite.db.Create(task).Error)

	body, err := json.Marshal(map[string]interface{}{
		"task_id":   task.ID,
		"date":      "2025-03-10",
		"time":      "08:30",
		"work_type": "Preventive Patrol",
	})
	suite.Require().NoError(err)

	c, w := suite.createContext(http.MethodPost, "/api/submissions", body, jannia)
	suite.handler.CreateSubmission(c)

	suite.Require().Equal(http.StatusBadRequest, w.Code)
}

func (suite *SubmissionHandlerTestSuite) TestUpdateSubmission_OwnerWhilePending() {
	jannia := suite.createTestUser("Jannia", "jannia", models.RoleStaff)
	submission := suite.createTestSubmission(jannia, models.ValidationPending)

	body, err := json.Marshal(map[string]string{
		"date":      "2025-03-11",
		"time":      "09:00",
		"work_type": "Road Control",
		"location":  "Route 32",
	})
	suite.Require().NoError(err)

	c, w := suite.createContext(http.MethodPatch, "/api/submissions/"+submission.ID, body, jannia)
	c.Params = gin.Params{{Key: "id", Value: submission.ID}}
	suite.handler.UpdateSubmission(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.SubmissionDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Equal("Road Control", response.WorkType)
	suite.Require().Equal(submission.ID, response.ID)
	suite.Require().Equal("jannia", response.CreatedBy)
	suite.Require().Equal("jannia", response.EditedBy)
	suite.Require().NotNil(response.EditedAt)
}

func (suite *SubmissionHandlerTestSuite) TestUpdateSubmission_LockedAfterValidation() {
	jannia := suite.createTestUser("Jannia", "jannia", models.RoleStaff)
	submission := suite.createTestSubmission(jannia, models.ValidationValidated)

	body, err := json.Marshal(map[string]string{
		"date":      "2025-03-11",
		"time":      "09:00",
		"work_type": "Road Control",
	})
	suite.Require().NoError(err)

	c, w := suite.createContext(http.MethodPatch, "/api/submissions/"+submission.ID, body, jannia)
	c.Params = gin.Params{{Key: "id", Value: submission.ID}}
	suite.handler.UpdateSubmission(c)

	suite.Require().Equal(http.StatusForbidden, w.Code)
}

func (suite *SubmissionHandlerTestSuite) TestUpdateSubmission_AdminAtAnyStatus() {
	admin := suite.createTestUser("Viviana", "vperaza", models.RoleAdmin)
	jannia := suite.createTestUser("Jannia", "jannia", models.RoleStaff)
	submission := suite.createTestSubmission(jannia, models.ValidationRejected)

	body, err := json.Marshal(map[string]string{
		"date":      "2025-03-11",
		"time":      "09:00",
		"work_type": "Administrative Duties",
	})
	suite.Require().NoError(err)

	c, w := suite.createContext(http.MethodPatch, "/api/submissions/"+submission.ID, body, admin)
	c.Params = gin.Params{{Key: "id", Value: submission.ID}}
	suite.handler.UpdateSubmission(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.SubmissionDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	// the owner does not change when the administrator edits
	suite.Require().Equal(jannia.ID, response.OwnerID)
	suite.Require().Equal("vperaza", response.EditedBy)
}

func (suite *SubmissionHandlerTestSuite) TestDeleteSubmission_ForbiddenForOtherStaff() {
	jannia := suite.createTestUser("Jannia", "jannia", models.RoleStaff)
	jeremy := suite.createTestUser("Jeremy", "jeremy", models.RoleStaff)
	submission := suite.createTestSubmission(jannia, models.ValidationPending)

	c, w := suite.createContext(http.MethodDelete, "/api/submissions/"+submission.ID, nil, jeremy)
	c.Params = gin.Params{{Key: "id", Value: submission.ID}}
	suite.handler.DeleteSubmission(c)

	suite.Require().Equal(http.StatusForbidden, w.Code)

	var count int64
	suite.db.Model(&models.Submission{}).Where("id = ?", submission.ID).Count(&count)
	suite.Require().Equal(int64(1), count)
}

func (suite *SubmissionHandlerTestSuite) TestDeleteSubmission_LockedForOwnerAfterValidation() {
	jannia := suite.createTestUser("Jannia", "jannia", models.RoleStaff)
	submission := suite.createTestSubmission(jannia, models.ValidationValidated)

	c, w := suite.createContext(http.MethodDelete, "/api/submissions/"+submission.ID, nil, jannia)
	c.Params = gin.Params{{Key: "id", Value: submission.ID}}
	suite.handler.DeleteSubmission(c)

	suite.Require().Equal(http.StatusForbidden, w.Code)
}

func (suite *SubmissionHandlerTestSuite) TestSetValidation() {
	admin := suite.createTestUser("Viviana", "vperaza", models.RoleAdmin)
	jannia := suite.createTestUser("Jannia", "jannia", models.RoleStaff)
	submission := suite.createTestSubmission(jannia, models.ValidationPending)

	body, err := json.Marshal(map[string]string{
		"status":     "Validated",
		"admin_note": "Checked against the duty roster",
	})
	suite.Require().NoError(err)

	c, w := suite.createContext(http.MethodPost, "/api/submissions/"+submission.ID+"/validation", body, admin)
	c.Params = gin.Params{{Key: "id", Value: submission.ID}}
	suite.handler.SetValidation(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var stored models.Submission
	suite.Require().NoError(suite.db.First(&stored, "id = ?", submission.ID).Error)
	suite.Require().Equal(models.ValidationValidated, stored.ValidationStatus)
	suite.Require().Equal("Checked against the duty roster", stored.AdminNote)
	suite.Require().Equal("vperaza", stored.EditedBy)
}

func (suite *SubmissionHandlerTestSuite) TestListSubmissions_StaffSeeOnlyOwn() {
	jannia := suite.createTestUser("Jannia", "jannia", models.RoleStaff)
	jeremy := suite.createTestUser("Jeremy", "jeremy", models.RoleStaff)
	suite.createTestSubmission(jannia, models.ValidationPending)
	suite.createTestSubmission(jeremy, models.ValidationPending)

	// staff cannot widen the filter to another owner
	c, w := suite.createContext(http.MethodGet, "/api/submissions?owner_id=9999", nil, jannia)
	suite.handler.ListSubmissions(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.SubmissionListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Submissions, 1)
	suite.Require().Equal(jannia.ID, response.Submissions[0].OwnerID)
}

func (suite *SubmissionHandlerTestSuite) TestListSubmissions_DateRangeFilter() {
	admin := suite.createTestUser("Viviana", "vperaza", models.RoleAdmin)
	jannia := suite.createTestUser("Jannia", "jannia", models.RoleStaff)

	for i, date := range []string{"2025-03-01", "2025-03-15", "2025-04-01"} {
		submission := &models.Submission{
			ID:               "sub-" + string(rune('a'+i)),
			OwnerID:          jannia.ID,
			OwnerName:        jannia.Name,
			Date:             date,
			Time:             "08:00",
			WorkType:         "Preventive Patrol",
			ValidationStatus: models.ValidationPending,
			CreatedBy:        jannia.Login,
		}
		suite.Require().NoError(suite.db.Create(submission).Error)
	}

	c, w := suite.createContext(http.MethodGet, "/api/submissions?date_from=2025-03-10&date_to=2025-03-31", nil, admin)
	suite.handler.ListSubmissions(c)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.SubmissionListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Submissions, 1)
	suite.Require().Equal("2025-03-15", response.Submissions[0].Date)
}

func TestSubmissionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SubmissionHandlerTestSuite))
}
