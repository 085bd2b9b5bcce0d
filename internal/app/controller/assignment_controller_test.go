package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/internal/app/repository"
	"github.com/mfalgas/christmas-planner-backend/internal/app/service"
	"github.com/mfalgas/christmas-planner-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAssignmentControllerTest(t *testing.T) (*AssignmentController, *gin.Engine, *gorm.DB, *model.User, *model.User, *model.Wish) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	assignmentRepo := repository.NewAssignmentRepository(testDB)
	wishRepo := repository.NewWishRepository(testDB)
	assignmentService := service.NewAssignmentService(assignmentRepo, wishRepo)
	assignmentController := NewAssignmentController(assignmentService)

	owner := &model.User{Email: "maria@example.com", Name: "María"}
	testDB.Create(owner)

	claimer := &model.User{Email: "jose@example.com", Name: "José"}
	testDB.Create(claimer)

	wish := &model.Wish{UserID: owner.ID, Title: "Bufanda", Priority: model.PriorityMedium}
	testDB.Create(wish)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return assignmentController, router, testDB, owner, claimer, wish
}

func TestAssignmentController_Claim_Success(t *testing.T) {
	controller, router, _, _, claimer, wish := setupAssignmentControllerTest(t)

	router.POST("/assignments", func(c *gin.Context) {
		setUserIDInContext(c, claimer.ID)
		controller.Claim(c)
	})

	body, _ := json.Marshal(map[string]interface{}{
		"wish_id": wish.ID,
	})
	req := httptest.NewRequest(http.MethodPost, "/assignments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Assignment model.Assignment `json:"assignment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, wish.ID, resp.Assignment.WishID)
	require.NotNil(t, resp.Assignment.AssignedBy)
	assert.Equal(t, claimer.ID, *resp.Assignment.AssignedBy)
}

func TestAssignmentController_Claim_OwnWish(t *testing.T) {
	controller, router, _, owner, _, wish := setupAssignmentControllerTest(t)

	router.POST("/assignments", func(c *gin.Context) {
		setUserIDInContext(c, owner.ID)
		controller.Claim(c)
	})

	body, _ := json.Marshal(map[string]interface{}{
		"wish_id": wish.ID,
	})
	req := httptest.NewRequest(http.MethodPost, "/assignments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ASSIGNMENT_SELF_FORBIDDEN")
}

func TestAssignmentController_Claim_Conflict(t *testing.T) {
	controller, router, testDB, _, claimer, wish := setupAssignmentControllerTest(t)

	other := &model.User{Email: "ana@example.com", Name: "Ana"}
	testDB.Create(other)
	otherID := other.ID
	testDB.Create(&model.Assignment{WishID: wish.ID, AssignedBy: &otherID})

	router.POST("/assignments", func(c *gin.Context) {
		setUserIDInContext(c, claimer.ID)
		controller.Claim(c)
	})

	body, _ := json.Marshal(map[string]interface{}{
		"wish_id": wish.ID,
	})
	req := httptest.NewRequest(http.MethodPost, "/assignments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ASSIGNMENT_ALREADY_ASSIGNED")
}

func TestAssignmentController_Claim_External(t *testing.T) {
	controller, router, _, _, claimer, wish := setupAssignmentControllerTest(t)

	router.POST("/assignments", func(c *gin.Context) {
		setUserIDInContext(c, claimer.ID)
		controller.Claim(c)
	})

	body, _ := json.Marshal(map[string]interface{}{
		"wish_id":  wish.ID,
		"external": true,
	})
	req := httptest.NewRequest(http.MethodPost, "/assignments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Assignment model.Assignment `json:"assignment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Assignment.AssignedBy)
}

func TestAssignmentController_Unclaim(t *testing.T) {
	controller, router, testDB, _, claimer, wish := setupAssignmentControllerTest(t)

	claimerID := claimer.ID
	testDB.Create(&model.Assignment{WishID: wish.ID, AssignedBy: &claimerID})

	router.DELETE("/assignments", func(c *gin.Context) {
		setUserIDInContext(c, claimer.ID)
		controller.Unclaim(c)
	})

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/assignments?wish_id=%d", wish.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	testDB.Model(&model.Assignment{}).Where("wish_id = ?", wish.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAssignmentController_ListMine(t *testing.T) {
	controller, router, testDB, _, claimer, wish := setupAssignmentControllerTest(t)

	claimerID := claimer.ID
	testDB.Create(&model.Assignment{WishID: wish.ID, AssignedBy: &claimerID})

	router.GET("/assignments", func(c *gin.Context) {
		setUserIDInContext(c, claimer.ID)
		controller.ListMine(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/assignments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Assignments []model.Assignment `json:"assignments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Assignments, 1)
	require.NotNil(t, resp.Assignments[0].Wish)
	assert.Equal(t, "Bufanda", resp.Assignments[0].Wish.Title)
}
