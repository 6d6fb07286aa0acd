package quizController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"lms/config"
	"lms/database"
	"lms/models"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	quizRoutes "lms/routers/quizRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: bcrypt.MinCost,
		UploadDir: t.TempDir(),
	}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	quizRoutes.SetupQuizRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func doForm(t *testing.T, app *fiber.App, method, path, token string, fields url.Values) (*http.Response, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(fields.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func registerAndLogin(t *testing.T, app *fiber.App, username string, role models.Role) string {
	t.Helper()

	resp, _ := doJSON(t, app, fiber.MethodPost, "/auth/signup", "", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
		"role":     string(role),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, env := doJSON(t, app, fiber.MethodPost, "/auth/login", "", fiber.Map{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func createCourse(t *testing.T, app *fiber.App, token string) uint {
	t.Helper()

	resp, env := doJSON(t, app, fiber.MethodPost, "/course/create", token, fiber.Map{
		"title":       "Intro to Testing",
		"description": "End to end",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var course struct {
		ID uint `json:"ID"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &course))
	require.NotZero(t, course.ID)
	return course.ID
}

type quizViewPayload struct {
	Quiz struct {
		ID uint `json:"ID"`
	} `json:"quiz"`
	Questions []struct {
		ID      uint `json:"ID"`
		Choices []struct {
			ID uint `json:"ID"`
		}
	} `json:"questions"`
}

func TestQuizLifecycleOverHTTP(t *testing.T) {
	app := setupApp(t)

	instructorToken := registerAndLogin(t, app, "instructor1", models.RoleInstructor)
	studentToken := registerAndLogin(t, app, "student1", models.RoleStudent)
	courseID := createCourse(t, app, instructorToken)

	// Author via the classic flat form convention
	resp, env := doForm(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/quiz/create", courseID), instructorToken, url.Values{
		"title":      {"Unit 1"},
		"q1_text":    {"2+2?"},
		"q1_choice1": {"4"},
		"q1_choice2": {"5"},
		"q1_correct": {"1"},
		"q2_text":    {"3+3?"},
		"q2_choice1": {"6"},
		"q2_choice2": {"7"},
		"q2_correct": {"1"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)

	var created struct {
		Quiz struct {
			ID uint `json:"ID"`
		} `json:"quiz"`
		Questions []struct {
			ID uint `json:"ID"`
		} `json:"questions"`
		Choices map[string][]struct {
			ID        uint `json:"ID"`
			IsCorrect bool `json:"is_correct"`
		} `json:"choices"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Len(t, created.Questions, 2)

	q1 := created.Questions[0]
	q2 := created.Questions[1]
	q1Choices := created.Choices[fmt.Sprint(q1.ID)]
	q2Choices := created.Choices[fmt.Sprint(q2.ID)]
	require.Len(t, q1Choices, 2)
	require.Len(t, q2Choices, 2)
	assert.True(t, q1Choices[0].IsCorrect)

	// Students fetching the quiz never see the answer key
	resp, env = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/quiz/%d", created.Quiz.ID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(env.Data), "is_correct")

	// Instructors cannot submit
	resp, _ = doForm(t, app, fiber.MethodPost, fmt.Sprintf("/quiz/%d/submit", created.Quiz.ID), instructorToken, url.Values{
		fmt.Sprintf("question_%d", q1.ID): {fmt.Sprint(q1Choices[0].ID)},
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Student submits one right, one wrong
	resp, env = doForm(t, app, fiber.MethodPost, fmt.Sprintf("/quiz/%d/submit", created.Quiz.ID), studentToken, url.Values{
		fmt.Sprintf("question_%d", q1.ID): {fmt.Sprint(q1Choices[0].ID)},
		fmt.Sprintf("question_%d", q2.ID): {fmt.Sprint(q2Choices[1].ID)},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)

	var attempt struct {
		ID    uint     `json:"ID"`
		Score *float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &attempt))
	require.NotNil(t, attempt.Score)
	assert.Equal(t, 50.0, *attempt.Score)

	// Owner sees the result; everyone else is denied
	resp, _ = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/attempt/%d/result", attempt.ID), studentToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/attempt/%d/result", attempt.ID), instructorToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	otherToken := registerAndLogin(t, app, "student2", models.RoleStudent)
	resp, _ = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/attempt/%d/result", attempt.ID), otherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestQuizAuthoringGapTruncationOverHTTP(t *testing.T) {
	app := setupApp(t)

	instructorToken := registerAndLogin(t, app, "instructor1", models.RoleInstructor)
	courseID := createCourse(t, app, instructorToken)

	resp, env := doForm(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/quiz/create", courseID), instructorToken, url.Values{
		"title":      {"Gappy"},
		"q1_text":    {"First"},
		"q1_choice1": {"A"},
		"q1_choice2": {"B"},
		"q3_text":    {"Dropped"},
		"q3_choice1": {"C"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)

	var created quizViewPayload
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Len(t, created.Questions, 1)
}

func TestQuizEditOverHTTP(t *testing.T) {
	app := setupApp(t)

	instructorToken := registerAndLogin(t, app, "instructor1", models.RoleInstructor)
	courseID := createCourse(t, app, instructorToken)

	resp, env := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/course/%d/quiz/create", courseID), instructorToken, fiber.Map{
		"title": "Editable",
		"questions": []fiber.Map{
			{"text": "Q1", "choices": []fiber.Map{
				{"text": "A", "correct": true},
				{"text": "B"},
			}},
		},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)

	var created struct {
		Quiz struct {
			ID uint `json:"ID"`
		} `json:"quiz"`
		Questions []struct {
			ID uint `json:"ID"`
		} `json:"questions"`
		Choices map[string][]struct {
			ID        uint `json:"ID"`
			IsCorrect bool `json:"is_correct"`
		} `json:"choices"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	q1 := created.Questions[0]
	choices := created.Choices[fmt.Sprint(q1.ID)]
	require.Len(t, choices, 2)

	// Move the correct flag to B via the form convention
	resp, env = doForm(t, app, fiber.MethodPut, fmt.Sprintf("/quiz/%d", created.Quiz.ID), instructorToken, url.Values{
		fmt.Sprintf("q%d_text", q1.ID):              {"Q1 edited"},
		fmt.Sprintf("q%d_correct", q1.ID):           {fmt.Sprint(choices[1].ID)},
		fmt.Sprintf("choice%d_text", choices[1].ID): {"B edited"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)

	var updated struct {
		Quiz struct {
			ID uint `json:"ID"`
		} `json:"quiz"`
		Questions []struct {
			ID   uint   `json:"ID"`
			Text string `json:"text"`
		} `json:"questions"`
		Choices map[string][]struct {
			ID        uint   `json:"ID"`
			Text      string `json:"text"`
			IsCorrect bool   `json:"is_correct"`
		} `json:"choices"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Q1 edited", updated.Questions[0].Text)

	updatedChoices := updated.Choices[fmt.Sprint(q1.ID)]
	require.Len(t, updatedChoices, 2)
	assert.False(t, updatedChoices[0].IsCorrect)
	assert.True(t, updatedChoices[1].IsCorrect)
	assert.Equal(t, "B edited", updatedChoices[1].Text)
}
