package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	_ "github.com/jackc/pgx/v5/stdlib"

	adapterHTTP "github.com/comitanigiacomo/kanso-quest/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-quest/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-quest/internal/catalog"
	"github.com/comitanigiacomo/kanso-quest/internal/config"
	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/comitanigiacomo/kanso-quest/internal/core/services"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	cfg := config.DBConfig{
		Host:     get("DB_HOST", "localhost"),
		Port:     get("DB_PORT", "5432"),
		User:     get("DB_USER", "kanso_user"),
		Password: get("DB_PASSWORD", "secret"),
		Name:     get("DB_NAME", "kanso_db"),
	}

	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, repository.EnsureSchema(ctx, db))
	return db
}

func TestEndToEnd_PlayerLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	defer db.Close()

	logger := zaptest.NewLogger(t)
	quests, err := catalog.Default()
	require.NoError(t, err)

	game := services.NewGameService(services.GameDependencies{
		Store:   repository.NewPostgresSnapshotRepository(db),
		Catalog: quests,
		Config:  domain.DefaultGameConfig(),
		Logger:  logger,
	})
	accounts := repository.NewPostgresAccountRepository(db.DB)
	tokens := services.NewTokenService("e2e-secret", "kanso-quest-e2e", time.Hour, accounts)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:        adapterHTTP.NewAuthHandler(services.NewAuthService(accounts), tokens),
		PlayerHandler:      adapterHTTP.NewPlayerHandler(game),
		QuestHandler:       adapterHTTP.NewQuestHandler(game),
		HabitHandler:       adapterHTTP.NewHabitHandler(game),
		AchievementHandler: adapterHTTP.NewAchievementHandler(game),
		TokenService:       tokens,
		DB:                 db,
		Logger:             logger,
		StartTime:          time.Now(),
	})

	send := func(method, path, token, body string) *httptest.ResponseRecorder {
		var buf *bytes.Buffer
		if body != "" {
			buf = bytes.NewBufferString(body)
		} else {
			buf = &bytes.Buffer{}
		}
		req, _ := http.NewRequest(method, path, buf)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	var token, questID string
	email := "e2e-" + uuid.NewString() + "@kanso.app"

	t.Run("1. Register", func(t *testing.T) {
		w := send(http.MethodPost, "/api/v1/auth/register", "", `{"email":"`+email+`","password":"password123"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			PlayerID string `json:"player_id"`
			Token    string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.PlayerID)
		token = resp.Token
	})

	t.Run("2. Open Player", func(t *testing.T) {
		require.NotEmpty(t, token, "register step failed")

		w := send(http.MethodGet, "/api/v1/player", token, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var state services.PlayerState
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		assert.Equal(t, 1, state.Player.Level)
		require.NotEmpty(t, state.Quests)
		questID = state.Quests[0].ID
	})

	t.Run("3. Complete Quest", func(t *testing.T) {
		require.NotEmpty(t, questID, "open step failed")

		w := send(http.MethodPost, "/api/v1/quests/"+questID+"/complete", token, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Quest      domain.Quest `json:"quest"`
			Experience struct {
				Granted int `json:"granted"`
			} `json:"experience"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Quest.Completed)
		assert.Positive(t, resp.Experience.Granted)
	})

	t.Run("4. Progress Survives a New Service", func(t *testing.T) {
		fresh := services.NewGameService(services.GameDependencies{
			Store:   repository.NewPostgresSnapshotRepository(db),
			Catalog: quests,
			Config:  domain.DefaultGameConfig(),
		})

		var account struct {
			PlayerID string `db:"player_id"`
		}
		require.NoError(t, db.Get(&account, "SELECT player_id FROM accounts WHERE email = $1", email))

		state, err := fresh.State(context.Background(), account.PlayerID)
		require.NoError(t, err)
		assert.Equal(t, 1, state.Player.Stats.QuestsCompleted)
		assert.Contains(t, state.Player.Achievements, domain.AchFirstQuest)
	})

	t.Run("5. Complete Twice", func(t *testing.T) {
		w := send(http.MethodPost, "/api/v1/quests/"+questID+"/complete", token, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("6. Reset", func(t *testing.T) {
		w := send(http.MethodDelete, "/api/v1/player", token, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("7. Auth Error", func(t *testing.T) {
		w := send(http.MethodGet, "/api/v1/player", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
