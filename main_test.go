package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"gemstone/internal/config"
	"gemstone/internal/logger"
	"gemstone/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var app *fiber.App

func TestMain(m *testing.M) {
	cfg := &config.Config{
		Port:           "8000",
		DatabaseName:   "gemstone",
		AdminPassword:  "admin123",
		AllowedOrigins: "*",
	}

	var err error
	app, err = NewApp(cfg, logger.Nop(), repositories.NewSampleGemRepository(), nil)
	if err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func getJSON(t *testing.T, path string, out any) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out), string(body))
	return resp
}

func TestServerStartupAndHealthCheck(t *testing.T) {
	t.Run("Root", func(t *testing.T) {
		var body map[string]string
		resp := getJSON(t, "/", &body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Gemstone Store Backend Running", body["message"])
		assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	})

	t.Run("SampleCatalog", func(t *testing.T) {
		var page struct {
			Items []map[string]any `json:"items"`
			Total int64            `json:"total"`
		}
		resp := getJSON(t, "/api/gems", &page)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, page.Items, 6)
		assert.Equal(t, int64(6), page.Total)
	})

	t.Run("CORS", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(fiber.HeaderOrigin, "http://shop.example.com")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		var body map[string]any
		resp := getJSON(t, "/api/nope", &body)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.NotEmpty(t, body["detail"])
	})
}
