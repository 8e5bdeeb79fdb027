package fiberlog

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run(`warn on error status check`, func(t *testing.T) {
		buf := new(bytes.Buffer)
		logger := logrus.New()
		logger.SetOutput(buf)
		logger.SetFormatter(&logrus.JSONFormatter{})

		app := fiber.New()
		app.Use(New(Config{Logger: logger, Tags: []string{TagStatus, TagMethod, TagPath, TagLatency}}))
		app.Get("/missing", func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusNotFound)
		})
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		entry := map[string]interface{}{}
		require.Nil(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "warning", entry["level"])
		require.Equal(t, "/missing", entry[TagPath])
		require.Equal(t, "GET", entry[TagMethod])
		require.Equal(t, float64(404), entry[TagStatus])
		require.NotEmpty(t, entry[TagLatency])
	})

	t.Run(`skip service paths check`, func(t *testing.T) {
		buf := new(bytes.Buffer)
		logger := logrus.New()
		logger.SetOutput(buf)
		logger.SetFormatter(&logrus.JSONFormatter{})

		app := fiber.New()
		app.Use(New(Config{Logger: logger, Tags: []string{TagPath}, SkipPaths: []string{"/health"}}))
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Zero(t, buf.Len())
	})

	t.Run(`error level on server error check`, func(t *testing.T) {
		buf := new(bytes.Buffer)
		logger := logrus.New()
		logger.SetOutput(buf)
		logger.SetFormatter(&logrus.JSONFormatter{})

		app := fiber.New()
		app.Use(New(Config{Logger: logger, Tags: []string{TagPath}}))
		app.Get("/broken", func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusBadGateway, "backend down")
		})
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/broken", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

		entry := map[string]interface{}{}
		require.Nil(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "error", entry["level"])
		require.Equal(t, "backend down", entry["error"])
	})
}
