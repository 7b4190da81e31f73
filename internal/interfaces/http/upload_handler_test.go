package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ServiOrden-api/internal/application/usecase"
	"github.com/jhoicas/ServiOrden-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/ServiOrden-api/internal/interfaces/http"
	"github.com/jhoicas/ServiOrden-api/pkg/logger"
)

func buildUploadApp(t *testing.T, dir string) *fiber.App {
	t.Helper()
	store, err := storage.NewLocal(dir)
	require.NoError(t, err)

	uc := usecase.NewUploadUseCase(store, logger.New(logger.Config{Env: "test", Level: "error"}))
	handler := apphttp.NewUploadHandler(uc)

	app := fiber.New()
	app.Post("/upload", apphttp.AuthMiddleware(&stubResolver{}), handler.Upload)
	return app
}

// multipartBody arma un cuerpo multipart con el campo "file".
func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUpload_GuardaArchivoConUUID(t *testing.T) {
	dir := t.TempDir()
	app := buildUploadApp(t, dir)

	body, contentType := multipartBody(t, "recibo.pdf", "contenido del recibo")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", tokenForRole(t, "EMPLOYEE"))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out["file_id"])
	assert.Equal(t, "recibo.pdf", out["filename"], "se conserva el nombre original en la respuesta")
	assert.True(t, strings.HasSuffix(out["path"], out["file_id"]+".pdf"),
		"el archivo se guarda como uuid + extensión, no con el nombre del cliente: %s", out["path"])

	// El archivo existe en disco con el contenido subido.
	data, err := os.ReadFile(out["path"])
	require.NoError(t, err)
	assert.Equal(t, "contenido del recibo", string(data))
}

func TestUpload_SinArchivo_Retorna400(t *testing.T) {
	app := buildUploadApp(t, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(""))
	req.Header.Set("Authorization", tokenForRole(t, "ADMIN"))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpload_SinToken_Retorna401(t *testing.T) {
	app := buildUploadApp(t, t.TempDir())

	body, contentType := multipartBody(t, "recibo.pdf", "x")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
