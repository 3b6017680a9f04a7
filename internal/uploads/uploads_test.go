package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postFile drives Save through a real multipart request.
func postFile(t *testing.T, store *Store, filename string) (string, error) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("not a real image"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	var name string
	var saveErr error
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		file, err := c.FormFile("image")
		require.NoError(t, err)
		name, saveErr = store.Save(c, file)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return name, saveErr
}

func TestSaveSanitizesFilename(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	name, err := postFile(t, store, "my photo (1).png")
	require.NoError(t, err)

	assert.NotContains(t, name, " ")
	assert.NotContains(t, name, "(")
	assert.Equal(t, ".png", filepath.Ext(name))

	_, err = os.Stat(filepath.Join(dir, name))
	assert.NoError(t, err)
}

func TestSaveRejectsBadExtension(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := postFile(t, store, "payload.exe")
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = postFile(t, store, "script.php")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestSaveUniquifiesName(t *testing.T) {
	store := NewStore(t.TempDir())

	first, err := postFile(t, store, "same.jpg")
	require.NoError(t, err)
	second, err := postFile(t, store, "same.jpg")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArchiveMovesFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	src := filepath.Join(dir, "old.png")
	require.NoError(t, os.WriteFile(src, []byte("img"), 0o644))

	require.NoError(t, store.Archive("old.png"))

	// Original is gone; the archived copy keeps the base name.
	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(filepath.Join(dir, "archive"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "old_")

	// Missing sources and empty names are quietly ignored.
	assert.NoError(t, store.Archive("never-existed.png"))
	assert.NoError(t, store.Archive(""))
}
