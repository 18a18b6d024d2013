package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dchamindu826/norcal-dubs/internal/http/middleware"
	"github.com/dchamindu826/norcal-dubs/internal/jsonstore"
	"github.com/dchamindu826/norcal-dubs/internal/modules/music"
	"github.com/dchamindu826/norcal-dubs/internal/shared/apperr"
	"github.com/dchamindu826/norcal-dubs/internal/storage"
)

type MusicHandler struct {
	Repo  *music.Repo
	Files storage.Storage
}

func NewMusicHandler(repo *music.Repo, files storage.Storage) *MusicHandler {
	return &MusicHandler{Repo: repo, Files: files}
}

func (h *MusicHandler) List(c *gin.Context) {
	list, err := h.Repo.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if list == nil {
		list = []music.Track{}
	}
	c.JSON(http.StatusOK, list)
}

// Create handles POST /api/music (admin): one audio file plus an optional
// display name (the filename is used when absent).
func (h *MusicHandler) Create(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Audio file is required.", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	res, err := h.Files.Put(c.Request.Context(), f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: contentType(fh),
		Size:        fh.Size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		name = strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	}

	t, err := h.Repo.Insert(c.Request.Context(), music.Track{Name: name, URL: res.URL})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "track": t})
}

func (h *MusicHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid track id.", nil))
		return
	}

	removed, err := h.Repo.Delete(c.Request.Context(), id)
	if errors.Is(err, jsonstore.ErrNotFound) {
		middleware.Fail(c, apperr.NotFoundErr("Track not found."))
		return
	}
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if removed.URL != "" {
		key := removed.URL[strings.LastIndex(removed.URL, "/")+1:]
		_ = h.Files.Delete(c.Request.Context(), key)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
