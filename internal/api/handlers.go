package api

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/minseok4171/aidict/pkg/audio"
	"github.com/minseok4171/aidict/pkg/logging"
	"github.com/minseok4171/aidict/pkg/model"
	"github.com/minseok4171/aidict/pkg/wordbook"
)

type lookupRequest struct {
	Word string `json:"word" binding:"required"`
}

type pronounceRequest struct {
	Word string `json:"word" binding:"required"`
}

type pronounceResponse struct {
	MIMEType   string `json:"mimeType"`
	Data       string `json:"data"`
	SampleRate int    `json:"sampleRate"`
	Channels   int    `json:"channels"`
}

type saveWordRequest struct {
	Word        string               `json:"word" binding:"required"`
	Definition  model.WordDefinition `json:"definition"`
	Note        string               `json:"note"`
	Proficiency wordbook.Proficiency `json:"proficiency"`
}

type updateWordRequest struct {
	Note        *string               `json:"note"`
	Proficiency *wordbook.Proficiency `json:"proficiency"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleLookup(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word is required"})
		return
	}
	word := strings.TrimSpace(req.Word)
	if word == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word is required"})
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	definition, _, err := s.lookup(ctx, word)
	if err != nil {
		s.renderError(c, err)
		return
	}
	if _, err := s.store.TouchHistory(word); err != nil {
		logging.NewLogger(c.Request.Context()).Errorf("error: %v", err)
	}
	c.JSON(http.StatusOK, definition)
}

func (s *Server) handlePronounce(c *gin.Context) {
	var req pronounceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word is required"})
		return
	}
	word := strings.TrimSpace(req.Word)
	if word == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word is required"})
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	speech, _, err := s.synthesize(ctx, word)
	if err != nil {
		s.renderError(c, err)
		return
	}

	if c.Query("format") == "wav" {
		buffer, err := audio.DecodeSpeech(speech.MIMEType, speech.Data)
		if err != nil {
			s.renderError(c, err)
			return
		}
		var out bytes.Buffer
		if err := audio.WriteWAV(&out, buffer); err != nil {
			s.renderError(c, err)
			return
		}
		c.Data(http.StatusOK, "audio/wav", out.Bytes())
		return
	}

	sampleRate, channels := audio.PCMParams(speech.MIMEType)
	c.JSON(http.StatusOK, pronounceResponse{
		MIMEType:   speech.MIMEType,
		Data:       audio.EncodeBase64(speech.Data),
		SampleRate: sampleRate,
		Channels:   channels,
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	entries, err := s.store.History()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (s *Server) handleClearHistory(c *gin.Context) {
	if err := s.store.ClearHistory(); err != nil {
		s.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleRemoveHistory(c *gin.Context) {
	if err := s.store.RemoveHistory(c.Param("term")); err != nil {
		s.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListWords(c *gin.Context) {
	words, err := s.store.List()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"words": words})
}

// handleSaveWord stores a word in the word book. When the request carries no
// definition snapshot the word is looked up first, so a bare {"word": "apple"}
// body does the whole job.
func (s *Server) handleSaveWord(c *gin.Context) {
	var req saveWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word is required"})
		return
	}
	word := strings.TrimSpace(req.Word)
	if word == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word is required"})
		return
	}
	if req.Proficiency != "" && !req.Proficiency.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proficiency must be one of new, learning, mastered"})
		return
	}

	definition := req.Definition
	if len(definition.Meanings) == 0 {
		ctx, cancel := s.requestContext(c)
		defer cancel()

		looked, _, err := s.lookup(ctx, word)
		if err != nil {
			s.renderError(c, err)
			return
		}
		definition = looked
	}

	saved, err := s.store.Save(wordbook.SavedWord{
		Word:        word,
		Definition:  definition,
		Note:        req.Note,
		Proficiency: req.Proficiency,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) handleGetWord(c *gin.Context) {
	saved, err := s.store.Get(c.Param("word"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) handleUpdateWord(c *gin.Context) {
	var req updateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Proficiency != nil && !req.Proficiency.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proficiency must be one of new, learning, mastered"})
		return
	}

	saved, err := s.store.Get(c.Param("word"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	if req.Note != nil {
		saved.Note = *req.Note
	}
	if req.Proficiency != nil {
		saved.Proficiency = *req.Proficiency
	}

	updated, err := s.store.Save(saved)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteWord(c *gin.Context) {
	if err := s.store.Delete(c.Param("word")); err != nil {
		s.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// renderError maps backend failures onto HTTP statuses the front end can act
// on: 503 when the network is down, 422 when the model answer was unusable,
// 404 for missing word book entries and 502 for everything else upstream.
func (s *Server) renderError(c *gin.Context, err error) {
	logging.NewLogger(c.Request.Context()).Errorf("error: %v", err)

	var netErr *model.NetworkError
	switch {
	case errors.As(err, &netErr) || errors.Is(err, model.ErrOffline):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "the dictionary service is unreachable, check your network connection"})
	case errors.Is(err, model.ErrEmptyResponse) || errors.Is(err, model.ErrInvalidFormat):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "the dictionary returned an unusable answer, try again"})
	case errors.Is(err, model.ErrNoAudio):
		c.JSON(http.StatusBadGateway, gin.H{"error": "no pronunciation audio was produced for this word"})
	case errors.Is(err, wordbook.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "word not found in the word book"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "the dictionary request failed, try again"})
	}
}
