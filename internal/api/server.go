package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minseok4171/aidict/internal/config"
	"github.com/minseok4171/aidict/pkg/gemini"
	"github.com/minseok4171/aidict/pkg/model"
	"github.com/minseok4171/aidict/pkg/wordbook"
)

// Server holds the HTTP surface the browser front end talks to. Lookup and
// speech generators are injected through their factory types so tests can
// run the handlers against stubs.
type Server struct {
	store      *wordbook.Store
	newLookup  model.NewDefinitionGeneratorFunc
	newSpeech  model.NewSpeechGeneratorFunc
	lookupOpts []model.GeneratorOption
	speechOpts []model.GeneratorOption
	timeout    time.Duration
}

func NewServer(store *wordbook.Store, cfg config.Config) *Server {
	return &Server{
		store:      store,
		newLookup:  gemini.NewDefinitionGenerator,
		newSpeech:  gemini.NewSpeechGenerator,
		lookupOpts: cfg.LookupOptions(),
		speechOpts: cfg.SpeechOptions(),
		timeout:    cfg.RequestTimeout,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(), recovery())

	api := router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/lookup", s.handleLookup)
		api.POST("/pronounce", s.handlePronounce)

		api.GET("/history", s.handleHistory)
		api.DELETE("/history", s.handleClearHistory)
		api.DELETE("/history/:term", s.handleRemoveHistory)

		api.GET("/words", s.handleListWords)
		api.POST("/words", s.handleSaveWord)
		api.GET("/words/:word", s.handleGetWord)
		api.PUT("/words/:word", s.handleUpdateWord)
		api.DELETE("/words/:word", s.handleDeleteWord)
	}

	return router
}

func (s *Server) lookup(ctx context.Context, word string) (model.WordDefinition, model.GenerationMetadata, error) {
	generator, err := s.newLookup(word, s.lookupOpts...)
	if err != nil {
		return model.WordDefinition{}, nil, err
	}
	return generator.Generate(ctx)
}

func (s *Server) synthesize(ctx context.Context, word string) (model.Speech, model.GenerationMetadata, error) {
	generator, err := s.newSpeech(word, s.speechOpts...)
	if err != nil {
		return model.Speech{}, nil, err
	}
	return generator.Generate(ctx)
}

func (s *Server) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), s.timeout)
}
