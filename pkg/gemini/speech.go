package gemini

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/minseok4171/aidict/pkg/logging"
	"github.com/minseok4171/aidict/pkg/model"
	"github.com/minseok4171/aidict/pkg/utils"
	"google.golang.org/genai"
)

// The TTS models answer with raw 16-bit PCM and usually say so in the inline
// blob's MIME type. This is the documented default when they don't.
const defaultSpeechMIMEType = "audio/L16;codec=pcm;rate=24000"

type speechGenerator struct {
	word string
	cfg  model.GeneratorConfig
}

// NewSpeechGenerator returns a generator that synthesizes the spoken
// pronunciation of one English word.
func NewSpeechGenerator(word string, opts ...model.GeneratorOption) (model.SpeechGenerator, error) {
	if strings.TrimSpace(word) == "" {
		return nil, utils.WrapIfNotNil(errors.New("word is required"))
	}

	cfg := model.ResolveGeneratorOpts(opts...)
	return &speechGenerator{
		word: strings.TrimSpace(word),
		cfg:  cfg,
	}, nil
}

// Synthesize builds a speech generator for word and runs it once.
func Synthesize(ctx context.Context, word string, opts ...model.GeneratorOption) (model.Speech, model.GenerationMetadata, error) {
	generator, err := NewSpeechGenerator(word, opts...)
	if err != nil {
		return model.Speech{}, nil, err
	}
	return generator.Generate(ctx)
}

func (g *speechGenerator) Generate(ctx context.Context) (model.Speech, model.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveSpeechModelName(g.cfg)
	voiceName := resolveVoiceName(g.cfg)
	meta := initMetadata(modelName)
	meta[model.MetadataKeyVoice] = voiceName
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	client, err := newAPIClient(ctx, g.cfg)
	if err != nil {
		log.Errorf("error: %v", err)
		return model.Speech{}, meta, utils.WrapIfNotNil(err)
	}

	log.Infof("word=%q model=%q voice=%q", g.word, modelName, voiceName)

	contents := []*genai.Content{
		genai.NewContentFromText("Pronounce this word clearly: "+g.word, genai.RoleUser),
	}
	response, err := client.Models.GenerateContent(ctx, modelName, contents, buildSpeechConfig(g.cfg, voiceName))
	if err != nil {
		err = classifyTransportError(err)
		log.Errorf("error: %v", err)
		return model.Speech{}, meta, utils.WrapIfNotNil(err)
	}

	applyResponseMetadata(meta, response)
	speech, err := extractAudio(response)
	if err != nil {
		err = &model.SynthesisError{Word: g.word, Err: err}
		log.Errorf("error: %v", err)
		return model.Speech{}, meta, utils.WrapIfNotNil(err)
	}
	return speech, meta, nil
}

func buildSpeechConfig(cfg model.GeneratorConfig, voiceName string) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: voiceName,
				},
			},
		},
	}
	if cfg.Temperature != nil {
		temp := float32(*cfg.Temperature)
		config.Temperature = &temp
	}
	return config
}

// extractAudio pulls the inline audio blob out of the first part of the
// first candidate. A response without one means the backend accepted the
// request but produced no speech.
func extractAudio(response *genai.GenerateContentResponse) (model.Speech, error) {
	if response == nil || len(response.Candidates) == 0 || response.Candidates[0] == nil {
		return model.Speech{}, model.ErrNoAudio
	}

	candidate := response.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return model.Speech{}, model.ErrNoAudio
	}

	part := candidate.Content.Parts[0]
	if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
		return model.Speech{}, model.ErrNoAudio
	}

	mimeType := strings.TrimSpace(part.InlineData.MIMEType)
	if mimeType == "" {
		mimeType = defaultSpeechMIMEType
	}
	return model.Speech{
		MIMEType: mimeType,
		Data:     part.InlineData.Data,
	}, nil
}
