package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/kaptinlin/jsonrepair"
	"github.com/minseok4171/aidict/pkg/logging"
	"github.com/minseok4171/aidict/pkg/model"
	"github.com/minseok4171/aidict/pkg/utils"
	"google.golang.org/genai"
)

const maxMeanings = 4

const lookupSystemInstruction = "You are an English-Korean learner's dictionary for Korean elementary, middle and high school students. " +
	"Answer with a single JSON object matching the requested schema. " +
	"Write definitions in short, simple English a student can read without help."

type definitionGenerator struct {
	word string
	cfg  model.GeneratorConfig
}

// NewDefinitionGenerator returns a generator that produces the structured
// definition of one English word.
func NewDefinitionGenerator(word string, opts ...model.GeneratorOption) (model.DefinitionGenerator, error) {
	if strings.TrimSpace(word) == "" {
		return nil, utils.WrapIfNotNil(errors.New("word is required"))
	}

	cfg := model.ResolveGeneratorOpts(opts...)
	return &definitionGenerator{
		word: strings.TrimSpace(word),
		cfg:  cfg,
	}, nil
}

// Lookup builds a definition generator for word and runs it once.
func Lookup(ctx context.Context, word string, opts ...model.GeneratorOption) (model.WordDefinition, model.GenerationMetadata, error) {
	generator, err := NewDefinitionGenerator(word, opts...)
	if err != nil {
		return model.WordDefinition{}, nil, err
	}
	return generator.Generate(ctx)
}

func (g *definitionGenerator) Generate(ctx context.Context) (model.WordDefinition, model.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveLookupModelName(g.cfg)
	meta := initMetadata(modelName)
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)

	config := buildLookupConfig(g.cfg)
	schema, err := generateJSONSchema[model.WordDefinition]()
	if err != nil {
		log.Errorf("error: %v", err)
		return model.WordDefinition{}, meta, utils.WrapIfNotNil(err)
	}
	config.ResponseMIMEType = "application/json"
	config.ResponseJsonSchema = schema

	client, err := newAPIClient(ctx, g.cfg)
	if err != nil {
		log.Errorf("error: %v", err)
		return model.WordDefinition{}, meta, utils.WrapIfNotNil(err)
	}

	log.Infof(
		"word=%q model=%q temperature=%v max_tokens=%v",
		g.word,
		modelName,
		g.cfg.Temperature,
		g.cfg.MaxTokens,
	)

	contents := []*genai.Content{
		genai.NewContentFromText(buildLookupPrompt(g.word), genai.RoleUser),
	}
	response, err := client.Models.GenerateContent(ctx, modelName, contents, config)
	if err != nil {
		err = classifyTransportError(err)
		log.Errorf("error: %v", err)
		return model.WordDefinition{}, meta, utils.WrapIfNotNil(err)
	}

	applyResponseMetadata(meta, response)
	definition, err := decodeDefinition(g.word, response.Text())
	if err != nil {
		log.Errorf("error: %v", err)
		return model.WordDefinition{}, meta, utils.WrapIfNotNil(err)
	}
	return definition, meta, nil
}

func buildLookupConfig(cfg model.GeneratorConfig) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(lookupSystemInstruction, genai.RoleUser),
	}
	if cfg.Temperature != nil {
		temp := float32(*cfg.Temperature)
		config.Temperature = &temp
	}
	if cfg.MaxTokens != nil {
		config.MaxOutputTokens = int32(*cfg.MaxTokens)
	}
	return config
}

func buildLookupPrompt(word string) string {
	return fmt.Sprintf(
		"Look up the English word %q.\n"+
			"Give its IPA phonetic transcription, its parts of speech, and up to %d common meanings ordered from most to least common.\n"+
			"For each meaning give the part of speech, a simple English definition, natural Korean translations, and one or two short example sentences with Korean translations.\n"+
			"Add common synonyms and antonyms where they exist.\n"+
			"If the input looks misspelled, answer for the closest real English word.",
		word,
		maxMeanings,
	)
}

// decodeDefinition turns the raw text payload of a lookup response into a
// validated, normalized WordDefinition.
func decodeDefinition(word, raw string) (model.WordDefinition, error) {
	payload := sanitizeJSONPayload(raw)
	if payload == "" {
		return model.WordDefinition{}, &model.LookupError{Word: word, Err: model.ErrEmptyResponse}
	}

	var definition model.WordDefinition
	err := json.Unmarshal([]byte(payload), &definition)
	if err != nil {
		var syntaxErr *json.SyntaxError
		if !errors.As(err, &syntaxErr) {
			return model.WordDefinition{}, &model.LookupError{Word: word, Err: fmt.Errorf("%w: %v", model.ErrInvalidFormat, err)}
		}

		// Truncated or slightly malformed JSON is worth one repair attempt
		// before giving up.
		repaired, repairErr := jsonrepair.JSONRepair(payload)
		if repairErr != nil {
			return model.WordDefinition{}, &model.LookupError{Word: word, Err: fmt.Errorf("%w: %v", model.ErrInvalidFormat, err)}
		}
		err = json.Unmarshal([]byte(repaired), &definition)
		if err != nil {
			return model.WordDefinition{}, &model.LookupError{Word: word, Err: fmt.Errorf("%w: %v", model.ErrInvalidFormat, err)}
		}
	}

	if err := definition.Validate(); err != nil {
		return model.WordDefinition{}, &model.LookupError{Word: word, Err: fmt.Errorf("%w: %v", model.ErrInvalidFormat, err)}
	}
	definition.Normalize()
	return definition, nil
}

func generateJSONSchema[T any]() (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	var value T
	schema := reflector.Reflect(value)

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	var schemaMap map[string]any
	err = json.Unmarshal(schemaJSON, &schemaMap)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	return schemaMap, nil
}
