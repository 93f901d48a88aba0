package gemini

import (
	"errors"
	"testing"

	"github.com/minseok4171/aidict/pkg/model"
	"github.com/stretchr/testify/suite"
)

const appleJSON = `{
	"word": "apple",
	"phonetic": "ˈæp.əl",
	"partsOfSpeech": ["noun"],
	"meanings": [
		{
			"pos": "noun",
			"definition": "A round fruit with red or green skin and white flesh.",
			"koreanMeanings": ["사과"],
			"examples": [
				{"sentence": "I ate an apple for breakfast.", "translation": "나는 아침으로 사과를 먹었다."}
			],
			"synonyms": [],
			"antonyms": []
		}
	],
	"synonyms": []
}`

type DefinitionGeneratorSuite struct {
	suite.Suite
}

func TestDefinitionGeneratorSuite(t *testing.T) {
	suite.Run(t, new(DefinitionGeneratorSuite))
}

func (s *DefinitionGeneratorSuite) TestNewDefinitionGeneratorEmptyWordReturnsError() {
	generator, err := NewDefinitionGenerator("   ")

	s.Require().Error(err)
	s.Nil(generator)
}

func (s *DefinitionGeneratorSuite) TestResolveLookupModelNameUsesDefault() {
	s.Equal(defaultLookupModelName, resolveLookupModelName(model.GeneratorConfig{}))
}

func (s *DefinitionGeneratorSuite) TestResolveLookupModelNameUsesConfigValue() {
	cfg := model.ResolveGeneratorOpts(model.WithModel("gemini-2.5-pro"))
	s.Equal("gemini-2.5-pro", resolveLookupModelName(cfg))
}

func (s *DefinitionGeneratorSuite) TestDecodeDefinitionParsesCleanJSON() {
	definition, err := decodeDefinition("apple", appleJSON)

	s.Require().NoError(err)
	s.Equal("apple", definition.Word)
	s.Equal("ˈæp.əl", definition.Phonetic)
	s.Require().Len(definition.Meanings, 1)
	s.Equal("noun", definition.Meanings[0].POS)
	s.Equal([]string{"사과"}, definition.Meanings[0].KoreanMeanings)
	s.Require().Len(definition.Meanings[0].Examples, 1)
	s.Equal("나는 아침으로 사과를 먹었다.", definition.Meanings[0].Examples[0].Translation)
}

func (s *DefinitionGeneratorSuite) TestDecodeDefinitionFencedMatchesBare() {
	fenced := "```json\n" + appleJSON + "\n```"

	fromFenced, err := decodeDefinition("apple", fenced)
	s.Require().NoError(err)

	fromBare, err := decodeDefinition("apple", appleJSON)
	s.Require().NoError(err)

	s.Equal(fromBare, fromFenced)
}

func (s *DefinitionGeneratorSuite) TestDecodeDefinitionEmptyPayloadReturnsLookupError() {
	_, err := decodeDefinition("apple", "   ")

	s.Require().Error(err)
	var lookupErr *model.LookupError
	s.Require().True(errors.As(err, &lookupErr))
	s.Equal("apple", lookupErr.Word)
	s.True(errors.Is(err, model.ErrEmptyResponse))
}

func (s *DefinitionGeneratorSuite) TestDecodeDefinitionProseOnlyReturnsEmptyResponse() {
	_, err := decodeDefinition("apple", "I cannot answer that.")

	s.Require().Error(err)
	s.True(errors.Is(err, model.ErrEmptyResponse))
	var lookupErr *model.LookupError
	s.Require().True(errors.As(err, &lookupErr))
}

func (s *DefinitionGeneratorSuite) TestDecodeDefinitionMalformedObjectReturnsInvalidFormat() {
	_, err := decodeDefinition("apple", `{"word": 42, "partsOfSpeech": true, "meanings": "none"}`)

	s.Require().Error(err)
	s.True(errors.Is(err, model.ErrInvalidFormat))
}

func (s *DefinitionGeneratorSuite) TestDecodeDefinitionRepairsTrailingComma() {
	raw := `{
		"word": "tree",
		"partsOfSpeech": ["noun"],
		"meanings": [
			{"pos": "noun", "definition": "A tall plant with a trunk.", "koreanMeanings": ["나무"], "examples": [],}
		]
	}`

	definition, err := decodeDefinition("tree", raw)

	s.Require().NoError(err)
	s.Equal("tree", definition.Word)
	s.Require().Len(definition.Meanings, 1)
	s.Equal("A tall plant with a trunk.", definition.Meanings[0].Definition)
}

func (s *DefinitionGeneratorSuite) TestDecodeDefinitionRepairsTruncatedObject() {
	raw := `{"word": "sky", "partsOfSpeech": ["noun"], "meanings": [{"pos": "noun", "definition": "The space you see above the earth.", "koreanMeanings": ["하늘"], "examples": []}]`

	definition, err := decodeDefinition("sky", raw)

	s.Require().NoError(err)
	s.Equal("sky", definition.Word)
}

func (s *DefinitionGeneratorSuite) TestDecodeDefinitionMissingMeaningsRejected() {
	raw := `{"word": "apple", "partsOfSpeech": ["noun"], "meanings": []}`

	_, err := decodeDefinition("apple", raw)

	s.Require().Error(err)
	s.True(errors.Is(err, model.ErrInvalidFormat))
}

func (s *DefinitionGeneratorSuite) TestDecodeDefinitionEmptyDefinitionRejected() {
	raw := `{"word": "apple", "partsOfSpeech": ["noun"], "meanings": [{"pos": "noun", "definition": "", "koreanMeanings": [], "examples": []}]}`

	_, err := decodeDefinition("apple", raw)

	s.Require().Error(err)
	s.True(errors.Is(err, model.ErrInvalidFormat))
}

func (s *DefinitionGeneratorSuite) TestDecodeDefinitionNormalizesAbsentSequences() {
	raw := `{"word": "run", "partsOfSpeech": ["verb"], "meanings": [{"pos": "verb", "definition": "To move fast on foot.", "koreanMeanings": ["달리다"], "examples": []}]}`

	definition, err := decodeDefinition("run", raw)

	s.Require().NoError(err)
	s.NotNil(definition.Synonyms)
	s.Empty(definition.Synonyms)
	s.NotNil(definition.Meanings[0].Synonyms)
	s.NotNil(definition.Meanings[0].Antonyms)
	s.NotNil(definition.Meanings[0].Examples)
}

func (s *DefinitionGeneratorSuite) TestGenerateJSONSchemaMarksMandatoryFields() {
	schema, err := generateJSONSchema[model.WordDefinition]()

	s.Require().NoError(err)
	s.Equal(false, schema["additionalProperties"])

	required, ok := schema["required"].([]any)
	s.Require().True(ok)
	s.Contains(required, "word")
	s.Contains(required, "phonetic")
	s.Contains(required, "partsOfSpeech")
	s.Contains(required, "meanings")
	s.Contains(required, "synonyms")
}
