package translation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatModel records the prompt and options it receives and returns a
// canned reply.
type fakeChatModel struct {
	lastPrompt  string
	lastOptions *model.Options
	reply       string
	err         error
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(input) > 0 {
		f.lastPrompt = input[len(input)-1].Content
	}
	f.lastOptions = model.GetCommonOptions(&model.Options{}, opts...)
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

type fakeFactory struct {
	chatModel   *fakeChatModel
	modelName   string
	temperature float32
	maxTokens   int
	err         error
}

func (f *fakeFactory) Get(_ context.Context, _ string) (model.BaseChatModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.chatModel, nil
}

func (f *fakeFactory) ModelName(string) string {
	return f.modelName
}

func (f *fakeFactory) Sampling(string) (float32, int) {
	return f.temperature, f.maxTokens
}

func TestTranslate_ReligiousArabicUsesClassicalPrompt(t *testing.T) {
	chat := &fakeChatModel{reply: "In the name of God"}
	svc := NewService(&fakeFactory{chatModel: chat, modelName: "gpt-4o"})

	result, err := svc.Translate(context.Background(), Request{
		Text:           "بسم الله الرحمن الرحيم",
		SourceLanguage: "ara",
		TargetLanguage: "eng",
		Provider:       "openai",
		TextType:       TextTypeReligious,
	})
	require.NoError(t, err)

	assert.True(t, result.UsedClassicalPrompt)
	assert.Equal(t, TextTypeReligious, result.TextType)
	assert.Equal(t, "gpt-4o", result.Model)
	assert.Equal(t, "In the name of God", result.TranslatedText)
	assert.Contains(t, chat.lastPrompt, "classical Arabic")
}

func TestTranslate_DeclaredTypeWinsOverModelName(t *testing.T) {
	// The classical path is keyed off the text type; the provider name is
	// irrelevant once a register is declared.
	chat := &fakeChatModel{reply: "ok"}
	svc := NewService(&fakeFactory{chatModel: chat, modelName: "deepseek-chat"})

	result, err := svc.Translate(context.Background(), Request{
		Text:           "قال تعالى",
		SourceLanguage: "ara",
		TargetLanguage: "fra",
		Provider:       "deepseek",
		TextType:       TextTypeReligious,
	})
	require.NoError(t, err)
	assert.True(t, result.UsedClassicalPrompt)
}

func TestTranslate_ModernArabicUsesModernPrompt(t *testing.T) {
	chat := &fakeChatModel{reply: "ok"}
	svc := NewService(&fakeFactory{chatModel: chat, modelName: "gpt-4o"})

	result, err := svc.Translate(context.Background(), Request{
		Text:           "افتتحت الحكومة اليوم مشروع المدينة الجديدة بحضور الرئيس والوزير",
		SourceLanguage: "ara",
		TargetLanguage: "eng",
	})
	require.NoError(t, err)

	assert.False(t, result.UsedClassicalPrompt)
	assert.Equal(t, TextTypeModern, result.TextType)
	assert.Contains(t, chat.lastPrompt, "professional translator")
}

func TestTranslate_ClassifierFillsMissingTextType(t *testing.T) {
	chat := &fakeChatModel{reply: "ok"}
	svc := NewService(&fakeFactory{chatModel: chat, modelName: "gpt-4o"})

	result, err := svc.Translate(context.Background(), Request{
		Text:           "بسم الله الرحمن الرحيم قال تعالى في سورة الفاتحة",
		SourceLanguage: "ara",
		TargetLanguage: "eng",
	})
	require.NoError(t, err)

	assert.Equal(t, TextTypeReligious, result.TextType)
	assert.True(t, result.UsedClassicalPrompt)
}

func TestTranslate_NonArabicNeverClassical(t *testing.T) {
	chat := &fakeChatModel{reply: "bonjour"}
	svc := NewService(&fakeFactory{chatModel: chat, modelName: "gpt-4o"})

	result, err := svc.Translate(context.Background(), Request{
		Text:           "Hello",
		SourceLanguage: "eng",
		TargetLanguage: "fra",
		TextType:       TextTypeReligious,
	})
	require.NoError(t, err)
	assert.False(t, result.UsedClassicalPrompt)
}

func TestTranslate_MissingParams(t *testing.T) {
	svc := NewService(&fakeFactory{chatModel: &fakeChatModel{}, modelName: "m"})

	_, err := svc.Translate(context.Background(), Request{Text: "  ", SourceLanguage: "ara", TargetLanguage: "eng"})
	assert.Error(t, err)

	_, err = svc.Translate(context.Background(), Request{Text: "hi", TargetLanguage: "eng"})
	assert.Error(t, err)
}

func TestTranslate_ProviderError(t *testing.T) {
	chat := &fakeChatModel{err: errors.New("rate limited")}
	svc := NewService(&fakeFactory{chatModel: chat, modelName: "gpt-4o"})

	_, err := svc.Translate(context.Background(), Request{
		Text:           "Hello",
		SourceLanguage: "eng",
		TargetLanguage: "fra",
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "translation"))
}

func TestTranslate_ProviderSamplingFromConfig(t *testing.T) {
	chat := &fakeChatModel{reply: "ok"}
	svc := NewService(&fakeFactory{chatModel: chat, modelName: "gpt-4o", temperature: 0.7, maxTokens: 2048})

	_, err := svc.Translate(context.Background(), Request{
		Text:           "Hello",
		SourceLanguage: "eng",
		TargetLanguage: "fra",
	})
	require.NoError(t, err)

	require.NotNil(t, chat.lastOptions.Temperature)
	assert.InDelta(t, 0.7, float64(*chat.lastOptions.Temperature), 0.001)
	require.NotNil(t, chat.lastOptions.MaxTokens)
	assert.Equal(t, 2048, *chat.lastOptions.MaxTokens)
}

func TestTranslate_SamplingDefaultsWhenUnset(t *testing.T) {
	chat := &fakeChatModel{reply: "ok"}
	svc := NewService(&fakeFactory{chatModel: chat, modelName: "gpt-4o"})

	_, err := svc.Translate(context.Background(), Request{
		Text:           "Hello",
		SourceLanguage: "eng",
		TargetLanguage: "fra",
	})
	require.NoError(t, err)

	require.NotNil(t, chat.lastOptions.Temperature)
	assert.InDelta(t, 0.3, float64(*chat.lastOptions.Temperature), 0.001)
	require.NotNil(t, chat.lastOptions.MaxTokens)
	assert.Equal(t, 8192, *chat.lastOptions.MaxTokens)
}

func TestBuildPrompts_ContainLanguageNames(t *testing.T) {
	classical := BuildClassicalArabicPrompt("نص", "eng")
	assert.Contains(t, classical, "English")
	assert.Contains(t, classical, "نص")

	modern := BuildModernPrompt("Hola", "spa", "deu")
	assert.Contains(t, modern, "Spanish")
	assert.Contains(t, modern, "German")
	assert.Contains(t, modern, "Hola")
}
