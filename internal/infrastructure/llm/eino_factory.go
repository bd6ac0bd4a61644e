// Package llm manages chat model clients for the configured providers.
package llm

import (
	"context"
	"fmt"
	"sync"

	"polydoc-api/internal/config"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// EinoFactory lazily builds and caches one chat model per configured provider.
type EinoFactory struct {
	config *config.LLMConfig
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoFactory creates the factory from application config.
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		models: make(map[string]model.BaseChatModel),
	}
}

// Get returns the chat model for the named provider, building it on first
// use. An empty name selects the default provider.
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	if name == "" {
		name = f.config.DefaultProvider
	}

	f.mu.RLock()
	m, ok := f.models[name]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Re-check under the write lock.
	if m, ok = f.models[name]; ok {
		return m, nil
	}

	providerCfg, ok := f.config.Providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %s not found in LLM config", name)
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      providerCfg.APIKey,
		BaseURL:     providerCfg.BaseURL,
		Model:       providerCfg.Model,
		MaxTokens:   &providerCfg.MaxTokens,
		Temperature: ptrFloat32(float32(providerCfg.Temperature)),
		Timeout:     providerCfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
	}

	f.models[name] = chatModel
	return chatModel, nil
}

// Default returns the chat model for the default provider.
func (f *EinoFactory) Default(ctx context.Context) (model.BaseChatModel, error) {
	return f.Get(ctx, "")
}

// ModelName reports the configured model identifier for the named provider.
func (f *EinoFactory) ModelName(name string) string {
	if name == "" {
		name = f.config.DefaultProvider
	}
	if providerCfg, ok := f.config.Providers[name]; ok {
		return providerCfg.Model
	}
	return ""
}

// Sampling reports the named provider's configured temperature and max
// tokens. Zero values mean the provider config leaves them unset and the
// caller should apply its own defaults.
func (f *EinoFactory) Sampling(name string) (float32, int) {
	if name == "" {
		name = f.config.DefaultProvider
	}
	providerCfg, ok := f.config.Providers[name]
	if !ok {
		return 0, 0
	}
	return float32(providerCfg.Temperature), providerCfg.MaxTokens
}

func ptrFloat32(f float32) *float32 {
	return &f
}
