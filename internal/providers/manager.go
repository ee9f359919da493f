package providers

import (
	"fmt"
	"strings"

	"ragbot/internal/config"
)

type NamedChatProvider struct {
	Ref      ProviderRef
	Provider ChatProvider
}

type NamedEmbedProvider struct {
	Ref      ProviderRef
	Provider EmbeddingProvider
}

// Manager holds the configured provider set. Providers are constructed once
// at startup and shared; they carry their own HTTP clients and timeouts.
type Manager struct {
	chatProviders  []NamedChatProvider
	embedProviders []NamedEmbedProvider
}

func NewManager(cfg config.Config) (*Manager, error) {
	m := &Manager{}
	for _, ref := range ParseProviderList(cfg.LLMProviders) {
		p, err := buildProvider(ref, cfg)
		if err != nil {
			return nil, err
		}
		chat, ok := p.(ChatProvider)
		if !ok {
			return nil, fmt.Errorf("provider %s does not support chat completion", ref.Raw)
		}
		m.chatProviders = append(m.chatProviders, NamedChatProvider{Ref: ref, Provider: chat})
	}
	for _, ref := range ParseProviderList(cfg.EmbedProviders) {
		p, err := buildProvider(ref, cfg)
		if err != nil {
			return nil, err
		}
		embed, ok := p.(EmbeddingProvider)
		if !ok {
			return nil, fmt.Errorf("provider %s does not support embeddings", ref.Raw)
		}
		m.embedProviders = append(m.embedProviders, NamedEmbedProvider{Ref: ref, Provider: embed})
	}
	if len(m.chatProviders) == 0 {
		m.chatProviders = []NamedChatProvider{{Ref: ProviderRef{Raw: "mock", Name: "mock"}, Provider: NewMockProvider(cfg.EmbedDim)}}
	}
	if len(m.embedProviders) == 0 {
		m.embedProviders = []NamedEmbedProvider{{Ref: ProviderRef{Raw: "mock", Name: "mock"}, Provider: NewMockProvider(cfg.EmbedDim)}}
	}
	return m, nil
}

func (m *Manager) FirstChatProvider() ChatProvider {
	return m.chatProviders[0].Provider
}

func (m *Manager) FirstEmbedProvider() EmbeddingProvider {
	return m.embedProviders[0].Provider
}

func (m *Manager) ChatProviderRefs() []ProviderRef {
	out := make([]ProviderRef, 0, len(m.chatProviders))
	for i := range m.chatProviders {
		out = append(out, m.chatProviders[i].Ref)
	}
	return out
}

func (m *Manager) EmbedProviderRefs() []ProviderRef {
	out := make([]ProviderRef, 0, len(m.embedProviders))
	for i := range m.embedProviders {
		out = append(out, m.embedProviders[i].Ref)
	}
	return out
}

func buildProvider(ref ProviderRef, cfg config.Config) (any, error) {
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(cfg.EmbedDim), nil
	case "openrouter":
		return NewOpenRouterProvider(cfg.OpenRouterAPIKey, cfg.CompletionBaseURL, cfg.CompletionModel, cfg.MaxTokens), nil
	case "openai":
		return NewOpenAIEmbeddingProvider(ref.KeyAlias), nil
	case "ollama":
		return NewOllamaEmbeddingProvider(ref.KeyAlias, cfg.EmbedDim), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", ref.Name)
	}
}
