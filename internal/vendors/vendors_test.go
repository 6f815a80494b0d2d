package vendors

import (
	"testing"

	"github.com/baalimago/dlai/internal/models"
)

func TestCodecFor(t *testing.T) {
	client := NewHTTPClient()

	testCases := []struct {
		provider models.Provider
		wantErr  bool
	}{
		{models.ProviderVllm, false},
		{models.ProviderOllama, false},
		{models.Provider("anthropic"), true},
		{models.Provider(""), true},
	}
	for _, tc := range testCases {
		t.Run(string(tc.provider), func(t *testing.T) {
			codec, err := CodecFor(tc.provider, client)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error for provider %q", tc.provider)
				}
				return
			}
			if err != nil {
				t.Fatalf("CodecFor failed: %v", err)
			}
			if codec == nil {
				t.Fatal("expected a codec")
			}
		})
	}
}

func TestNewHTTPClientTimeout(t *testing.T) {
	client := NewHTTPClient()
	if client.Timeout != requestTimeout {
		t.Fatalf("got timeout %v, want %v", client.Timeout, requestTimeout)
	}
}
