package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/kmorales/careerforge/pkg/llm"
)

type fakeModel struct {
	response *llms.ContentResponse
	err      error
	messages []llms.MessageContent
	calls    int
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	f.messages = messages
	return f.response, f.err
}

func (f *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func textResponse(content string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: content}},
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := llm.NewClient(llm.ClientConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrAuthentication)
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	model := &fakeModel{response: textResponse("hello there")}
	client := llm.NewClientWithModel(llm.ClientConfig{Model: "testmodel"}, model)

	got, err := client.Complete(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello there", got)
	assert.Equal(t, 1, model.calls)

	// Prompt goes out as the sole user message.
	require.Len(t, model.messages, 1)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[0].Role)
}

func TestCompleteZeroChoices(t *testing.T) {
	model := &fakeModel{response: &llms.ContentResponse{}}
	client := llm.NewClientWithModel(llm.ClientConfig{}, model)

	_, err := client.Complete(context.Background(), "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrMalformedResponse)
}

func TestCompleteClassifiesErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "unauthorized",
			err:  errors.New("API returned unexpected status code: 401 Unauthorized"),
			want: llm.ErrAuthentication,
		},
		{
			name: "rate limited",
			err:  errors.New("API returned unexpected status code: 429 Too Many Requests"),
			want: llm.ErrQuota,
		},
		{
			name: "server error",
			err:  errors.New("API returned unexpected status code: 503 Service Unavailable"),
			want: llm.ErrTransient,
		},
		{
			name: "bad credential message",
			err:  errors.New("incorrect API key provided"),
			want: llm.ErrAuthentication,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := llm.NewClientWithModel(llm.ClientConfig{}, &fakeModel{err: tt.err})

			_, err := client.Complete(context.Background(), "prompt")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
