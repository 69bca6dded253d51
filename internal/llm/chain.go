package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// Chain is a compiled prompt template followed by a chat model call.
type Chain struct {
	runnable    compose.Runnable[map[string]any, *schema.Message]
	temperature float32
}

// NewChain compiles template -> chatModel. Every invocation runs at the
// given temperature.
func NewChain(ctx context.Context, chatModel model.BaseChatModel, temperature float32, templates ...schema.MessagesTemplate) (*Chain, error) {
	promptTemplate := prompt.FromMessages(schema.FString, templates...)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chain: %w", err)
	}

	return &Chain{runnable: runnable, temperature: temperature}, nil
}

// Run fills the template with vars and returns the model's reply text.
func (c *Chain) Run(ctx context.Context, vars map[string]any) (string, error) {
	msg, err := c.runnable.Invoke(ctx, vars,
		compose.WithChatModelOption(model.WithTemperature(c.temperature)))
	if err != nil {
		return "", fmt.Errorf("failed to run chain: %w", err)
	}
	if msg == nil {
		return "", fmt.Errorf("model returned no message")
	}
	return msg.Content, nil
}

// RunJSON runs the chain and decodes the JSON object in the reply into out.
func (c *Chain) RunJSON(ctx context.Context, vars map[string]any, out any) error {
	content, err := c.Run(ctx, vars)
	if err != nil {
		return err
	}
	return ParseJSON(content, out)
}
