package testutil

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ScriptedModel is a chat model that replays canned replies in order. It
// records the prompts and temperatures it receives.
type ScriptedModel struct {
	mu           sync.Mutex
	replies      []string
	errs         []error
	Prompts      [][]*schema.Message
	Temperatures []float32
}

// NewScriptedModel returns a model that answers with replies in order.
func NewScriptedModel(replies ...string) *ScriptedModel {
	return &ScriptedModel{replies: replies}
}

// FailNext makes the next call return err instead of a reply.
func (m *ScriptedModel) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, err)
}

// Calls is the number of Generate calls made so far.
func (m *ScriptedModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

func (m *ScriptedModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	options := model.GetCommonOptions(&model.Options{}, opts...)
	var temperature float32 = -1
	if options.Temperature != nil {
		temperature = *options.Temperature
	}
	m.Prompts = append(m.Prompts, input)
	m.Temperatures = append(m.Temperatures, temperature)

	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		return nil, err
	}

	reply := ""
	if len(m.replies) > 0 {
		reply = m.replies[0]
		m.replies = m.replies[1:]
	}
	return schema.AssistantMessage(reply, nil), nil
}

func (m *ScriptedModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}
