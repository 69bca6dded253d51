package chatbot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shubham-309/chatbot/internal/models"
	"github.com/shubham-309/chatbot/internal/testutil"
	"github.com/shubham-309/chatbot/internal/vectorstore"
)

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) SimilaritySearch(ctx context.Context, query string, k int) ([]vectorstore.Match, error) {
	args := m.Called(ctx, query, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vectorstore.Match), args.Error(1)
}

const completeParams = `{
  "parameters": {
    "no_of_shareholders": 2,
    "no_of_visas": 3,
    "activities": "trading",
    "cost": 20000,
    "office_space": true,
    "preferred_location": "Dubai"
  },
  "response": null,
  "all_parameters_collected": true
}`

func newTestAgent(t *testing.T, searcher Searcher, replies ...string) (*Agent, *testutil.ScriptedModel) {
	t.Helper()

	fake := testutil.NewScriptedModel(replies...)
	log, _ := testutil.SetupTestLogger(t)
	agent, err := NewAgent(context.Background(), fake, searcher, log)
	require.NoError(t, err)
	return agent, fake
}

func TestProcessUserInput_ReturnsModelResponse(t *testing.T) {
	searcher := new(MockSearcher)
	agent, fake := newTestAgent(t, searcher,
		"```json\n{\"parameters\": {\"no_of_visas\": 2}, \"response\": \"How many shareholders will there be?\", \"all_parameters_collected\": false}\n```")

	history := []models.HistoryEntry{{Role: "user", Content: "I need 2 visas"}}
	reply, err := agent.ProcessUserInput(context.Background(), "hello", history)
	require.NoError(t, err)
	assert.Equal(t, "How many shareholders will there be?", reply)

	require.Equal(t, 1, fake.Calls())
	assert.Equal(t, float32(0), fake.Temperatures[0])
	prompt := fake.Prompts[0]
	require.Len(t, prompt, 2)
	assert.Contains(t, prompt[0].Content, "all_parameters_collected")
	assert.Contains(t, prompt[1].Content, "user: I need 2 visas")
	assert.Contains(t, prompt[1].Content, "User query:\nhello")
	searcher.AssertNotCalled(t, "SimilaritySearch", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessUserInput_CompleteParametersTriggerSuggestion(t *testing.T) {
	searcher := new(MockSearcher)
	wantQuery := "The company has 2 shareholders, employs 3 visa holders, incurs a total cost of 20000, and operates out of the true office."
	searcher.On("SimilaritySearch", mock.Anything, wantQuery, 5).Return([]vectorstore.Match{
		{ID: "1", Score: 0.91, Text: "Name: IFZA; Package: Commercial"},
	}, nil)

	agent, fake := newTestAgent(t, searcher, completeParams, "IFZA Dubai is the best fit.")

	reply, err := agent.ProcessUserInput(context.Background(), "yes, please suggest", nil)
	require.NoError(t, err)
	assert.Equal(t, "IFZA Dubai is the best fit.", reply)

	searcher.AssertExpectations(t)
	require.Equal(t, 2, fake.Calls())
	assert.Equal(t, float32(0.3), fake.Temperatures[1])
	assert.Contains(t, fake.Prompts[1][0].Content, "Name: IFZA; Package: Commercial")
	assert.Contains(t, fake.Prompts[1][0].Content, "preferred location: Dubai")
}

func TestProcessUserInput_FlagWithMissingSlotsIsIgnored(t *testing.T) {
	searcher := new(MockSearcher)
	agent, fake := newTestAgent(t, searcher,
		`{"parameters": {"no_of_shareholders": 1, "no_of_visas": 1}, "response": null, "all_parameters_collected": true}`,
		`{"parameters": {"no_of_shareholders": 1}, "response": "Noted. Anything else?", "all_parameters_collected": true}`,
	)

	reply, err := agent.ProcessUserInput(context.Background(), "suggest now", nil)
	require.NoError(t, err)
	assert.Equal(t, "Which business activities do you plan to carry out?", reply)

	reply, err = agent.ProcessUserInput(context.Background(), "suggest now", nil)
	require.NoError(t, err)
	assert.Equal(t, "Noted. Anything else?", reply)

	assert.Equal(t, 2, fake.Calls())
	searcher.AssertNotCalled(t, "SimilaritySearch", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessUserInput_LooseSlotValuesKeepResponse(t *testing.T) {
	searcher := new(MockSearcher)
	agent, _ := newTestAgent(t, searcher,
		`{"parameters": {"no_of_visas": "2", "cost": "15000 AED"}, "response": "How many shareholders will there be?", "all_parameters_collected": false}`)

	reply, err := agent.ProcessUserInput(context.Background(), "2 visas, budget 15000 AED", nil)
	require.NoError(t, err)
	assert.Equal(t, "How many shareholders will there be?", reply)
	searcher.AssertNotCalled(t, "SimilaritySearch", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessUserInput_LooseCompleteParametersTriggerSuggestion(t *testing.T) {
	searcher := new(MockSearcher)
	wantQuery := "The company has 2 shareholders, employs 3 visa holders, incurs a total cost of 15000, and operates out of the false office."
	searcher.On("SimilaritySearch", mock.Anything, wantQuery, 5).Return([]vectorstore.Match{}, nil)

	agent, _ := newTestAgent(t, searcher, `{
  "parameters": {
    "no_of_shareholders": 2.0,
    "no_of_visas": "3",
    "activities": ["trading", "consulting"],
    "cost": "15,000 AED",
    "office_space": "no",
    "preferred_location": "Sharjah"
  },
  "response": null,
  "all_parameters_collected": "true"
}`, "SPC Free Zone fits.")

	reply, err := agent.ProcessUserInput(context.Background(), "go ahead", nil)
	require.NoError(t, err)
	assert.Equal(t, "SPC Free Zone fits.", reply)
	searcher.AssertExpectations(t)
}

func TestProcessUserInput_EmptyResponseFallsBack(t *testing.T) {
	agent, _ := newTestAgent(t, nil, `{"parameters": {}, "response": "", "all_parameters_collected": false}`)

	reply, err := agent.ProcessUserInput(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, FallbackResponse, reply)
}

func TestProcessUserInput_Errors(t *testing.T) {
	t.Run("unparseable output", func(t *testing.T) {
		agent, _ := newTestAgent(t, nil, "I am not JSON")
		_, err := agent.ProcessUserInput(context.Background(), "hi", nil)
		assert.Error(t, err)
	})

	t.Run("model failure", func(t *testing.T) {
		agent, fake := newTestAgent(t, nil)
		fake.FailNext(errors.New("upstream down"))
		_, err := agent.ProcessUserInput(context.Background(), "hi", nil)
		assert.ErrorContains(t, err, "upstream down")
	})

	t.Run("search failure", func(t *testing.T) {
		searcher := new(MockSearcher)
		searcher.On("SimilaritySearch", mock.Anything, mock.Anything, 5).Return(nil, errors.New("index missing"))
		agent, _ := newTestAgent(t, searcher, completeParams)
		_, err := agent.ProcessUserInput(context.Background(), "suggest", nil)
		assert.ErrorContains(t, err, "index missing")
	})

	t.Run("no vector store", func(t *testing.T) {
		agent, _ := newTestAgent(t, nil, completeParams)
		_, err := agent.ProcessUserInput(context.Background(), "suggest", nil)
		assert.ErrorIs(t, err, models.ErrVectorStoreDisabled)
	})
}

func TestGiveSuggestionRejectsIncompleteParameters(t *testing.T) {
	agent, fake := newTestAgent(t, new(MockSearcher))

	_, err := agent.GiveSuggestion(context.Background(), models.FreezoneParameters{})
	assert.ErrorContains(t, err, "incomplete parameters")
	assert.Zero(t, fake.Calls())
}
