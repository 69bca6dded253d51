package chatbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/shubham-309/chatbot/internal/llm"
	"github.com/shubham-309/chatbot/internal/logger"
	"github.com/shubham-309/chatbot/internal/models"
	"github.com/shubham-309/chatbot/internal/vectorstore"
)

const (
	// FallbackResponse is returned when a collection turn yields no reply.
	FallbackResponse = "some error occured unable to fetch"

	collectTemperature    = 0
	suggestionTemperature = 0.3
	suggestionTopK        = 5
)

// Searcher finds indexed freezone packages similar to a query.
type Searcher interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]vectorstore.Match, error)
}

// Agent runs the slot-filling conversation: it collects freezone
// requirements turn by turn and issues a recommendation once all of them
// are known.
type Agent struct {
	collect  *llm.Chain
	suggest  *llm.Chain
	searcher Searcher
	logger   logger.Logger
}

// NewAgent compiles the collection and suggestion chains. searcher may be
// nil, in which case recommendations fail with models.ErrVectorStoreDisabled.
func NewAgent(ctx context.Context, chatModel model.BaseChatModel, searcher Searcher, logger logger.Logger) (*Agent, error) {
	collect, err := llm.NewChain(ctx, chatModel, collectTemperature,
		schema.SystemMessage(collectSystemPrompt),
		schema.UserMessage(collectUserPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("collection chain: %w", err)
	}

	suggest, err := llm.NewChain(ctx, chatModel, suggestionTemperature,
		schema.UserMessage(suggestionPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("suggestion chain: %w", err)
	}

	return &Agent{collect: collect, suggest: suggest, searcher: searcher, logger: logger}, nil
}

// ProcessUserInput answers one user turn given the prior conversation.
func (a *Agent) ProcessUserInput(ctx context.Context, query string, history []models.HistoryEntry) (string, error) {
	var result models.UserInputResponse
	err := a.collect.RunJSON(ctx, map[string]any{
		"format_instructions": llm.FormatInstructions(userInputSchema),
		"chat_history":        llm.FormatHistory(history),
		"query":               query,
	}, &result)
	if err != nil {
		return "", fmt.Errorf("collect parameters: %w", err)
	}

	reply := ""
	if result.Response != nil {
		reply = strings.TrimSpace(*result.Response)
	}

	if result.AllParametersCollected {
		if result.Parameters.Complete() {
			a.logger.Info("All freezone parameters collected, preparing suggestion")
			return a.GiveSuggestion(ctx, result.Parameters)
		}

		missing := result.Parameters.Missing()
		a.logger.Warn("Model reported all parameters collected but missing: ", strings.Join(missing, ", "))
		if reply == "" {
			return askFor(missing[0]), nil
		}
	}

	if reply == "" {
		return FallbackResponse, nil
	}
	return reply, nil
}

// GiveSuggestion recommends freezone packages matching complete parameters.
func (a *Agent) GiveSuggestion(ctx context.Context, params models.FreezoneParameters) (string, error) {
	if !params.Complete() {
		return "", fmt.Errorf("incomplete parameters: %s", strings.Join(params.Missing(), ", "))
	}
	if a.searcher == nil {
		return "", models.ErrVectorStoreDisabled
	}

	matches, err := a.searcher.SimilaritySearch(ctx, SearchQuery(params), suggestionTopK)
	if err != nil {
		return "", fmt.Errorf("vector search: %w", err)
	}
	a.logger.Debug("Vector search returned ", len(matches), " packages")

	suggestion, err := a.suggest.Run(ctx, map[string]any{
		"data":         formatMatches(matches),
		"requirements": describeParameters(params),
	})
	if err != nil {
		return "", fmt.Errorf("suggest freezone: %w", err)
	}
	return suggestion, nil
}

// SearchQuery is the sentence embedded to look up matching packages.
func SearchQuery(p models.FreezoneParameters) string {
	return fmt.Sprintf(
		"The company has %d shareholders, employs %d visa holders, incurs a total cost of %s, and operates out of the %s office.",
		*p.NoOfShareholders, *p.NoOfVisas,
		strconv.FormatFloat(*p.Cost, 'f', -1, 64),
		strconv.FormatBool(*p.OfficeSpace),
	)
}

func describeParameters(p models.FreezoneParameters) string {
	return fmt.Sprintf(
		"%d shareholders, %d visas, activities: %s, budget: %s, office space required: %t, preferred location: %s",
		*p.NoOfShareholders, *p.NoOfVisas, *p.Activities,
		strconv.FormatFloat(*p.Cost, 'f', -1, 64), *p.OfficeSpace, *p.PreferredLocation,
	)
}

func formatMatches(matches []vectorstore.Match) string {
	if len(matches) == 0 {
		return "No matching free zone packages were found."
	}

	var b strings.Builder
	for i, m := range matches {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s (similarity %.3f)", i+1, m.Text, m.Score)
	}
	return b.String()
}

var slotQuestions = map[string]string{
	models.SlotShareholders: "How many shareholders will the company have?",
	models.SlotVisas:        "How many visas will you need?",
	models.SlotActivities:   "Which business activities do you plan to carry out?",
	models.SlotCost:         "What budget do you have in mind for the licence package?",
	models.SlotOfficeSpace:  "Do you need dedicated office space?",
	models.SlotLocation:     "Which location or emirate do you prefer?",
}

func askFor(slot string) string {
	if q, ok := slotQuestions[slot]; ok {
		return q
	}
	return "Could you tell me more about your " + strings.ToLower(slot) + "?"
}
