package domain

type Intent string

const (
	IntentNearby   Intent = "nearby"
	IntentCategory Intent = "category"
	IntentSource   Intent = "source"
	IntentSearch   Intent = "search"
)

var KnownIntents = map[Intent]bool{
	IntentNearby:   true,
	IntentCategory: true,
	IntentSource:   true,
	IntentSearch:   true,
}

// QueryAnalysis is the structured output of the language-understanding oracle.
type QueryAnalysis struct {
	Intents  []Intent          `json:"intents"`
	Entities map[string]string `json:"entities"`
	Keywords []string          `json:"keywords"`
}

type SummarizedArticle struct {
	Article Article `json:"article"`
	Summary string  `json:"summary"`
}

// QueryResult is a resolved natural-language query. An empty Articles slice is a
// valid "no match" outcome.
type QueryResult struct {
	Query    string              `json:"query"`
	Intents  []Intent            `json:"intents"`
	Entities map[string]string   `json:"entities"`
	Keywords []string            `json:"keywords"`
	Strategy string              `json:"strategy"`
	Articles []SummarizedArticle `json:"articles"`
	Cached   bool                `json:"cached"`
}
