package realtime

const (
	defaultBaseURL = "wss://api.openai.com/v1/realtime"
	defaultModel   = "gpt-realtime"
)

type DialOptions struct {
	BaseURL string
	Model   string
	APIKey  string

	// OutboundQueueSize bounds the command queue between Send and the
	// sender loop.
	OutboundQueueSize int
}

type DialOption func(*DialOptions)

func WithModel(model string) DialOption {
	return func(o *DialOptions) { o.Model = model }
}

func WithAPIKey(apiKey string) DialOption {
	return func(o *DialOptions) { o.APIKey = apiKey }
}

func WithBaseURL(baseURL string) DialOption {
	return func(o *DialOptions) { o.BaseURL = baseURL }
}

func WithOutboundQueueSize(size int) DialOption {
	return func(o *DialOptions) { o.OutboundQueueSize = size }
}
