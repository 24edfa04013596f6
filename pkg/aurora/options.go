package aurora

const defaultEndpoint = "https://november7-730026606190.europe-west1.run.app/messages"

type options struct {
	provider string
	endpoint string
	token    string
	dumpPath string

	baseURL    string
	embedModel string
	chatModel  string

	topK         int
	nameTopK     int
	candidateCap int

	temperature float64
	maxTokens   int
}

func defaultOptions() options {
	return options{
		provider: "memberapi",
		endpoint: defaultEndpoint,
	}
}

// Option configures a Client.
type Option func(*options)

// WithEndpoint points the client at a different message API, with an
// optional bearer token.
func WithEndpoint(url, token string) Option {
	return func(o *options) {
		o.endpoint = url
		o.token = token
	}
}

// WithDumpFile reads messages from a local JSON dump instead of the
// message API. Useful for development and offline evaluation.
func WithDumpFile(path string) Option {
	return func(o *options) {
		o.provider = "dump"
		o.dumpPath = path
	}
}

// WithBaseURL points the LLM client at a different API root, such as a
// compatible gateway.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithModels overrides the embedding and chat model names. Empty
// strings keep the defaults.
func WithModels(embed, chat string) Option {
	return func(o *options) {
		o.embedModel = embed
		o.chatModel = chat
	}
}

// WithTopK overrides how many candidates reach the generator: general
// questions and name-matched questions separately.
func WithTopK(general, nameMatched int) Option {
	return func(o *options) {
		o.topK = general
		o.nameTopK = nameMatched
	}
}

// WithCandidateCap overrides the embedding cost ceiling: at most this
// many candidates are embedded per question.
func WithCandidateCap(n int) Option {
	return func(o *options) { o.candidateCap = n }
}

// WithSampling overrides generation temperature and maximum output
// tokens.
func WithSampling(temperature float64, maxTokens int) Option {
	return func(o *options) {
		o.temperature = temperature
		o.maxTokens = maxTokens
	}
}
