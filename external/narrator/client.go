// Package narrator talks to an LLM-backed text service for match recaps
// and assistant-coach advice. It degrades to canned lines whenever the
// service is unreachable; callers never see an error.
package narrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/mskarstad/benchboss/internal/domain/match"
	"github.com/mskarstad/benchboss/internal/domain/team"
	"github.com/mskarstad/benchboss/internal/platform/logging"
	"github.com/mskarstad/benchboss/internal/platform/random"
	"github.com/mskarstad/benchboss/internal/platform/resilience"
)

const (
	defaultTimeout  = 5 * time.Second
	adviceTokens    = 60
	recapTokens     = 150
	maxRecapEvents  = 6
	generatePath    = "/v1/generate"
	contentTypeJSON = "application/json"
)

var fallbackRecaps = []string{
	"A gritty display of hockey today. The ice was rough, the hits were hard, and the fans went home happy.",
	"Transmission fuzzy... but the scoreboard doesn't lie. A classic battle in the U18 Elite League.",
	"Both teams left everything on the ice. A true testament to Norwegian youth hockey.",
	"High tension, big saves, and waffle sales were through the roof. What a match.",
	"The Zamboni driver was the real MVP today, but the players did their best too.",
}

var fallbackAdvice = []string{
	"Skate fast, shoot hard.",
	"Keep your stick on the ice.",
	"Get pucks deep, get pucks to the net.",
	"Play the body, not the puck.",
	"Focus on the fundamentals.",
	"Don't let them get in your head.",
}

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Random         random.Source
}

type Client struct {
	http           *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	rnd            random.Source
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rnd := cfg.Random
	if rnd == nil {
		rnd = random.New()
	}
	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
		rnd:            rnd,
	}
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"maxTokens"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Advice returns one line of pre-match coaching wisdom.
func (c *Client) Advice(ctx context.Context, own, opponent *team.Team) string {
	if own == nil || opponent == nil {
		return c.pickFallback(fallbackAdvice)
	}
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	topSkill := 0
	for _, p := range own.Roster {
		if p.Skill > topSkill {
			topSkill = p.Skill
		}
	}
	bb.WriteString("You are a grumpy but wise assistant hockey coach in the 90s.\n")
	fmt.Fprintf(bb, "We (%s) are playing against %s.\n", own.Name, opponent.Name)
	fmt.Fprintf(bb, "Our top player has skill %d.\n", topSkill)
	fmt.Fprintf(bb, "Their team city is %s.\n", opponent.City)
	bb.WriteString("Give me one short sentence of tactical advice, using hockey slang.")

	text, err := c.generate(ctx, bb.String(), adviceTokens)
	if err != nil {
		c.logger.WarnContext(ctx, "advice generation failed, using fallback", "error", err)
		return c.pickFallback(fallbackAdvice)
	}
	return text
}

// Recap returns a short sportscaster writeup of a finished match.
func (c *Client) Recap(ctx context.Context, home, away *team.Team, result match.Result) string {
	if home == nil || away == nil {
		return c.pickFallback(fallbackRecaps)
	}
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	bb.WriteString("Write a short, intense, 1990s style sportscaster recap for a Norwegian U18 hockey match.\n")
	fmt.Fprintf(bb, "Home Team: %s (Avg Fatigue: %d%%)\n", home.Name, avgFatigue(home))
	fmt.Fprintf(bb, "Away Team: %s (Avg Fatigue: %d%%)\n", away.Name, avgFatigue(away))
	fmt.Fprintf(bb, "Final Score: %d - %d\n", result.HomeScore, result.AwayScore)
	if result.Shootout {
		bb.WriteString("Decided in a shootout.\n")
	} else if result.Overtime {
		bb.WriteString("Decided in overtime.\n")
	}

	bb.WriteString("Key events: ")
	written := 0
	for _, e := range result.Events {
		if e.Kind != match.EventGoal && e.Kind != match.EventRoughing {
			continue
		}
		if written == maxRecapEvents {
			break
		}
		if written > 0 {
			bb.WriteString(", ")
		}
		fmt.Fprintf(bb, "%d': %s", e.Minute, e.Description)
		written++
	}
	bb.WriteString(".\n")
	bb.WriteString("If fatigue levels are high (>40%), mention the tired legs.\n")
	bb.WriteString("If there were fights, mention the aggressive atmosphere.\n")
	bb.WriteString("Tone: Enthusiastic, retro, slightly gritty. Keep it under 80 words.")

	text, err := c.generate(ctx, bb.String(), recapTokens)
	if err != nil {
		c.logger.WarnContext(ctx, "recap generation failed, using fallback", "error", err)
		return c.pickFallback(fallbackRecaps)
	}
	return text
}

func (c *Client) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.baseURL == "" {
		return "", crerr.New("narrator base url not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return "", err
		}
	}

	body, err := sonic.Marshal(generateRequest{
		Prompt:      prompt,
		MaxTokens:   maxTokens,
		Temperature: 0.8,
	})
	if err != nil {
		return "", crerr.Wrap(err, "marshal generate request")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + generatePath)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType(contentTypeJSON)
	req.SetBody(body)

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		c.recordFailure()
		return "", crerr.Wrap(err, "call narrator")
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		c.recordFailure()
		return "", crerr.Newf("narrator returned status %d", resp.StatusCode())
	}

	var out generateResponse
	if err := sonic.Unmarshal(resp.Body(), &out); err != nil {
		c.recordFailure()
		return "", crerr.Wrap(err, "decode narrator response")
	}
	if strings.TrimSpace(out.Text) == "" {
		c.recordFailure()
		return "", crerr.New("narrator returned empty text")
	}
	c.recordSuccess()
	return strings.TrimSpace(out.Text), nil
}

func (c *Client) recordSuccess() {
	if c.circuitEnabled {
		c.breaker.RecordSuccess()
	}
}

func (c *Client) recordFailure() {
	if c.circuitEnabled {
		c.breaker.RecordFailure()
	}
}

func (c *Client) pickFallback(lines []string) string {
	return lines[c.rnd.IntN(len(lines))]
}

func avgFatigue(t *team.Team) int {
	if len(t.Roster) == 0 {
		return 0
	}
	total := 0
	for _, p := range t.Roster {
		total += p.Fatigue
	}
	return total / len(t.Roster)
}
