package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/jwebster45206/werewolf-agent/pkg/chat"
)

const defaultRetryInterval = 500 * time.Millisecond

// RetryingLLM wraps another LLMService and retries transient failures
// with exponential backoff. Client errors other than 429 fail at once.
type RetryingLLM struct {
	next            LLMService
	maxTries        uint
	initialInterval time.Duration
	logger          *slog.Logger
}

var _ LLMService = (*RetryingLLM)(nil)

// NewRetryingLLM wraps next. maxTries of zero means a single attempt.
func NewRetryingLLM(next LLMService, maxTries uint, logger *slog.Logger) *RetryingLLM {
	if maxTries == 0 {
		maxTries = 1
	}
	return &RetryingLLM{
		next:            next,
		maxTries:        maxTries,
		initialInterval: defaultRetryInterval,
		logger:          logger,
	}
}

// WithInitialInterval overrides the first backoff delay.
func (r *RetryingLLM) WithInitialInterval(d time.Duration) *RetryingLLM {
	r.initialInterval = d
	return r
}

func (r *RetryingLLM) InitModel(ctx context.Context, modelName string) error {
	return r.next.InitModel(ctx, modelName)
}

func (r *RetryingLLM) Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	return r.do(ctx, "chat", func() (*chat.ChatResponse, error) {
		return r.next.Chat(ctx, messages)
	})
}

func (r *RetryingLLM) Classify(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	return r.do(ctx, "classify", func() (*chat.ChatResponse, error) {
		return r.next.Classify(ctx, messages)
	})
}

func (r *RetryingLLM) do(ctx context.Context, op string, call func() (*chat.ChatResponse, error)) (*chat.ChatResponse, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval

	return backoff.Retry(ctx, func() (*chat.ChatResponse, error) {
		resp, err := call()
		if err != nil && !isRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		return resp, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(r.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			if r.logger != nil {
				r.logger.Warn("LLM call failed, retrying", "op", op, "error", err, "retry_in", next)
			}
		}),
	)
}

// isRetryable treats transport failures and 429/5xx answers as transient.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return !errors.Is(err, ErrNoChoices)
}
