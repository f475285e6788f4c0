package auth

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Identity is the authenticated submitter of a score.
type Identity struct {
	UserID   int64
	Username string
}

// Submission carries the raw authentication material of a score request.
// InitData is the WebApp init-data string with the header value already
// given precedence over the body field. UserID/Score/Sig are the legacy
// triple; HasUserID distinguishes a missing user_id from a literal zero.
type Submission struct {
	InitData  string
	UserID    int64
	HasUserID bool
	Username  string
	Score     int
	Sig       string
}

// Strategy is a single way of authenticating a submission. Verify returns
// ErrNotAttempted (possibly wrapped) when the submission does not carry the
// fields the strategy operates on.
type Strategy interface {
	Name() string
	Verify(sub Submission) (*Identity, error)
}

// Verifier tries an ordered list of strategies; the first success wins.
// Failures are collected and logged for audit rather than silently dropped.
type Verifier struct {
	strategies []Strategy
	logger     *zap.Logger
}

// NewVerifier creates a verifier over the given strategies, tried in order.
func NewVerifier(logger *zap.Logger, strategies ...Strategy) *Verifier {
	return &Verifier{
		strategies: strategies,
		logger:     logger,
	}
}

// Verify authenticates the submission. On success it returns the identity
// established by the winning strategy; on failure every strategy rejection
// is logged and ErrUnauthorized is returned.
func (v *Verifier) Verify(sub Submission) (*Identity, error) {
	var failures []error

	for _, strategy := range v.strategies {
		identity, err := strategy.Verify(sub)
		if err == nil {
			if len(failures) > 0 {
				// A later strategy accepted what an earlier one rejected.
				// For the legacy path this is a trust downgrade: the
				// identity is client-asserted, not carried in a signed payload.
				v.logger.Warn("Submission accepted by fallback strategy",
					zap.String("strategy", strategy.Name()),
					zap.Int64("user_id", identity.UserID),
					zap.Errors("rejections", failures))
			} else {
				v.logger.Debug("Submission verified",
					zap.String("strategy", strategy.Name()),
					zap.Int64("user_id", identity.UserID))
			}
			return identity, nil
		}

		if errors.Is(err, ErrNotAttempted) {
			continue
		}
		failures = append(failures, fmt.Errorf("%s: %w", strategy.Name(), err))
	}

	for _, failure := range failures {
		v.logger.Warn("Score submission rejected", zap.Error(failure))
	}

	return nil, ErrUnauthorized
}
