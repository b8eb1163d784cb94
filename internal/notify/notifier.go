// Package notify delivers status update emails to selected candidates.
// Delivery is fire-and-forget per recipient: one failing address never
// blocks the rest of the cohort.
package notify

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/martin/hirepilot/internal/types"
)

// Subjects and bodies per stage transition.
const (
	codingRoundSubject = "Congratulations! You're Selected for Coding Round"
	codingRoundBody    = `Dear Candidate,

Congratulations! Your resume has been shortlisted and you have been selected for the coding round.

Please prepare for the upcoming coding assessment. Further details will be shared soon.

Best regards,
HR Team
`
	interviewSubject = "Congratulations! You're Selected for the Interview Round"
	interviewBody    = `Dear Candidate,

Congratulations! You have cleared the coding round and have been shortlisted for the interview.

Interview details will be shared soon.

Best regards,
HR Team
`
)

// maxConcurrentSends bounds the email fan-out per notification batch.
const maxConcurrentSends = 8

// Mailer sends a single email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// UserDirectory resolves user ids to user records with email addresses.
type UserDirectory interface {
	UsersByIDs(ctx context.Context, ids []uuid.UUID) ([]types.User, error)
}

// Notifier fans status emails out to selected candidates.
type Notifier struct {
	mailer Mailer
	users  UserDirectory
	log    *zap.Logger
}

// New creates a Notifier.
func New(mailer Mailer, users UserDirectory, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{mailer: mailer, users: users, log: log}
}

// NotifyCodingRound emails the candidates selected at the resume stage.
func (n *Notifier) NotifyCodingRound(ctx context.Context, jobID uuid.UUID, userIDs []uuid.UUID) {
	n.notify(ctx, jobID, userIDs, codingRoundSubject, codingRoundBody)
}

// NotifyInterview emails the candidates selected at the coding stage.
func (n *Notifier) NotifyInterview(ctx context.Context, jobID uuid.UUID, userIDs []uuid.UUID) {
	n.notify(ctx, jobID, userIDs, interviewSubject, interviewBody)
}

// notify resolves the recipients and sends concurrently. Per-recipient
// failures are logged and swallowed; a directory failure aborts the batch
// with a log entry only.
func (n *Notifier) notify(ctx context.Context, jobID uuid.UUID, userIDs []uuid.UUID, subject, body string) {
	if len(userIDs) == 0 {
		return
	}

	users, err := n.users.UsersByIDs(ctx, userIDs)
	if err != nil {
		n.log.Error("failed to look up notification recipients",
			zap.String("job_id", jobID.String()),
			zap.Error(err))
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSends)
	for _, user := range users {
		if user.Email == "" {
			n.log.Warn("no email address for user", zap.String("user_id", user.ID.String()))
			continue
		}
		g.Go(func() error {
			if err := n.mailer.Send(gctx, user.Email, subject, body); err != nil {
				n.log.Error("failed to send status email",
					zap.String("user_id", user.ID.String()),
					zap.Error(err))
				return nil // isolate recipient failures
			}
			n.log.Info("sent status email",
				zap.String("job_id", jobID.String()),
				zap.String("user_id", user.ID.String()))
			return nil
		})
	}
	_ = g.Wait()
}
