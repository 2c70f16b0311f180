package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/portfolio/pkg/async"
	"github.com/dmitrymomot/portfolio/pkg/contact"
	"github.com/dmitrymomot/portfolio/pkg/email"
	"github.com/dmitrymomot/portfolio/pkg/environment"
	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/sanitizer"
	"github.com/dmitrymomot/portfolio/pkg/validator"
)

const tagContact = "portfolio-contact"

// Dispatcher sends contact submissions through an email.EmailSender.
type Dispatcher struct {
	sender email.EmailSender
	env    environment.Environment
	logger *slog.Logger
}

type Option func(*Dispatcher)

// WithEnvironment enables payload logging in preview mode when env is
// Development. The default is Production.
func WithEnvironment(env environment.Environment) Option {
	return func(d *Dispatcher) {
		d.env = env
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

func New(sender email.EmailSender, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		env:    environment.Production,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With(logger.Component("dispatch"))
	return d
}

// Send delivers sub to target. The returned future never carries an error;
// failures are described by Result.
//
// Delivery runs detached from ctx cancellation so an HTTP request ending
// does not abort a message already handed to the relay.
func (d *Dispatcher) Send(ctx context.Context, sub contact.Submission, target string) *async.Future[Result] {
	target = strings.TrimSpace(target)
	if !validator.IsSimpleEmail(target) {
		err := fmt.Errorf("%w: %q", ErrInvalidTarget, target)
		d.logger.ErrorContext(ctx, "contact target address is misconfigured",
			logger.Outcome(OutcomeConfigError),
			logger.Error(err),
		)
		return async.Resolved(Result{Outcome: OutcomeConfigError, Err: err}, nil)
	}
	if sub.IsZero() {
		return async.Resolved(Result{Outcome: OutcomeFailed, Err: ErrEmptySubmission}, nil)
	}

	msg, err := d.compose(ctx, sub, target)
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to compose contact email", logger.Error(err))
		return async.Resolved(Result{Outcome: OutcomeFailed, Err: err}, nil)
	}

	if d.sender == nil || !d.sender.Configured() {
		d.logPreview(ctx, sub, msg)
		return async.Resolved(Result{Outcome: OutcomePreview}, nil)
	}

	return async.Async(context.WithoutCancel(ctx), msg, d.deliver)
}

func (d *Dispatcher) compose(ctx context.Context, sub contact.Submission, target string) (email.Message, error) {
	body, err := email.Render(ctx, Body(sub))
	if err != nil {
		return email.Message{}, fmt.Errorf("%w: %w", ErrComposeFailed, err)
	}
	return email.Message{
		To:       target,
		ReplyTo:  sub.Email(),
		FromName: sanitizer.SingleLine(sub.Name()),
		Subject:  Subject(sub),
		HTMLBody: body,
		Tag:      tagContact,
	}, nil
}

func (d *Dispatcher) deliver(ctx context.Context, msg email.Message) (Result, error) {
	log := d.logger.With(logger.Provider(d.sender.Provider()))

	if err := d.sender.SendEmail(ctx, msg); err != nil {
		log.WarnContext(ctx, "contact email delivery failed",
			logger.Outcome(OutcomeFailed),
			logger.Error(err),
		)
		return Result{Outcome: OutcomeFailed, Err: fmt.Errorf("%w: %w", ErrDeliveryFailed, err)}, nil
	}

	log.InfoContext(ctx, "contact email sent", logger.Outcome(OutcomeSent))
	return Result{Outcome: OutcomeSent, ResetForm: true}, nil
}

func (d *Dispatcher) logPreview(ctx context.Context, sub contact.Submission, msg email.Message) {
	if d.env.IsDevelopment() {
		d.logger.InfoContext(ctx, "email relay not configured, preview only",
			logger.Outcome(OutcomePreview),
			slog.String("to", msg.To),
			slog.String("reply_to", msg.ReplyTo),
			slog.String("subject", msg.Subject),
			slog.String("body", msg.HTMLBody),
		)
		return
	}

	d.logger.WarnContext(ctx, "email relay not configured, message not sent",
		logger.Outcome(OutcomePreview),
		slog.String("reply_to", sanitizer.MaskEmail(sub.Email())),
		slog.String("phone", sanitizer.MaskPhone(sub.Phone())),
		slog.Int("body_size", len(msg.HTMLBody)),
	)
}
