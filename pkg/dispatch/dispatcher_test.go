package dispatch_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/pkg/contact"
	"github.com/dmitrymomot/portfolio/pkg/dispatch"
	"github.com/dmitrymomot/portfolio/pkg/email"
	"github.com/dmitrymomot/portfolio/pkg/environment"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendEmail(ctx context.Context, msg email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockSender) Configured() bool {
	return m.Called().Bool(0)
}

func (m *mockSender) Provider() string {
	return "mock"
}

func submission(t *testing.T, f contact.Form) contact.Submission {
	t.Helper()
	sub, err := contact.Validate(f)
	require.NoError(t, err)
	return sub
}

func defaultSubmission(t *testing.T) contact.Submission {
	return submission(t, contact.Form{
		Name:    "Jo <script>",
		Email:   "jo@x.com",
		Company: "Acme & Co",
		Comment: "line one\nline <two>",
	})
}

func await(t *testing.T, d *dispatch.Dispatcher, sub contact.Submission, target string) dispatch.Result {
	t.Helper()
	res, err := d.Send(context.Background(), sub, target).Await()
	require.NoError(t, err)
	return res
}

func TestSend_Sent(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	sender.On("Configured").Return(true)
	sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(msg email.Message) bool {
		return msg.To == "owner@example.com" &&
			msg.ReplyTo == "jo@x.com" &&
			msg.Subject == "Portfolio contact from Jo <script> (Acme & Co)" &&
			strings.Contains(msg.HTMLBody, "line one<br>line &lt;two&gt;") &&
			!strings.Contains(msg.HTMLBody, "<script>")
	})).Return(nil).Once()

	d := dispatch.New(sender, dispatch.WithLogger(slog.New(slog.DiscardHandler)))
	res := await(t, d, defaultSubmission(t), "owner@example.com")

	assert.Equal(t, dispatch.OutcomeSent, res.Outcome)
	assert.True(t, res.ResetForm)
	assert.NoError(t, res.Err)
	sender.AssertExpectations(t)
}

func TestSend_Failed(t *testing.T) {
	t.Parallel()

	relayErr := errors.Join(email.ErrFailedToSendEmail, errors.New("503"))
	sender := &mockSender{}
	sender.On("Configured").Return(true)
	sender.On("SendEmail", mock.Anything, mock.Anything).Return(relayErr).Once()

	d := dispatch.New(sender, dispatch.WithLogger(slog.New(slog.DiscardHandler)))
	res := await(t, d, defaultSubmission(t), "owner@example.com")

	assert.Equal(t, dispatch.OutcomeFailed, res.Outcome)
	assert.False(t, res.ResetForm)
	assert.ErrorIs(t, res.Err, dispatch.ErrDeliveryFailed)
	assert.ErrorIs(t, res.Err, email.ErrFailedToSendEmail)
	sender.AssertNumberOfCalls(t, "SendEmail", 1)
}

func TestSend_InvalidTarget(t *testing.T) {
	t.Parallel()

	for _, target := range []string{"", "not-an-email", "owner@localhost", "a b@x.com"} {
		sender := &mockSender{}
		var buf bytes.Buffer
		d := dispatch.New(sender, dispatch.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

		fut := d.Send(context.Background(), defaultSubmission(t), target)
		assert.True(t, fut.IsComplete(), "resolved before any work starts")

		res, err := fut.Await()
		require.NoError(t, err)
		assert.Equal(t, dispatch.OutcomeConfigError, res.Outcome, target)
		assert.ErrorIs(t, res.Err, dispatch.ErrInvalidTarget)
		assert.Contains(t, buf.String(), "level=ERROR")
		sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	}
}

func TestSend_Preview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		env         environment.Environment
		wantPayload bool
	}{
		{"development logs payload", environment.Development, true},
		{"production logs masked metadata", environment.Production, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &mockSender{}
			sender.On("Configured").Return(false)

			var buf bytes.Buffer
			d := dispatch.New(sender,
				dispatch.WithEnvironment(tt.env),
				dispatch.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
			)

			res := await(t, d, defaultSubmission(t), "owner@example.com")
			assert.Equal(t, dispatch.OutcomePreview, res.Outcome)
			assert.NoError(t, res.Err)
			sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)

			out := buf.String()
			assert.Contains(t, out, "outcome=preview")
			if tt.wantPayload {
				assert.Contains(t, out, "jo@x.com")
				assert.Contains(t, out, "line one")
			} else {
				assert.NotContains(t, out, "jo@x.com")
				assert.NotContains(t, out, "line one")
				assert.Contains(t, out, "j*@x.com")
			}
		})
	}
}

func TestSend_ZeroSubmission(t *testing.T) {
	t.Parallel()

	d := dispatch.New(&mockSender{}, dispatch.WithLogger(slog.New(slog.DiscardHandler)))
	res := await(t, d, contact.Submission{}, "owner@example.com")
	assert.Equal(t, dispatch.OutcomeFailed, res.Outcome)
	assert.ErrorIs(t, res.Err, dispatch.ErrEmptySubmission)
}

func TestSend_DetachedFromRequestContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	sender := &mockSender{}
	sender.On("Configured").Return(true)
	sender.On("SendEmail", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		<-release
		ctx := args.Get(0).(context.Context)
		assert.NoError(t, ctx.Err())
	}).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	d := dispatch.New(sender, dispatch.WithLogger(slog.New(slog.DiscardHandler)))
	fut := d.Send(ctx, defaultSubmission(t), "owner@example.com")
	cancel()
	close(release)

	res, err := fut.Await()
	require.NoError(t, err)
	assert.Equal(t, dispatch.OutcomeSent, res.Outcome)
}

func TestBody_Footer(t *testing.T) {
	t.Parallel()

	render := func(f contact.Form) string {
		out, err := email.Render(context.Background(), dispatch.Body(submission(t, f)))
		require.NoError(t, err)
		return out
	}

	phoneOnly := render(contact.Form{Name: "Jo", Company: "Acme", Phone: "06 12 34 56 78"})
	assert.Contains(t, phoneOnly, `href="tel:0612345678"`)
	assert.NotContains(t, phoneOnly, "mailto:")
	assert.Contains(t, phoneOnly, "Jo from Acme was interested in your portfolio")

	both := render(contact.Form{Name: "Jo", Company: "Acme", Phone: "0612345678", Email: "jo@x.com"})
	assert.Contains(t, both, "mailto:jo@x.com")
	assert.Contains(t, both, "tel:0612345678")
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sent", dispatch.OutcomeSent.String())
	assert.Equal(t, "failed", dispatch.OutcomeFailed.String())
	assert.Equal(t, "preview", dispatch.OutcomePreview.String())
	assert.Equal(t, "config_error", dispatch.OutcomeConfigError.String())
}
