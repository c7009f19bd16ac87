package contact

import (
	"context"
	"errors"
	"testing"

	"medlink/models"
	"medlink/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMailer struct{ mock.Mock }

func (m *MockMailer) Send(ctx context.Context, mail models.Mail) error {
	return m.Called(ctx, mail).Error(0)
}

func TestContactGoesToSupportWithReplyTo(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(m models.Mail) bool {
		return len(m.To) == 1 && m.To[0] == "support@medlink.test" &&
			m.ReplyTo == "ann@example.com" &&
			m.Subject == "[Contact form] Hours" &&
			m.HTML != ""
	})).Return(nil).Once()

	svc := &DefaultContactService{Mailer: mailer, SupportEmail: "support@medlink.test"}
	require.NoError(t, svc.Contact(context.Background(), models.ContactRequest{
		Name: "Ann", Email: "ann@example.com", Subject: "Hours", Message: "When are you open?",
	}))
	mailer.AssertExpectations(t)
}

func TestSupportEscapesBody(t *testing.T) {
	mailer := new(MockMailer)
	var sent models.Mail
	mailer.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(models.Mail)
	}).Return(nil)

	svc := &DefaultContactService{Mailer: mailer, SupportEmail: "support@medlink.test"}
	require.NoError(t, svc.Support(context.Background(), "pat@example.com", models.RolePatient, models.SupportRequest{
		Subject: "Bug", Message: "<script>x</script>\nline two",
	}))
	assert.Equal(t, "[Support] Bug", sent.Subject)
	assert.Equal(t, "pat@example.com", sent.ReplyTo)
	assert.NotContains(t, sent.HTML, "<script>")
	assert.Contains(t, sent.HTML, "<br>line two")
}

func TestContactFailures(t *testing.T) {
	ctx := context.Background()
	svc := &DefaultContactService{SupportEmail: "support@medlink.test"}
	err := svc.GetInTouch(ctx, models.ContactRequest{Email: "a@b.c", Message: "hi"})
	assert.True(t, errors.Is(err, utils.ErrUpstream))

	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp 421"))
	svc.Mailer = mailer
	err = svc.GetInTouch(ctx, models.ContactRequest{Email: "a@b.c", Message: "hi"})
	assert.True(t, errors.Is(err, utils.ErrUpstream))

	err = svc.GetInTouch(ctx, models.ContactRequest{Email: "a@b.c", Message: " "})
	assert.True(t, errors.Is(err, utils.ErrValidation))
}
