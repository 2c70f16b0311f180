package email

// Provider names accepted by New.
const (
	ProviderEmailJS  = "emailjs"
	ProviderPostmark = "postmark"
	ProviderDev      = "dev"
)

// Config holds relay credentials. Empty or placeholder values leave the
// relay unconfigured, which callers treat as preview mode.
type Config struct {
	Provider string `env:"EMAIL_PROVIDER" envDefault:"emailjs"`

	EmailJSServiceID  string `env:"EMAILJS_SERVICE_ID"`
	EmailJSTemplateID string `env:"EMAILJS_TEMPLATE_ID"`
	EmailJSPublicKey  string `env:"EMAILJS_PUBLIC_KEY"`
	EmailJSPrivateKey string `env:"EMAILJS_PRIVATE_KEY"`
	EmailJSEndpoint   string `env:"EMAILJS_ENDPOINT" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL"`

	DevDir string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}
