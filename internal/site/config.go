package site

import (
	"time"

	"github.com/dmitrymomot/portfolio/pkg/cookie"
	"github.com/dmitrymomot/portfolio/pkg/email"
	"github.com/dmitrymomot/portfolio/pkg/httpserver"
	"github.com/dmitrymomot/portfolio/pkg/ratelimiter"
	"github.com/dmitrymomot/portfolio/pkg/redis"
)

// DefaultDatastarScript is the client bundle matching the server SDK.
const DefaultDatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// Config of the portfolio service. ContactWait caps how long POST /contact
// waits for the relay before leaving the outcome to the notification stream.
type Config struct {
	Env           string `env:"APP_ENV" envDefault:"development"`
	ContactTarget string `env:"CONTACT_TARGET"`
	ProjectsFile  string `env:"PORTFOLIO_PROJECTS_FILE"`
	DefaultLang   string `env:"DEFAULT_LANG" envDefault:"en"`

	NotificationTTL time.Duration `env:"NOTIFICATION_TTL" envDefault:"5s"`
	VisitorIdle     time.Duration `env:"VISITOR_IDLE_AFTER" envDefault:"30m"`
	ContactWait     time.Duration `env:"CONTACT_WAIT" envDefault:"15s"`
	DatastarScript  string        `env:"DATASTAR_SCRIPT_URL"`

	Email     email.Config
	HTTP      httpserver.Config
	RateLimit ratelimiter.Config `envPrefix:"CONTACT_RATE_"`
	Redis     redis.Config
	Cookie    cookie.Config
}
