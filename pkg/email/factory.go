package email

import (
	"fmt"
	"strings"
)

// New returns the sender selected by cfg.Provider.
func New(cfg Config) (EmailSender, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderEmailJS:
		return NewEmailJSClient(cfg), nil
	case ProviderPostmark:
		return NewPostmarkClient(cfg), nil
	case ProviderDev:
		return NewDevSender(cfg.DevDir), nil
	}
	return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, cfg.Provider)
}
