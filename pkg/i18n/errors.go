package i18n

import "errors"

var (
	ErrUnsupportedLanguage    = errors.New("i18n: unsupported language")
	ErrLoadingCancelled       = errors.New("i18n: loading translations cancelled")
	ErrFailedToReadDirectory  = errors.New("i18n: failed to read translations directory")
	ErrFailedToReadFile       = errors.New("i18n: failed to read translation file")
	ErrFailedToParseYAML      = errors.New("i18n: failed to parse YAML content")
	ErrInvalidTranslationFile = errors.New("i18n: invalid translation file")
	ErrNoTranslations         = errors.New("i18n: no translations found")
)
