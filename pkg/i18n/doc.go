// Package i18n covers the two locales of the site: English and French.
//
// It provides three things:
//
//   - Lang, the locale enumeration, with negotiation from an Accept-Language
//     header through golang.org/x/text/language.
//   - SwitchPath and LangFromPath, the pure path transform that moves between
//     "page.html" and "page-fr.html" while keeping query and fragment intact.
//   - Translator, a lookup of dot-separated keys loaded from YAML files held
//     in any fs.FS (usually an embed.FS), with %{name} placeholders.
//
// # Usage
//
//	tr, err := i18n.NewTranslator(ctx, translations.FS, i18n.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	i18n.SwitchPath("/projects.html?x=1#top", i18n.French) // "/projects-fr.html?x=1#top"
//	tr.T(i18n.French, "contact.sent")                     // "Votre message a été envoyé."
//
// The HTTP middleware stores the request language in the context so handlers
// can call Translator.Tc without passing the language around.
package i18n
