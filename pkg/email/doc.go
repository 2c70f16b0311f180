// Package email delivers contact messages through a hosted relay.
//
// Three EmailSender implementations are provided:
//
//   - EmailJSClient posts template parameters to the EmailJS REST API. It is
//     configured by three values: service id, template id and public key.
//   - PostmarkClient sends transactional email through Postmark.
//   - DevSender writes each message as an .html file plus a .json metadata
//     file into a local directory.
//
// Every sender reports through Configured whether it holds usable
// credentials. Missing values and obvious placeholders such as
// "YOUR_SERVICE_ID", "<public-key>" or "changeme" count as unconfigured;
// callers are expected to skip delivery entirely in that case instead of
// attempting it with partial credentials.
//
// New selects an implementation from Config.Provider.
//
// Render turns a templ.Component into the HTML body string.
package email
