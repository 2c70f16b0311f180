// Package contact turns raw contact form input into a Submission.
//
// Validate applies its rules in a fixed order and stops at the first
// failure, so the user always sees exactly one message:
//
//  1. name is required
//  2. company is required
//  3. email or phone is required
//  4. email, when given, must look like local@domain.tld
//  5. phone, when given, must be a French or international number
//
// A blank comment is replaced by "{name} from {company} was interested in
// your portfolio". Text is trimmed but never escaped here; escaping happens
// where the text is embedded into markup.
//
// A Submission can only be obtained from Validate, so holding one means
// every rule passed.
package contact
