// internal/core/domain/code.go
package domain

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"
)

// CodeSeparator splits an article code into its depositor prefix and sequence.
// Scanned payloads containing it are article codes, bare payloads are depositor
// codes. GenerateDepositorCode strips it from names so the discriminant holds.
const CodeSeparator = "-"

// CodeKind tags the result of classifying a scanned payload.
type CodeKind string

const (
	KindDepositor CodeKind = "depositor"
	KindArticle   CodeKind = "article"
)

// GenerateDepositorCode builds a short human code from the depositor's name:
// the first two letters of the first name, the first letter of the last name,
// uppercased, plus one random decimal digit. Short names are truncated, never
// padded. The result is probably unique, not guaranteed; callers verify against
// the existing directory and retry.
func GenerateDepositorCode(firstName, lastName string) string {
	return DepositorCodePrefix(firstName, lastName) + fmt.Sprintf("%d", rand.Intn(10))
}

// DepositorCodePrefix returns the deterministic letter part of a depositor
// code. Callers allocating a unique code enumerate the ten digit suffixes over
// this prefix.
func DepositorCodePrefix(firstName, lastName string) string {
	return strings.ToUpper(letterPrefix(firstName, 2) + letterPrefix(lastName, 1))
}

// letterPrefix returns up to n leading letters of s, skipping anything that is
// not a letter so codes never pick up separators or digits from odd names.
// Letters are counted as runes, not bytes, so accented names keep their full
// prefix.
func letterPrefix(s string, n int) string {
	var b strings.Builder
	taken := 0
	for _, r := range s {
		if taken >= n {
			break
		}
		if unicode.IsLetter(r) {
			b.WriteRune(r)
			taken++
		}
	}
	return b.String()
}

// ComposeArticleCode builds an article code from its depositor's code and a
// per-depositor sequence number, e.g. "ABC7-001".
func ComposeArticleCode(depositorCode string, sequence int) string {
	return fmt.Sprintf("%s%s%03d", depositorCode, CodeSeparator, sequence)
}

// SplitArticleCode decomposes an article code into depositor code and sequence
// suffix. The separator presence is the caller's contract; ok is false for a
// bare depositor code.
func SplitArticleCode(code string) (depositorCode, sequence string, ok bool) {
	depositorCode, sequence, ok = strings.Cut(code, CodeSeparator)
	return
}

// ClassifyCode decides whether a scanned payload names a depositor or an
// article. Presence of the separator is the sole discriminant.
func ClassifyCode(scanned string) CodeKind {
	if strings.Contains(scanned, CodeSeparator) {
		return KindArticle
	}
	return KindDepositor
}
