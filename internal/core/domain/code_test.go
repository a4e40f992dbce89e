package domain_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tagit-app/tagit-be/internal/core/domain"
)

func TestGenerateDepositorCode_Shape(t *testing.T) {
	shape := regexp.MustCompile(`^[A-ZÀ-Þ]{0,3}[0-9]$`)

	tests := []struct {
		name       string
		firstName  string
		lastName   string
		wantPrefix string
	}{
		{"plain_names", "Marie", "Dupont", "MAD"},
		{"lowercase_input", "marie", "dupont", "MAD"},
		{"one_letter_first_name", "A", "Durand", "AD"},
		{"empty_last_name", "Marie", "", "MA"},
		{"both_empty", "", "", ""},
		{"hyphenated_first_name", "J-Luc", "Picard", "JLP"},
		{"name_starting_with_separator", "-Anna", "", "AN"},
		{"accented_first_name", "Élodie", "Dupont", "ÉLD"},
		{"accented_throughout", "Éric", "Ömer", "ÉRÖ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := domain.GenerateDepositorCode(tt.firstName, tt.lastName)
			assert.Regexp(t, shape, code)
			assert.Equal(t, tt.wantPrefix, code[:len(code)-1])
			assert.NotContains(t, code, domain.CodeSeparator)
		})
	}
}

func TestGenerateDepositorCode_NeverClassifiesAsArticle(t *testing.T) {
	// Whatever the name input, the generated code must classify as a depositor
	// code, otherwise scans would be misrouted.
	names := [][2]string{
		{"Jean-Luc", "Saint-Cyr"},
		{"-", "-"},
		{"Élodie", "D'Arcy"},
		{"12", "34"},
	}
	for _, n := range names {
		for i := 0; i < 20; i++ {
			code := domain.GenerateDepositorCode(n[0], n[1])
			assert.Equal(t, domain.KindDepositor, domain.ClassifyCode(code),
				"code %q from %q %q", code, n[0], n[1])
		}
	}
}

func TestComposeArticleCode(t *testing.T) {
	assert.Equal(t, "ABC7-001", domain.ComposeArticleCode("ABC7", 1))
	assert.Equal(t, "MAD3-042", domain.ComposeArticleCode("MAD3", 42))
	assert.Equal(t, "MAD3-1042", domain.ComposeArticleCode("MAD3", 1042))
}

func TestSplitArticleCode_RoundTrip(t *testing.T) {
	code := domain.ComposeArticleCode("ABC7", 31)
	depositorCode, seq, ok := domain.SplitArticleCode(code)
	assert.True(t, ok)
	assert.Equal(t, "ABC7", depositorCode)
	assert.Equal(t, "031", seq)

	_, _, ok = domain.SplitArticleCode("ABC7")
	assert.False(t, ok)
}

func TestClassifyCode(t *testing.T) {
	tests := []struct {
		scanned string
		want    domain.CodeKind
	}{
		{"ABC7", domain.KindDepositor},
		{"ABC7-001", domain.KindArticle},
		{"-", domain.KindArticle},
		{"", domain.KindDepositor},
		{"garbage with spaces", domain.KindDepositor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ClassifyCode(tt.scanned), "scanned=%q", tt.scanned)
	}
}
