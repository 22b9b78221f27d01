package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/osse101/GardenBot_Go/internal/domain"
)

var (
	mentionPattern  = regexp.MustCompile(`<(?:@[!&]?|#)(\d+)>`)
	newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
)

// quotePairs are the opening/closing quotes stripped from name ends
var quotePairs = [][2]rune{
	{'"', '"'},
	{'\'', '\''},
	{'`', '`'},
	{'\u201c', '\u201d'},
	{'\u2018', '\u2019'},
	{'\u00ab', '\u00bb'},
	{'\u201e', '\u201c'},
}

// ValidatePlantName normalizes a user-supplied plant name and checks its length.
// It returns the cleaned name or ErrInvalidPlantName.
func ValidatePlantName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	name = stripQuotes(name)
	name = newlineReplacer.Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	name = mentionPattern.ReplaceAllString(name, "$1")

	// Length is in user-perceived characters, so combining marks and emoji
	// sequences count once.
	length := uniseg.GraphemeClusterCount(name)
	if length == 0 {
		return "", fmt.Errorf("%w: name is empty", domain.ErrInvalidPlantName)
	}
	if length > domain.MaxPlantNameLength {
		return "", fmt.Errorf("%w: name is longer than %d characters", domain.ErrInvalidPlantName, domain.MaxPlantNameLength)
	}
	return name, nil
}

func stripQuotes(s string) string {
	for {
		first, firstSize := utf8.DecodeRuneInString(s)
		last, lastSize := utf8.DecodeLastRuneInString(s)
		if !isQuotePair(first, last) || firstSize+lastSize > len(s) {
			return s
		}
		s = strings.TrimSpace(s[firstSize : len(s)-lastSize])
	}
}

func isQuotePair(open, closing rune) bool {
	for _, pair := range quotePairs {
		if pair[0] == open && pair[1] == closing {
			return true
		}
	}
	return false
}
