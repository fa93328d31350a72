package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetters(t *testing.T) {
	cases := map[string]string{
		"hello world":  "HELLOWORLD",
		"Café":         "CAFE",
		"naïve résumé": "NAIVERESUME",
		"don't":        "DONT",
		"São Tomé":     "SAOTOME",
		"route 66":     "ROUTE",
		"":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Letters(in), "Letters(%q)", in)
	}
}

func TestLettersAndDigits(t *testing.T) {
	assert.Equal(t, "ROUTE66", LettersAndDigits("route 66!"))
}

func TestCode(t *testing.T) {
	assert.Equal(t, "......-----.-..-..-..", Code(".... .     .-- --- .-. .-.. -..\n"))
	assert.Empty(t, Code("abc / 123"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, 'E', Fold('é'))
	assert.Equal(t, 'A', Fold('a'))
	assert.Equal(t, rune(0), Fold('?'))
}
