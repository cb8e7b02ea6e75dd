package translate

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	assert.Equal(t, []string{"Первое.", "Второе..", "Третье."}, SplitSentences("Первое. Второе.. Третье. "))
	assert.Nil(t, SplitSentences(" . . "))
	assert.Nil(t, SplitSentences("\n\n"))
}

func TestSplitSentencesKeepsParagraphsApart(t *testing.T) {
	text := "Заголовок\nТекст  абзаца\tбез точки\r\nКонец. Хвост"
	assert.Equal(t,
		[]string{"Заголовок", "Текст абзаца без точки", "Конец.", "Хвост"},
		SplitSentences(text))
}

func TestSplitParagraphs(t *testing.T) {
	text := "first line\r\nsecond line\r\n\r\n\n  \nnext paragraph  \n"
	assert.Equal(t, []string{"first line\nsecond line", "next paragraph"}, SplitParagraphs(text))
}

func TestChunkParagraphs(t *testing.T) {
	text := "aaaa\n\nbbbb\n\ncccc"
	assert.Equal(t, []string{"aaaa\n\nbbbb", "cccc"}, ChunkParagraphs(text, 10))
	assert.Equal(t, []string{"aaaa\n\nbbbb\n\ncccc"}, ChunkParagraphs(text, 100))
}

func TestChunkParagraphsSplitsLongParagraph(t *testing.T) {
	long := strings.Repeat("слово ", 100)
	chunks := ChunkParagraphs(long, 50)
	assert.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 50)
		assert.NotEmpty(t, chunk)
	}
	assert.Equal(t, strings.TrimSpace(long), strings.Join(chunks, " "))
}
