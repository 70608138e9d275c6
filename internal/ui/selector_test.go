package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/stratus/internal/config"
	"github.com/vietdv277/stratus/internal/operation"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmModelAnswers(t *testing.T) {
	for name, tc := range map[string]struct {
		msg tea.KeyMsg
		yes bool
	}{
		"yes":       {runes("y"), true},
		"upper yes": {runes("Y"), true},
		"no":        {runes("n"), false},
		"enter":     {tea.KeyMsg{Type: tea.KeyEnter}, false},
		"esc":       {tea.KeyMsg{Type: tea.KeyEsc}, false},
	} {
		t.Run(name, func(t *testing.T) {
			m := confirmModel{question: "Run?"}
			assert.Contains(t, m.View(), "[y/N]")

			next, cmd := m.Update(tc.msg)
			got := next.(confirmModel)
			assert.True(t, got.answered)
			assert.Equal(t, tc.yes, got.yes)
			assert.NotNil(t, cmd)
			assert.Empty(t, got.View())
		})
	}
}

func TestConfirmModelIgnoresOtherKeys(t *testing.T) {
	next, cmd := confirmModel{}.Update(runes("x"))
	assert.False(t, next.(confirmModel).answered)
	assert.Nil(t, cmd)
}

func TestPromptDeclinesWithoutTerminal(t *testing.T) {
	p := &Prompt{In: strings.NewReader("y\n"), Out: &bytes.Buffer{}}
	ok, err := p.Confirm(context.Background(), listModels, "ml-1")
	assert.False(t, ok)
	assert.ErrorIs(t, err, operation.ErrDeclined)
	assert.Contains(t, err.Error(), "--force")
}

func TestQuestionNamesTarget(t *testing.T) {
	assert.Contains(t, question(listModels, "ml-1"), "ml-1")
	assert.Contains(t, question(listModels, ""), "get-ml-model-list")
}

func testContexts() map[string]*config.Context {
	return map[string]*config.Context{
		"prod":    {Profile: "prod-admin", Region: "eu-west-1"},
		"dev":     {Profile: "dev", Region: "us-east-1"},
		"sandbox": {},
	}
}

func TestContextModelFilterAndSelect(t *testing.T) {
	m := newContextModel(contextItems(testContexts(), "prod"))
	require.Len(t, m.filtered, 3)
	assert.Equal(t, "dev", m.filtered[0].name)

	next, _ := m.Update(runes("admin"))
	m = next.(ContextModel)
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "prod", m.filtered[0].name)
	assert.Contains(t, m.View(), "eu-west-1")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(ContextModel)
	assert.Equal(t, "prod", m.selected)
	assert.False(t, m.cancelled)
	assert.NotNil(t, cmd)
}

func TestContextModelNavigationAndCancel(t *testing.T) {
	m := newContextModel(contextItems(testContexts(), ""))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(ContextModel)
	assert.Equal(t, 2, m.cursor)

	next, _ = m.Update(runes("zzz"))
	m = next.(ContextModel)
	assert.Empty(t, m.filtered)
	assert.Equal(t, 0, m.cursor)
	assert.Contains(t, m.View(), "No contexts found")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(ContextModel).cancelled)
}

func TestPrintContextTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintContextTable(&buf, testContexts(), "dev"))

	text := buf.String()
	assert.Contains(t, text, "prod-admin")
	assert.Contains(t, text, "default")
	assert.Less(t, strings.Index(text, "dev"), strings.Index(text, "prod"))
}
