package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/snapreview/internal/client"
	"github.com/sevigo/snapreview/internal/core"
)

type fakeClient struct {
	review string
	err    error
	calls  int
	code   string
	lang   string
}

func (f *fakeClient) Review(_ context.Context, code, language string) (string, error) {
	f.calls++
	f.code, f.lang = code, language
	return f.review, f.err
}

type fakeClipboard struct {
	copied []string
	err    error
}

func (f *fakeClipboard) WriteAll(s string) error {
	if f.err != nil {
		return f.err
	}
	f.copied = append(f.copied, s)
	return nil
}

func newTestModel(t *testing.T, c reviewClient, cb *fakeClipboard) *model {
	t.Helper()
	if cb == nil {
		cb = &fakeClipboard{}
	}
	return initialModel(ThemeCyan, core.MustCatalog(), c, cb.WriteAll, "monokai")
}

func send(t *testing.T, m *model, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(msg)
	require.Same(t, m, next)
	return cmd
}

func typeRunes(t *testing.T, m *model, s string) {
	t.Helper()
	for _, r := range s {
		send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestModel_TabInsertsFourSpacesAtCursor(t *testing.T) {
	m := newTestModel(t, &fakeClient{}, nil)
	m.editor.SetValue("ab")
	m.editor.SetCursor(1)

	cmd := send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Nil(t, cmd)
	assert.Equal(t, "a    b", m.editor.Value())
	assert.True(t, m.editor.Focused(), "focus stays in the editor")

	// The cursor sits after the inserted spaces.
	typeRunes(t, m, "x")
	assert.Equal(t, "a    xb", m.editor.Value())
}

func TestModel_TabOnEmptyEditor(t *testing.T) {
	m := newTestModel(t, &fakeClient{}, nil)
	send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	typeRunes(t, m, "y")
	assert.Equal(t, "        y", m.editor.Value())
}

func TestModel_SubmitLifecycle(t *testing.T) {
	fc := &fakeClient{review: "Wrong operator.\n```python\nreturn a + b\n```"}
	m := newTestModel(t, fc, nil)
	m.editor.SetValue("def add(a, b):\n    return a - b")

	cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.Equal(t, client.PhaseInFlight, m.state.Phase)
	assert.Equal(t, "python", m.state.Language)

	assert.Nil(t, send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS}), "no second request while one is in flight")

	msg := reviewCmd(fc, m.state.Code, m.state.Language)()
	assert.Equal(t, 1, fc.calls)
	assert.Equal(t, "def add(a, b):\n    return a - b", fc.code)

	send(t, m, msg)
	assert.Equal(t, client.PhaseSucceeded, m.state.Phase)
	assert.Equal(t, fc.review, m.state.Review)
	require.True(t, m.state.HasFix)
	assert.Equal(t, "return a + b", m.state.Fix.Code)
	assert.Contains(t, m.renderReview(), "Wrong operator.")
	assert.Contains(t, m.renderReview(), "Suggested fix")
}

func TestModel_ErrorIsShown(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{"Gateway message", &client.APIError{StatusCode: 400, Message: core.MsgEmptyCode}, core.MsgEmptyCode},
		{"Generic fallback", errors.New("connection refused"), client.MsgFetchFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t, &fakeClient{}, nil)
			send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
			send(t, m, reviewDoneMsg{err: tc.err})

			assert.Equal(t, client.PhaseFailed, m.state.Phase)
			assert.Equal(t, tc.want, m.state.Review)
			assert.Contains(t, m.renderReview(), tc.want)
		})
	}
}

func TestModel_CopyFeedback(t *testing.T) {
	cb := &fakeClipboard{}
	m := newTestModel(t, &fakeClient{}, cb)

	assert.Nil(t, send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY}), "nothing to copy yet")

	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	send(t, m, reviewDoneMsg{review: "Fix:\n```go\nx := 1\n```"})

	cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"x := 1"}, cb.copied)
	assert.True(t, m.state.Copied)
	assert.Contains(t, m.renderReview(), client.MsgCopied)

	// A second copy restarts the feedback; the first timer is stale.
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	send(t, m, copyResetMsg{seq: 1})
	assert.True(t, m.state.Copied)

	send(t, m, copyResetMsg{seq: 2})
	assert.False(t, m.state.Copied)
	assert.NotContains(t, m.renderReview(), client.MsgCopied)
}

func TestModel_CopyFailure(t *testing.T) {
	cb := &fakeClipboard{err: errors.New("no clipboard utility")}
	m := newTestModel(t, &fakeClient{}, cb)
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	send(t, m, reviewDoneMsg{review: "```go\nx := 1\n```"})

	cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	send(t, m, cmd())

	assert.False(t, m.state.Copied)
	assert.Contains(t, m.View(), "no clipboard utility")
}

func longReview(lines int) string {
	out := make([]string, 0, lines)
	for i := 1; i <= lines; i++ {
		out = append(out, fmt.Sprintf("line %d", i))
	}
	return strings.Join(out, "\n")
}

func TestModel_AutoScrollsToNewReview(t *testing.T) {
	m := newTestModel(t, &fakeClient{}, nil)
	send(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})

	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	send(t, m, reviewDoneMsg{review: longReview(60)})

	assert.True(t, m.viewer.AtBottom())
	assert.Positive(t, m.viewer.YOffset)
	assert.Contains(t, m.viewer.View(), "line 60")
}

func TestModel_CopyResetKeepsScrollPosition(t *testing.T) {
	m := newTestModel(t, &fakeClient{}, nil)
	send(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	send(t, m, reviewDoneMsg{review: longReview(60) + "\n```go\nx := 1\n```"})
	require.True(t, m.viewer.AtBottom())

	require.NotNil(t, send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY}))
	assert.True(t, m.viewer.AtBottom())

	send(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	require.False(t, m.viewer.AtBottom())
	offset := m.viewer.YOffset

	send(t, m, copyResetMsg{seq: 1})
	assert.False(t, m.state.Copied)
	assert.Equal(t, offset, m.viewer.YOffset, "the copy timer does not scroll")
}

func TestModel_ReviewKeepsTabs(t *testing.T) {
	m := newTestModel(t, &fakeClient{}, nil)
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	send(t, m, reviewDoneMsg{review: "Indentation:\n\tif x:\n\t\treturn"})

	out := m.renderReview()
	assert.Contains(t, out, "\tif x:")
	assert.Contains(t, out, "\t\treturn")
}

func TestModel_CycleLanguage(t *testing.T) {
	catalog := core.MustCatalog()
	m := newTestModel(t, &fakeClient{}, nil)
	assert.Equal(t, catalog.Default().ID, m.language.ID)

	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, catalog.Next(catalog.Default().ID).ID, m.language.ID)

	for range len(catalog.All()) - 1 {
		send(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	}
	assert.Equal(t, catalog.Default().ID, m.language.ID, "cycling wraps around")
}

func TestModel_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m := newTestModel(t, &fakeClient{}, nil)
		cmd := send(t, m, tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestParseTheme(t *testing.T) {
	theme, err := ParseTheme(" Dracula ")
	require.NoError(t, err)
	assert.Equal(t, ThemeDracula, theme)

	_, err = ParseTheme("neon")
	assert.Error(t, err)
}
