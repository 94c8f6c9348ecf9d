package table_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/errfix/internal/adapters/table"
	"github.com/aretw0/errfix/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		header  []string
		want    table.Kind
		wantErr bool
	}{
		{header: []string{"Start State", "Action", "End State"}, want: table.KindOneD},
		{header: []string{"start state "}, want: table.KindOneD},
		{header: []string{"Start/End", "B", "C"}, want: table.KindTwoD},
		{header: []string{"From", "Via", "To"}, want: table.KindUnknown, wantErr: true},
		{header: nil, want: table.KindUnknown, wantErr: true},
	}

	for _, tt := range tests {
		got, err := table.DetectKind(tt.header)
		assert.Equal(t, tt.want, got, "header %v", tt.header)
		if tt.wantErr {
			assert.ErrorIs(t, err, table.ErrUnknownLayout)
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestReadCSV_OneDimensional(t *testing.T) {
	input := "Start State,Action,End State\n" +
		"A, go ,B\n" +
		"B,go,C\n" +
		"C,go,A\n"

	got, err := table.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []domain.Transition{
		domain.NewTransition("A", "go", "B"),
		domain.NewTransition("B", "go", "C"),
		domain.NewTransition("C", "go", "A"),
	}, got)
}

func TestReadCSV_HashPrefixedStates(t *testing.T) {
	input := "Start State,Action,End State\n" +
		"#1,go,A\n" +
		"A,back,#1\n" +
		"A,stay,A\n"

	got, err := table.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []domain.Transition{
		domain.NewTransition("#1", "go", "A"),
		domain.NewTransition("A", "back", "#1"),
		domain.NewTransition("A", "stay", "A"),
	}, got)
}

func TestReadCSV_TwoDimensional(t *testing.T) {
	input := "Start/End,LoggedIn,LoggedOut\n" +
		"LoggedOut,log_in,\n" +
		"LoggedIn,,log_out\n"

	got, err := table.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []domain.Transition{
		domain.NewTransition("LoggedOut", "log_in", "LoggedIn"),
		domain.NewTransition("LoggedIn", "log_out", "LoggedOut"),
	}, got)
}

func TestReadCSV_Validation(t *testing.T) {
	_, err := table.ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrEmptyInput)

	_, err = table.ReadCSV(strings.NewReader("Start State,Action,End State\n"))
	assert.ErrorIs(t, err, domain.ErrInsufficientInput)

	_, err = table.ReadCSV(strings.NewReader("Start State,Action,End State\nA,go\nB,go,C\nC\n"))
	require.Error(t, err)
	errs := domain.Errors(err)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "row 2")
	assert.Contains(t, errs[1].Error(), "row 4")
}

func TestReadYAML(t *testing.T) {
	list := `
- start: Idle
  action: start
  end: Running
- from: Running
  event: stop
  to: Idle
- start: 1
  action: 2
  end: 3
`
	got, err := table.ReadYAML(strings.NewReader(list))
	require.NoError(t, err)
	assert.Equal(t, []domain.Transition{
		domain.NewTransition("Idle", "start", "Running"),
		domain.NewTransition("Running", "stop", "Idle"),
		domain.NewTransition("1", "2", "3"),
	}, got)

	wrapped := `
transitions:
  - {start: A, action: go, end: B}
`
	got, err = table.ReadYAML(strings.NewReader(wrapped))
	require.NoError(t, err)
	assert.Equal(t, []domain.Transition{domain.NewTransition("A", "go", "B")}, got)

	_, err = table.ReadYAML(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrEmptyInput)

	_, err = table.ReadYAML(strings.NewReader("- {start: A, end: B}\n"))
	assert.Error(t, err)
}

func TestReadJSON(t *testing.T) {
	got, err := table.ReadJSON(strings.NewReader(`[{"start":"A","action":"go","end":"B"}]`))
	require.NoError(t, err)
	assert.Equal(t, []domain.Transition{domain.NewTransition("A", "go", "B")}, got)

	got, err = table.ReadJSON(strings.NewReader(`{"transitions":[{"from":"B","event":"back","to":"A"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []domain.Transition{domain.NewTransition("B", "back", "A")}, got)

	_, err = table.ReadJSON(strings.NewReader(`[]`))
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"model.csv":  "Start State,Action,End State\nA,go,B\nB,go,A\n",
		"model.yaml": "- {start: A, action: go, end: B}\n- {start: B, action: go, end: A}\n",
		"model.json": `[{"start":"A","action":"go","end":"B"},{"start":"B","action":"go","end":"A"}]`,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		got, err := table.Load(path)
		require.NoError(t, err, name)
		assert.Len(t, got, 2, name)
	}

	_, err := table.Load(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
